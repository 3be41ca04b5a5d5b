package xsettings_test

import (
	"github.com/sxwebdev/xsettings"
)

type Strategy string

const (
	StrategyGreedy Strategy = "greedy"
	StrategyBeam   Strategy = "beam"
)

type budget struct {
	xsettings.Configuration

	MaxTokens int  `json:"max_tokens" configurable:"true" default:"1024" validate:"gte=1" usage:"token budget per step"`
	Hard      bool `json:"hard"`
}

type tool struct {
	xsettings.Configuration

	Name    string `json:"name"`
	Enabled bool   `json:"enabled" configurable:"true"`
}

type planner struct {
	xsettings.Settings

	Model    string            `json:"model" configurable:"true" validate:"required" usage:"model name" example:"gpt-4o"`
	Strategy Strategy          `json:"strategy" configurable:"true" validate:"oneof=greedy beam"`
	Retries  int               `json:"retries" default:"3" validate:"gte=0"`
	Budget   budget            `json:"budget"`
	Tools    []tool            `json:"tools"`
	Agents   map[string]budget `json:"agents"`
	Fallback *budget           `json:"fallback,omitempty"`
}

func newPlanner() planner {
	return planner{
		Settings: xsettings.Settings{
			Name:        "planner",
			Description: "plans agent steps",
		},
		Model:    "gpt-4o",
		Strategy: StrategyGreedy,
		Retries:  3,
		Budget:   budget{MaxTokens: 1024},
		Tools: []tool{
			{Name: "search", Enabled: true},
			{Name: "shell"},
		},
		Agents: map[string]budget{
			"critic": {MaxTokens: 256, Hard: true},
		},
	}
}

type point struct {
	xsettings.Configuration

	X int `json:"x" validate:"required"`
	Y int `json:"y" validate:"required"`
}

type pointDefaulted struct {
	xsettings.Configuration

	X int `json:"x" validate:"required"`
	Y int `json:"y" default:"2"`
}

type scenario struct {
	xsettings.Settings

	Retries int   `json:"retries" configurable:"true"`
	Nested  point `json:"nested"`
}

type scenarioDefaulted struct {
	xsettings.Settings

	Retries int            `json:"retries" configurable:"true"`
	Nested  pointDefaulted `json:"nested"`
}

func demoSettings() xsettings.Settings {
	return xsettings.Settings{Name: "demo", Description: "demo component"}
}

type priority int

const (
	priorityLow priority = iota + 1
	priorityHigh
)

func (p priority) EnumValue() any { return int(p) }
