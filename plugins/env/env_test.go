package env_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sxwebdev/xsettings"
	"github.com/sxwebdev/xsettings/plugins/env"
)

const testEnvPrefix = "XSETTINGS_TEST"

type budget struct {
	MaxTokens int           `json:"max_tokens"`
	Timeout   time.Duration `json:"timeout"`
}

type limits struct {
	Rate int `json:"rate" configurable:"true"`
}

type fEnv struct {
	Model    string `json:"model" configurable:"true"`
	Retries  int    `json:"retries"`
	Address  string `json:"address" env:"MY_HOST_NAME" configurable:"true"`
	Secret   string `json:"secret" env:"-" configurable:"true"`
	Budget   budget `json:"budget" configurable:"true"`
	Limits   limits `json:"limits" env:"LIMITS_CFG"`
	Internal limits `json:"internal"`
}

func TestEnvUserConfigurableOnly(t *testing.T) {
	envs := map[string]string{
		"XSETTINGS_TEST_MODEL":             "gpt",
		"XSETTINGS_TEST_RETRIES":           "9",
		"XSETTINGS_TEST_MY_HOST_NAME":      "https://blah.bleh",
		"XSETTINGS_TEST_SECRET":            "leak",
		"XSETTINGS_TEST_BUDGET_MAX_TOKENS": "100",
		"XSETTINGS_TEST_BUDGET_TIMEOUT":    "2s",
		"XSETTINGS_TEST_LIMITS_CFG_RATE":   "5",
		"XSETTINGS_TEST_INTERNAL_RATE":     "7",
	}

	for key, value := range envs {
		t.Setenv(key, value)
	}

	expect := fEnv{
		Model:   "gpt",
		Address: "https://blah.bleh",
		Budget: budget{
			MaxTokens: 100,
			Timeout:   2 * time.Second,
		},
		Limits:   limits{Rate: 5},
		Internal: limits{Rate: 7},
	}

	value := fEnv{}

	conf, err := xsettings.Custom(&value, env.New(testEnvPrefix, nil))
	if err != nil {
		t.Fatal(err)
	}

	if err := conf.Parse(); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(expect, value); diff != "" {
		t.Error(diff)
	}
}

func TestEnvInvalidValue(t *testing.T) {
	value := fEnv{}

	lookup := func(key string) (string, bool) {
		if key == "MODEL" {
			return "ok", true
		}
		if key == "BUDGET_MAX_TOKENS" {
			return "lots", true
		}
		return "", false
	}

	conf, err := xsettings.Custom(&value, env.New("", lookup))
	if err != nil {
		t.Fatal(err)
	}

	if err := conf.Parse(); err == nil {
		t.Fatal("expected error for invalid env value but got nil")
	}
}

func TestDotenv(t *testing.T) {
	t.Setenv("PLANNER_MODEL", "from-process")

	lookup, err := env.Dotenv("testdata/planner.env")
	if err != nil {
		t.Fatal(err)
	}

	value := fEnv{}
	conf, err := xsettings.Custom(&value, env.New("planner", lookup))
	if err != nil {
		t.Fatal(err)
	}

	if err := conf.Parse(); err != nil {
		t.Fatal(err)
	}

	if value.Model != "from-process" {
		t.Errorf("expected process env to win, got %q", value.Model)
	}

	if value.Budget.MaxTokens != 2048 {
		t.Errorf("expected dotenv value 2048, got %d", value.Budget.MaxTokens)
	}
}

func TestDotenvMissingFile(t *testing.T) {
	if _, err := env.Dotenv("testdata/missing.env"); err == nil {
		t.Fatal("expected error for missing dotenv file")
	}
}
