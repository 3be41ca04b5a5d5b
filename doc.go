// Package xsettings declares the settings of configurable components and
// separates the fields end users may change from the ones they may not.
//
// # Overview
//
// A component's settings are a struct embedding Settings, built from nested
// fragments, structs embedding Configuration. Fields tagged
// configurable:"true" are user configurable. UserConfig extracts them, and
// Build rebuilds a validated settings value from the component defaults with
// user overrides applied on top.
//
// # Quick Start
//
//	type Budget struct {
//	    xsettings.Configuration
//	    MaxTokens int  `json:"max_tokens" configurable:"true" default:"1024" validate:"gte=1"`
//	    Hard      bool `json:"hard"`
//	}
//
//	type PlannerSettings struct {
//	    xsettings.Settings
//	    Model   string   `json:"model" configurable:"true" validate:"required"`
//	    Retries int      `json:"retries" default:"3"`
//	    Budget  Budget   `json:"budget"`
//	    Tools   []Tool   `json:"tools"`
//	}
//
//	var planner = xsettings.MustComponent("planner", PlannerSettings{
//	    Settings: xsettings.Settings{Name: "planner", Description: "plans agent steps"},
//	    Model:    "gpt-4o",
//	    Retries:  3,
//	    Budget:   Budget{MaxTokens: 1024},
//	})
//
//	cfg, err := planner.UserConfig()
//	// {"model": "gpt-4o", "budget": {"max_tokens": 1024}, "tools": []}
//
//	settings, err := planner.Build(map[string]any{"model": "gpt-4o-mini"})
//
// # Extraction
//
// UserConfig walks the settings tree in declaration order:
//  1. Tagged fields are copied verbatim, enumerated string values as strings
//  2. Fragments are extracted recursively
//  3. Sequences of fragments become sequences of extracted mappings
//  4. Keyed mappings of fragments become mappings of extracted mappings
//  5. Everything else is left out
//
// A sequence or mapping holding anything else than fragments is left out
// entirely, an empty one is kept empty.
//
// # Building
//
// Build exports every field of the defaults, replaces the keys present in
// the overrides, and parses the result into a new value. The merge is
// shallow: a nested override replaces the whole nested value, fields it
// leaves out get their 'default' tag or fail validation. Unknown keys are
// rejected with an *UnknownFieldsError listing each of them, and two keys
// naming the same field are rejected too.
//
// Interface typed fields, like any or []Fragment, keep the Go values they
// hold. An override for them must be a Go value of the field's type, a
// decoded mapping is an error.
//
// Every construction failure wraps ErrInvalid:
//
//	_, err := planner.Build(map[string]any{"modle": "x"})
//	errors.Is(err, xsettings.ErrInvalid) // true
//
// # Environment Variables
//
// Components created WithPrefix, or builds given WithEnvPrefix, read
// PREFIX_FIELD_PATH variables for user configurable fields:
//
//	PLANNER_MODEL=gpt-4o-mini
//	PLANNER_BUDGET_MAX_TOKENS=2048
//
// An env tag overrides the variable name. env.Dotenv adds .env files to the
// lookup. Build reads env into the defaults, so explicit overrides win.
//
// # Override Files
//
// The loader package reads override mappings from JSON and YAML files with
// the decoders under decoders/.
//
// # Available Tags
//
//   - json: mapping key
//   - configurable: "true" marks a field user configurable
//   - default: value of a field absent from the parsed mapping
//   - validate: go-playground/validator rules
//   - env: environment variable name
//   - usage: description for Usage and GenerateMarkdown
//   - example: example value for GenerateMarkdown
//
// # Documentation Generation
//
//	markdown, err := xsettings.GenerateMarkdown(planner.Defaults(), xsettings.WithEnvPrefix("planner"))
//	schema, err := xsettings.JSONSchema(planner.Defaults())
package xsettings
