// Package env overrides user configurable settings from environment variables.
package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sxwebdev/xsettings/flat"
	"github.com/sxwebdev/xsettings/plugins"
)

const tag = "env"

func init() {
	plugins.RegisterTag(tag)
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// New returns an env plugin. Only user configurable fields are looked up,
// as PREFIX_FIELD_PATH unless the field has an explicit env tag.
// A nil lookup reads the process environment.
func New(prefix string, lookup LookupFunc) plugins.Plugin {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	return &visitor{
		prefix: prefix,
		lookup: lookup,
	}
}

// Dotenv returns a lookup reading the process environment first and the
// given dotenv files second. Missing files are an error.
func Dotenv(paths ...string) (LookupFunc, error) {
	values := map[string]string{}
	if len(paths) > 0 {
		var err error
		values, err = godotenv.Read(paths...)
		if err != nil {
			return nil, fmt.Errorf("read dotenv: %w", err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := values[key]
		return v, ok
	}, nil
}

type visitor struct {
	fields flat.Fields
	prefix string
	lookup LookupFunc
}

func makeEnvName(prefix, name string) string {
	if prefix != "" {
		name = strings.ToUpper(prefix) + "_" + name
	}

	return name
}

func (v *visitor) Visit(f flat.Fields) error {
	v.fields = f

	for _, f := range v.fields {
		if !f.UserConfigurable() {
			continue
		}

		f.Meta()[tag] = Name(v.prefix, f)
	}

	return nil
}

// Name returns the environment variable bound to a field.
func Name(prefix string, f flat.Field) string {
	name, ok := f.Tag(tag)
	if name == "-" {
		return name
	}

	if ok && name != "" {
		// If explicit tag is provided, still apply prefix
		return makeEnvName(prefix, name)
	}

	return buildEnvName(prefix, f)
}

// buildEnvName constructs environment variable name considering parent struct tags
func buildEnvName(prefix string, f flat.Field) string {
	parts := strings.Split(f.Name(), ".")

	if len(parts) == 1 {
		// Simple field without nesting
		return makeEnvName(prefix, f.EnvName())
	}

	// Check if parent struct has an env tag
	parentTag := f.ParentTag()
	if parentTag != "" {
		if parentEnvTag, ok := parentTag.Lookup(tag); ok && parentEnvTag != "" {
			// Build the env name using the parent's env tag as prefix
			// Take the last part of the field name (the actual field, not the struct)
			lastPart := parts[len(parts)-1]
			envName := parentEnvTag + "_" + strings.ToUpper(toSnakeCase(lastPart))
			return makeEnvName(prefix, envName)
		}
	}

	// No parent tag found, use default behavior
	return makeEnvName(prefix, f.EnvName())
}

// toSnakeCase converts PascalCase/camelCase to snake_case
func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' && s[i-1] != '_' {
			result = append(result, '_')
		}
		result = append(result, r)
	}
	return string(result)
}

func (v *visitor) Parse() error {
	for _, f := range v.fields {
		name, ok := f.Meta()[tag]
		if !ok || name == "-" {
			continue
		}

		value, ok := v.lookup(name)
		if !ok {
			continue
		}

		if err := f.Set(value); err != nil {
			return fmt.Errorf("env %s: %w", name, err)
		}
	}

	return nil
}
