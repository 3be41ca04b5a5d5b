package xsettings

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-json"
	"github.com/sxwebdev/xsettings/plugins"
	"github.com/sxwebdev/xsettings/plugins/customdefaults"
	"github.com/sxwebdev/xsettings/plugins/defaults"
	"github.com/sxwebdev/xsettings/plugins/env"
	"github.com/sxwebdev/xsettings/plugins/validate"
	"github.com/sxwebdev/xsettings/schema"
	"go.uber.org/zap"
)

// Parse constructs a new T from a mapping.
//
// The mapping is processed in this order:
//  1. Keys not declared by T are rejected with an *UnknownFieldsError
//  2. Values are decoded strictly, type mismatches are errors
//  3. Fields absent from the mapping get their 'default' tag value
//  4. Environment variables, for user configurable fields (WithEnvPrefix)
//  5. Plugins passed with WithPlugins
//  6. Validate() hooks and 'validate' tags
//
// Every failure wraps ErrInvalid and no partial value is returned.
func Parse[T any](data map[string]any, opts ...Option) (T, error) {
	return parse[T](data, newOptions(opts))
}

// Build returns a new settings value made of defaults with overrides applied
// on top. The merge is shallow: an override replaces the whole value of its
// key, nested mappings included, and the nested type's own 'default' tags
// and validation decide about the fields the override leaves out.
// Environment variables (WithEnvPrefix) apply to the defaults, before the
// merge, so an explicit override always wins. Two override keys naming the
// same field are rejected. defaults is never modified.
func Build[T Root](defaults T, overrides map[string]any, opts ...Option) (T, error) {
	o := newOptions(opts)

	var zero T

	s, err := schema.Of(reflect.TypeOf(defaults))
	if err != nil {
		return zero, err
	}

	name := s.Type.String()

	if o.envEnabled {
		defaults = copyOf(defaults)

		p, err := Custom(&defaults, env.New(o.envPrefix, o.envLookup))
		if err != nil {
			return zero, err
		}

		if err := p.Parse(); err != nil {
			return zero, invalid(name, err)
		}

		po := *o
		po.envEnabled = false
		o = &po
	}

	merged, err := Export(defaults)
	if err != nil {
		return zero, err
	}

	given := make(map[string]string, len(overrides))
	keys := make([]string, 0, len(overrides))
	for key, value := range overrides {
		field := key
		if f, ok := s.Lookup(key); ok {
			field = f.Key
		}

		if prev, ok := given[field]; ok {
			pair := []string{prev, key}
			sort.Strings(pair)
			return zero, invalid(name, fmt.Errorf("override keys %q and %q name the same field", pair[0], pair[1]))
		}
		given[field] = key

		merged[field] = value
		keys = append(keys, field)
	}
	sort.Strings(keys)

	o.logger.Debug("building settings",
		zap.String("type", name),
		zap.String("name", defaults.SettingsName()),
		zap.Strings("overrides", keys))

	return parse[T](merged, o)
}

// DefaultsOf returns a T filled from its 'default' tags and its
// SetDefaults() hook, in that order. The result is not validated.
func DefaultsOf[T any]() (T, error) {
	out, _, err := newValue[T]()
	if err != nil {
		return out, err
	}

	p, err := Custom(&out, defaults.New(), customdefaults.New())
	if err != nil {
		return out, err
	}

	if err := p.Parse(); err != nil {
		return out, err
	}

	return out, nil
}

// newValue returns a usable zero T: pointer types are allocated.
func newValue[T any]() (T, reflect.Type, error) {
	var out T

	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() == reflect.Ptr {
		rv.Set(reflect.New(rv.Type().Elem()))
	}

	typ := schema.Indirect(rv.Type())
	if typ.Kind() != reflect.Struct {
		return out, typ, ErrUnexpectedType
	}

	return out, typ, nil
}

func parse[T any](data map[string]any, o *options) (T, error) {
	var zero T

	out, typ, err := newValue[T]()
	if err != nil {
		return zero, err
	}

	name := typ.String()

	if data == nil {
		data = map[string]any{}
	}

	data, carry := carryOut(typ, data, "", nil)

	raw, err := json.Marshal(data)
	if err != nil {
		return zero, invalid(name, err)
	}

	// normalized is the mapping as the decoder sees it
	var normalized map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&normalized); err != nil {
		return zero, invalid(name, err)
	}

	if unknown := schema.UnknownKeys(typ, normalized); len(unknown) > 0 {
		o.logger.Debug("unknown settings keys",
			zap.String("type", name),
			zap.Strings("keys", unknown))
		return zero, &UnknownFieldsError{Type: name, Fields: unknown}
	}

	dec = json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return zero, invalid(name, err)
	}

	root := reflect.ValueOf(&out).Elem()
	for _, c := range carry {
		c.apply(root)
	}

	ps := make([]plugins.Plugin, 0, 3+len(o.plugins))

	if !o.skipDefaults {
		present := schema.PresentPaths(normalized)
		markPresent(present, carry)
		ps = append(ps, defaults.NewAbsent(present))
	}

	if o.envEnabled {
		ps = append(ps, env.New(o.envPrefix, o.envLookup))
	}

	ps = append(ps, o.plugins...)

	if !o.skipValidation {
		ps = append(ps, validate.New(o.validators...))
	}

	p, err := Custom(&out, ps...)
	if err != nil {
		return zero, err
	}

	if err := p.Parse(); err != nil {
		o.logger.Debug("settings rejected", zap.String("type", name), zap.Error(err))
		return zero, invalid(name, err)
	}

	return out, nil
}
