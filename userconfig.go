package xsettings

import (
	"fmt"
	"reflect"

	"github.com/sxwebdev/xsettings/schema"
)

// UserConfig returns the user configurable part of a settings value.
//
// Fields tagged configurable:"true" are copied verbatim, whatever they hold.
// Untagged fields holding a fragment, a sequence of fragments or a keyed
// mapping of fragments are extracted recursively; every other field is left
// out. A sequence or mapping holding anything else than fragments, even a
// single nil element, is left out entirely. Keys are mapping keys.
//
// v must be a fragment or a settings root, or a pointer to one.
func UserConfig(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, ErrUnexpectedType
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct || (!schema.IsFragment(rv.Type()) && !schema.IsRoot(rv.Type())) {
		return nil, ErrUnexpectedType
	}

	return userConfig(rv)
}

func userConfig(rv reflect.Value) (map[string]any, error) {
	s, err := schema.Of(rv.Type())
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		fv := rv.FieldByIndex(f.Index)

		value, ok, err := extractField(f, fv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Key, err)
		}

		if ok {
			out[f.Key] = value
		}
	}

	return out, nil
}

func extractField(f schema.Field, fv reflect.Value) (any, bool, error) {
	kind := f.Kind

	if f.Dynamic && kind == schema.KindScalar {
		// interface field, classify the value it holds
		if fv.IsNil() {
			return nil, false, nil
		}
		fv = fv.Elem()
		kind, _ = schema.Classify(fv.Type())
	}

	switch kind {
	case schema.KindUserConfigurable:
		return normalize(fv), true, nil
	case schema.KindFragment:
		frag, ok := asFragment(fv)
		if !ok {
			return nil, false, nil
		}
		m, err := userConfig(frag)
		return m, err == nil, err
	case schema.KindFragmentSlice:
		return extractSlice(fv)
	case schema.KindFragmentMap:
		return extractMap(fv)
	}

	return nil, false, nil
}

func extractSlice(fv reflect.Value) (any, bool, error) {
	items := make([]reflect.Value, 0, fv.Len())
	for i := 0; i < fv.Len(); i++ {
		frag, ok := asFragment(fv.Index(i))
		if !ok {
			return nil, false, nil
		}
		items = append(items, frag)
	}

	out := make([]any, 0, len(items))
	for i, item := range items {
		m, err := userConfig(item)
		if err != nil {
			return nil, false, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, m)
	}

	return out, true, nil
}

func extractMap(fv reflect.Value) (any, bool, error) {
	items := make(map[string]reflect.Value, fv.Len())

	iter := fv.MapRange()
	for iter.Next() {
		frag, ok := asFragment(iter.Value())
		if !ok {
			return nil, false, nil
		}
		items[mapKey(iter.Key())] = frag
	}

	out := make(map[string]any, len(items))
	for key, item := range items {
		m, err := userConfig(item)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = m
	}

	return out, true, nil
}

// asFragment unwraps pointers and interfaces down to a fragment struct.
func asFragment(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct || !schema.IsFragment(v.Type()) {
		return reflect.Value{}, false
	}

	return v, true
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}
