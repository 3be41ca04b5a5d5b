package xsettings

import (
	"reflect"

	"github.com/sxwebdev/xsettings/schema"
)

// Export returns every declared field of a settings value keyed by mapping
// key. Nested structs are exported recursively as mappings, slices and maps
// of structs as []any and map[string]any of mappings. Every other value is
// copied as is. The result shares no pointers, slices or maps with v.
func Export(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, ErrUnexpectedType
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, ErrUnexpectedType
	}

	return exportStruct(rv)
}

func exportStruct(rv reflect.Value) (map[string]any, error) {
	s, err := schema.Of(rv.Type())
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		value, err := exportValue(rv.FieldByIndex(f.Index))
		if err != nil {
			return nil, err
		}
		out[f.Key] = value
	}

	return out, nil
}

func exportValue(v reflect.Value) (any, error) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil, nil
		}
		if schema.IsPlainStruct(v.Type()) {
			return exportValue(v.Elem())
		}
	case reflect.Struct:
		if schema.IsPlainStruct(v.Type()) {
			return exportStruct(v)
		}
	case reflect.Map:
		if v.IsNil() || !schema.IsPlainStruct(v.Type().Elem()) {
			break
		}

		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			value, err := exportValue(iter.Value())
			if err != nil {
				return nil, err
			}
			out[mapKey(iter.Key())] = value
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		if !schema.IsPlainStruct(v.Type().Elem()) {
			break
		}
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, nil
		}

		out := make([]any, v.Len())
		for i := range out {
			value, err := exportValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	}

	return normalize(deepCopy(v)), nil
}
