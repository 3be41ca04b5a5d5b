package schema

import (
	"reflect"
	"sort"
)

// UnknownKeys compares a raw mapping with the schema of t and returns the
// dotted paths of every key that is not declared. Nested structs are checked
// recursively, slice elements as "field[].key" and map values as
// "field.<key>.key".
func UnknownKeys(t reflect.Type, data map[string]any) []string {
	s, err := Of(t)
	if err != nil {
		return nil
	}

	unknown := compareKeys("", s, data)
	sort.Strings(unknown)

	return unknown
}

func compareKeys(prefix string, s *Schema, data map[string]any) []string {
	var unknown []string

	for key, value := range data {
		fieldPath := joinPath(prefix, key)

		f, ok := s.Lookup(key)
		if !ok {
			unknown = append(unknown, fieldPath)
			continue
		}

		unknown = append(unknown, compareValue(fieldPath, f.Type, value)...)
	}

	return unknown
}

// compareValue descends into value according to the declared type t.
func compareValue(fieldPath string, t reflect.Type, value any) []string {
	t = Indirect(t)

	switch t.Kind() {
	case reflect.Struct:
		nested, ok := value.(map[string]any)
		if !ok || !isPlainStruct(t) {
			return nil
		}

		s, err := Of(t)
		if err != nil {
			return nil
		}

		return compareKeys(fieldPath, s, nested)

	case reflect.Slice, reflect.Array:
		items, ok := value.([]any)
		if !ok {
			return nil
		}

		var unknown []string
		for _, item := range items {
			unknown = append(unknown, compareValue(fieldPath+"[]", t.Elem(), item)...)
		}
		return unknown

	case reflect.Map:
		// map[string]any and friends accept arbitrary nesting
		entries, ok := value.(map[string]any)
		if !ok {
			return nil
		}

		var unknown []string
		for key, item := range entries {
			unknown = append(unknown, compareValue(joinPath(fieldPath, key), t.Elem(), item)...)
		}
		return unknown
	}

	return nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
