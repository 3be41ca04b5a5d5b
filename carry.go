package xsettings

import (
	"maps"
	"reflect"
	"strings"

	"github.com/sxwebdev/xsettings/schema"
)

// carried is a Go value set on the decoded settings as is. JSON cannot
// decode into interface typed fields, so their values skip the round trip.
type carried struct {
	path  string
	index [][]int
	value reflect.Value
}

// holdsInterface reports whether t is an interface, or a slice, array or
// map of interfaces.
func holdsInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Slice, reflect.Array, reflect.Map:
		return t.Elem().Kind() == reflect.Interface
	}
	return false
}

// carryOut takes out of data the values of interface typed fields that
// already have the field's type. Nested mappings of plain structs are
// searched too. data is never modified, a copy is returned when anything
// is taken out. Values of another type stay and fail decoding.
func carryOut(t reflect.Type, data map[string]any, prefix string, index [][]int) (map[string]any, []carried) {
	s, err := schema.Of(t)
	if err != nil {
		return data, nil
	}

	out := data
	cloned := false
	clone := func() {
		if !cloned {
			out = maps.Clone(data)
			cloned = true
		}
	}

	var cs []carried

	for key, value := range data {
		f, ok := s.Lookup(key)
		if !ok || value == nil {
			continue
		}

		path := joinKey(prefix, f.Key)
		fieldIndex := append(index[:len(index):len(index)], f.Index)

		switch {
		case holdsInterface(f.Type):
			rv := reflect.ValueOf(value)
			if !rv.Type().AssignableTo(f.Type) {
				continue
			}

			clone()
			delete(out, key)
			cs = append(cs, carried{path: path, index: fieldIndex, value: deepCopy(rv)})

		case schema.IsPlainStruct(f.Type):
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}

			rest, ncs := carryOut(f.Type, nested, path, fieldIndex)
			if len(ncs) == 0 {
				continue
			}

			clone()
			out[key] = rest
			cs = append(cs, ncs...)
		}
	}

	return out, cs
}

// apply sets the carried value on root, allocating nil pointers on the way.
func (c carried) apply(root reflect.Value) {
	v := root
	for _, idx := range c.index {
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.FieldByIndex(idx)
	}
	v.Set(c.value)
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// markPresent adds the carried paths to present.
func markPresent(present schema.Paths, cs []carried) {
	for _, c := range cs {
		present[strings.ToLower(c.path)] = struct{}{}
	}
}
