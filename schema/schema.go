// Package schema describes settings structs: which fields exist, under which
// mapping key, and how each one takes part in user config extraction.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ErrUnexpectedType is returned when a schema is requested for a non struct type.
var ErrUnexpectedType = errors.New("unexpected type, expecting a struct or a pointer to struct")

// Field describes a single settings field.
type Field struct {
	// Name is the Go field name.
	Name string
	// Key is the mapping key used by exports, overrides and user configs.
	Key string
	// Index is the index sequence for reflect.Value.FieldByIndex.
	Index []int
	Type  reflect.Type
	Tag   reflect.StructTag
	Kind  Kind
	// Dynamic fields have an interface type (or interface elements), their
	// variant is decided from the value they hold.
	Dynamic bool
}

// UserConfigurable reports whether the field is tagged user configurable.
func (f Field) UserConfigurable() bool {
	return f.Kind == KindUserConfigurable
}

// Schema is the ordered list of fields of a struct type.
type Schema struct {
	Type   reflect.Type
	Fields []Field

	byKey map[string]int
}

// Lookup finds a field by its mapping key. Exact matches win over
// case-insensitive ones.
func (s *Schema) Lookup(key string) (Field, bool) {
	if i, ok := s.byKey[key]; ok {
		return s.Fields[i], true
	}

	for _, f := range s.Fields {
		if strings.EqualFold(f.Key, key) {
			return f, true
		}
	}

	return Field{}, false
}

// Keys returns the mapping keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

var cache sync.Map // map[reflect.Type]*Schema

// Of returns the schema of the struct type t. Pointer types are followed.
// Schemas are computed once per type.
func Of(t reflect.Type) (*Schema, error) {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, ErrUnexpectedType
	}

	if s, ok := cache.Load(t); ok {
		return s.(*Schema), nil
	}

	s := &Schema{
		Type:  t,
		byKey: make(map[string]int),
	}

	if err := collectFields(s, t, nil); err != nil {
		return nil, err
	}

	actual, _ := cache.LoadOrStore(t, s)
	return actual.(*Schema), nil
}

// MustOf is like Of but panics on error.
func MustOf(t reflect.Type) *Schema {
	s, err := Of(t)
	if err != nil {
		panic(err)
	}
	return s
}

func collectFields(s *Schema, t reflect.Type, index []int) error {
	for i := 0; i < t.NumField(); i++ {
		ft := t.Field(i)

		// skip if field is not exported
		if !ft.IsExported() && !ft.Anonymous {
			continue
		}

		fieldIndex := make([]int, len(index)+1)
		copy(fieldIndex, index)
		fieldIndex[len(index)] = i

		key, ok := KeyOf(ft)
		if !ok {
			continue
		}

		// embedded structs without an explicit key are flattened,
		// the same way encoding/json promotes their fields.
		if ft.Anonymous {
			if _, named := jsonName(ft.Tag); !named {
				switch {
				case ft.Type.Kind() == reflect.Struct:
					if err := collectFields(s, ft.Type, fieldIndex); err != nil {
						return err
					}
					continue
				case ft.Type.Kind() == reflect.Ptr && ft.Type.Elem().Kind() == reflect.Struct:
					return fmt.Errorf("%s: embedded pointer %s is not supported", t, ft.Type)
				}
			}

			if !ft.IsExported() {
				continue
			}
		}

		if _, exists := s.byKey[key]; exists {
			return fmt.Errorf("%s: duplicate key %q", t, key)
		}

		f := Field{
			Name:  ft.Name,
			Key:   key,
			Index: fieldIndex,
			Type:  ft.Type,
			Tag:   ft.Tag,
		}

		if IsUserConfigurable(ft.Tag) {
			f.Kind = KindUserConfigurable
		} else {
			f.Kind, f.Dynamic = Classify(ft.Type)
		}

		s.byKey[key] = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}

	return nil
}

// KeyOf returns the mapping key of a struct field: its json name if any,
// the Go field name otherwise. Fields tagged json:"-" have no key.
func KeyOf(ft reflect.StructField) (string, bool) {
	tag, ok := ft.Tag.Lookup("json")
	if ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" && !strings.HasPrefix(tag, "-,") {
			return "", false
		}
		if name != "" {
			return name, true
		}
	}

	return ft.Name, true
}

func jsonName(tag reflect.StructTag) (string, bool) {
	v, ok := tag.Lookup("json")
	if !ok {
		return "", false
	}

	name, _, _ := strings.Cut(v, ",")
	return name, name != ""
}

// Indirect strips pointer types.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
