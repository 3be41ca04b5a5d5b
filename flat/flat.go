// Package flat provides a flat view of nested settings structs.
package flat

import (
	"fmt"
	"reflect"

	"github.com/sxwebdev/xsettings/schema"
)

// ErrUnexpectedType is returned by View for anything else than a pointer to
// a struct.
var ErrUnexpectedType = schema.ErrUnexpectedType

// Fields is a slice of Field.
type Fields []Field

// Field describe an interface to our flat structs fields.
type Field interface {
	Name() string
	EnvName() string
	UserConfigurable() bool
	Tag(key string) (string, bool)
	ParentTag() reflect.StructTag

	Meta() map[string]string

	String() string
	Set(value string) error
	IsZero() bool

	FieldValue() reflect.Value
	FieldType() reflect.StructField
}

// View provides a flat view of the provided structs an array of fields.
// sub-struct fields are prefixed with the struct key (json name, else Go name)
// followed by a dot, this is repeated for each nested level.
func View(s any) (Fields, error) {
	rs, err := unwrap(s)
	if err != nil {
		return nil, err
	}

	return walkStruct("", rs)
}

func walkStruct(prefix string, rs reflect.Value) ([]Field, error) {
	return walkStructWithParentTags(prefix, rs, "", false)
}

// walkStructWithParentTags walks rs. configurable is true when an ancestor
// struct field is tagged user configurable, its children inherit the tag.
func walkStructWithParentTags(prefix string, rs reflect.Value, parentTags reflect.StructTag, configurable bool) ([]Field, error) {
	fields := []Field{}

	ts := rs.Type()
	for i := 0; i < rs.NumField(); i++ {
		fv := rs.Field(i)
		ft := ts.Field(i)

		// skip if field is not exported
		if !ft.IsExported() {
			continue
		}

		key, ok := schema.KeyOf(ft)
		if !ok {
			continue
		}

		userConfigurable := configurable || schema.IsUserConfigurable(ft.Tag)

		switch {
		case fv.Kind() == reflect.Struct && schema.IsPlainStruct(ft.Type):
			structPrefix := prefix
			if !ft.Anonymous || ft.Tag.Get("json") != "" {
				// Unless it is anonymous struct, append the field key to the prefix.
				structPrefix = joinPath(structPrefix, key)
			}
			// Pass the struct's tags to children
			fs, err := walkStructWithParentTags(structPrefix, fv, ft.Tag, userConfigurable)
			if err != nil {
				return nil, err
			}
			fields = append(fields, fs...)
		case fv.Kind() == reflect.Map && isStructMap(fv.Type()):
			// Handle maps with struct values
			if fv.IsNil() {
				continue
			}

			mapElemType := fv.Type().Elem()
			mapPrefix := joinPath(prefix, key)

			// Collect all keys first to avoid issues with modifying map during iteration
			keys := make([]reflect.Value, 0)
			iter := fv.MapRange()
			for iter.Next() {
				keys = append(keys, iter.Key())
			}

			// Process each key
			for _, key := range keys {
				val := fv.MapIndex(key)

				// Create a prefix with the map key
				keyPrefix := mapPrefix + "." + fmt.Sprint(key.Interface())

				// Create an addressable copy of the map value
				addressableVal := reflect.New(mapElemType).Elem()
				addressableVal.Set(val)

				// Walk the struct value - this will create fields pointing to addressableVal
				fs, err := walkStructWithParentTags(keyPrefix, addressableVal, ft.Tag, userConfigurable)
				if err != nil {
					return nil, err
				}

				// Set mapSync callback for all fields to sync back to the map
				mapValue := fv            // capture map
				mapKey := key             // capture key
				syncVal := addressableVal // capture addressable value
				for _, fld := range fs {
					if f, ok := fld.(*field); ok {
						prev := f.mapSync
						f.mapSync = func() {
							if prev != nil {
								prev()
							}
							mapValue.SetMapIndex(mapKey, syncVal)
						}
					}
				}

				fields = append(fields, fs...)
			}
		default:
			fields = append(fields, &field{
				name:             joinPath(prefix, key),
				meta:             make(map[string]string, 5),
				tag:              ft.Tag,
				parentTag:        parentTags,
				field:            fv,
				fieldType:        ft,
				userConfigurable: userConfigurable,
			})
		}
	}

	return fields, nil
}

func isStructMap(t reflect.Type) bool {
	elem := t.Elem()
	return elem.Kind() == reflect.Struct && schema.IsPlainStruct(elem)
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func unwrap(s any) (reflect.Value, error) {
	rs := reflect.ValueOf(s)

	if k := rs.Kind(); k != reflect.Ptr {
		return rs, ErrUnexpectedType
	}

	rs = reflect.Indirect(rs)

	if rs.Kind() == reflect.Interface {
		rs = rs.Elem()
	}

	rs = reflect.Indirect(rs)

	if rs.Kind() != reflect.Struct {
		return rs, ErrUnexpectedType
	}

	return rs, nil
}
