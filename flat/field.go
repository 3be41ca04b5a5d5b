package flat

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sxwebdev/xsettings/internal/utils"
)

var _ Field = (*field)(nil)

type field struct {
	name      string
	meta      map[string]string
	parentTag reflect.StructTag

	tag       reflect.StructTag
	field     reflect.Value
	fieldType reflect.StructField

	// userConfigurable is set for tagged fields and children of tagged structs
	userConfigurable bool

	// mapSync is called after field modification to sync back to map
	mapSync func()
}

func (f *field) Name() string {
	return f.name
}

// UserConfigurable reports whether the field, or one of its parent structs,
// is tagged user configurable.
func (f *field) UserConfigurable() bool {
	return f.userConfigurable
}

// EnvName returns the name of the environment variable.
func (f *field) EnvName() string {
	words := utils.SplitNameByWords(f.name)

	upper := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			upper = append(upper, strings.ToUpper(w))
		}
	}

	return strings.Join(upper, "_")
}

func (f *field) Meta() map[string]string {
	return f.meta
}

func (f *field) Tag(key string) (string, bool) {
	return f.tag.Lookup(key)
}

func (f *field) ParentTag() reflect.StructTag {
	return f.parentTag
}

// String returns the current value as text, the way Set reads it.
func (f *field) String() string {
	return text(f.field)
}

func (f *field) IsZero() bool {
	return f.field.IsValid() && f.field.IsZero()
}

// Set parses value into the field. Scalars are read with strconv,
// time.Duration with time.ParseDuration, slices of scalars as a comma
// separated list, and maps, structs and arrays as JSON. Types implementing
// encoding.TextUnmarshaler decode themselves.
func (f *field) Set(value string) error {
	if err := setText(f.field, value); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}

	if f.mapSync != nil {
		f.mapSync()
	}

	return nil
}

// FieldValue is a field in a struct.
func (f *field) FieldValue() reflect.Value {
	return f.field
}

// FieldType is a field in a struct.
func (f *field) FieldType() reflect.StructField {
	return f.fieldType
}

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	durationType        = reflect.TypeOf(time.Duration(0))
)

func setText(v reflect.Value, value string) error {
	t := v.Type()

	if v.CanAddr() && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		u, _ := v.Addr().Interface().(encoding.TextUnmarshaler)
		return u.UnmarshalText([]byte(value))
	}

	switch t.Kind() {
	case reflect.Ptr:
		elem := reflect.New(t.Elem())
		if err := setText(elem.Elem(), value); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	case reflect.String:
		v.SetString(value)
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if t == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}

		i, err := strconv.ParseInt(value, 0, t.Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 0, t.Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		fl, err := strconv.ParseFloat(value, t.Bits())
		if err != nil {
			return err
		}
		v.SetFloat(fl)
		return nil
	case reflect.Slice:
		if isScalar(t.Elem()) {
			return setList(v, value)
		}
		return setJSON(v, value)
	case reflect.Map, reflect.Struct, reflect.Array:
		return setJSON(v, value)
	}

	return fmt.Errorf("cannot set %s from text", t)
}

func setList(v reflect.Value, value string) error {
	if strings.TrimSpace(value) == "" {
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
		return nil
	}

	values := strings.Split(value, ",")
	out := reflect.MakeSlice(v.Type(), len(values), len(values))

	for i, item := range values {
		if err := setText(out.Index(i), strings.TrimSpace(item)); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}

	v.Set(out)
	return nil
}

func setJSON(v reflect.Value, value string) error {
	out := reflect.New(v.Type())
	if err := json.Unmarshal([]byte(value), out.Interface()); err != nil {
		return err
	}

	v.Set(out.Elem())
	return nil
}

func isScalar(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}

	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}

	return false
}

// text is the reverse of setText for the values it supports.
func text(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	if v.Type().Implements(textMarshalerType) {
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return ""
		}
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return ""
		}
		return string(b)
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return ""
		}
		return text(v.Elem())
	case reflect.Slice:
		if isScalar(v.Type().Elem()) {
			items := make([]string, v.Len())
			for i := range items {
				items[i] = text(v.Index(i))
			}
			return strings.Join(items, ",")
		}
		fallthrough
	case reflect.Map, reflect.Struct, reflect.Array:
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(b)
	}

	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}

	return fmt.Sprint(v.Interface())
}
