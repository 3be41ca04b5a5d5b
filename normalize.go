package xsettings

import "reflect"

// Enum is implemented by enumerated types that are not named strings.
// Exports and user configs hold EnumValue() instead of the enumerated value.
//
//	type Priority int
//
//	func (p Priority) EnumValue() any { return int(p) }
type Enum interface {
	EnumValue() any
}

var (
	stringType = reflect.TypeOf("")
	enumType   = reflect.TypeOf((*Enum)(nil)).Elem()
)

// normalize returns the value held by v. Enumerated values, named types
// over a string and Enum implementations, are reduced to their plain value,
// as are slices of them. Other integer kinds keep their type so
// time.Duration stays a duration.
func normalize(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	t := v.Type()
	switch {
	case t.Kind() != reflect.Interface && t.Implements(enumType):
		if t.Kind() == reflect.Ptr && v.IsNil() {
			return nil
		}
		return v.Interface().(Enum).EnumValue()
	case (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() != reflect.Interface && t.Elem().Implements(enumType):
		if t.Kind() == reflect.Slice && v.IsNil() {
			return []any(nil)
		}
		out := make([]any, v.Len())
		for i := range out {
			out[i] = normalize(v.Index(i))
		}
		return out
	case t.Kind() == reflect.String && t != stringType:
		return v.String()
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String && t.Elem() != stringType:
		if v.IsNil() {
			return []string(nil)
		}
		fallthrough
	case t.Kind() == reflect.Array && t.Elem().Kind() == reflect.String && t.Elem() != stringType:
		out := make([]string, v.Len())
		for i := range out {
			out[i] = v.Index(i).String()
		}
		return out
	}

	return v.Interface()
}
