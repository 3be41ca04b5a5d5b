package schema

import (
	"reflect"
	"strconv"
	"strings"
)

// TagUserConfigurable is the struct tag key marking a field user configurable.
const TagUserConfigurable = "configurable"

// IsUserConfigurable reports whether the tag marks its field user configurable.
func IsUserConfigurable(tag reflect.StructTag) bool {
	v, ok := tag.Lookup(TagUserConfigurable)
	if !ok {
		return false
	}

	configurable, err := strconv.ParseBool(v)
	return err == nil && configurable
}

// UserConfigurable returns the field declaration marked user configurable.
// Every other tag of the field is kept as is, so validation and decoding are
// not affected. It is meant for settings types built with reflect.StructOf;
// static declarations just write the tag:
//
//	Model string `json:"model" configurable:"true"`
func UserConfigurable(f reflect.StructField) reflect.StructField {
	if IsUserConfigurable(f.Tag) {
		return f
	}

	tag := TagUserConfigurable + `:"true"`
	if v, ok := f.Tag.Lookup(TagUserConfigurable); ok {
		old := TagUserConfigurable + ":" + strconv.Quote(v)
		f.Tag = reflect.StructTag(strings.Replace(string(f.Tag), old, tag, 1))
		return f
	}

	if f.Tag != "" {
		tag = string(f.Tag) + " " + tag
	}

	f.Tag = reflect.StructTag(tag)
	return f
}
