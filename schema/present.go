package schema

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	jsonMarshalerType   = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// isPlainStruct reports whether t is a struct decoded field by field,
// as opposed to types like time.Time that bring their own codec.
func isPlainStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}

	pt := reflect.PointerTo(t)
	for _, codec := range []reflect.Type{jsonUnmarshalerType, textUnmarshalerType, jsonMarshalerType, textMarshalerType} {
		if t.Implements(codec) || pt.Implements(codec) {
			return false
		}
	}

	return true
}

// IsPlainStruct is the exported form of isPlainStruct, after following pointers.
func IsPlainStruct(t reflect.Type) bool {
	return isPlainStruct(Indirect(t))
}

// Paths is a set of dotted leaf paths. Lookups ignore case, like decoding does.
type Paths map[string]struct{}

// Has reports whether path, or one of its ancestors, is a present leaf.
func (p Paths) Has(path string) bool {
	path = strings.ToLower(path)
	for {
		if _, ok := p[path]; ok {
			return true
		}

		i := strings.LastIndexByte(path, '.')
		if i < 0 {
			return false
		}
		path = path[:i]
	}
}

// PresentPaths extracts the set of leaf paths explicitly present in a mapping.
//
// Example: for {"planner": {"budget": {"max_tokens": 10}}}
// it will include "planner.budget.max_tokens".
func PresentPaths(data map[string]any) Paths {
	present := make(Paths)
	collectLeafPaths("", data, present)
	return present
}

func collectLeafPaths(prefix string, data any, out Paths) {
	switch v := data.(type) {
	case map[string]any:
		for k, vv := range v {
			collectLeafPaths(joinPath(prefix, k), vv, out)
		}
	default:
		// Leaf scalar (including nil and arrays) counts as "present".
		if prefix != "" {
			out[strings.ToLower(prefix)] = struct{}{}
		}
	}
}
