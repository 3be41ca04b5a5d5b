package xsettings

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/sxwebdev/xsettings/schema"
)

// ExtUserConfigurable is the JSON Schema extension set on properties of
// user configurable fields.
const ExtUserConfigurable = "x-user-configurable"

// JSONSchema returns the JSON Schema of the settings type of v. Definitions
// are inlined, unknown properties are not allowed and user configurable
// properties carry "x-user-configurable": true. The title and description
// of a settings root are taken from its Settings.
func JSONSchema(v any) (*jsonschema.Schema, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, ErrUnexpectedType
	}

	typ := schema.Indirect(rv.Type())
	if typ.Kind() != reflect.Struct {
		return nil, ErrUnexpectedType
	}

	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	out := r.ReflectFromType(typ)

	if err := annotate(out, typ); err != nil {
		return nil, err
	}

	if root, ok := v.(Root); ok && !(rv.Kind() == reflect.Ptr && rv.IsNil()) {
		out.Title = root.SettingsName()
		out.Description = root.SettingsDescription()
	}

	return out, nil
}

// annotate walks the settings schema of typ next to its JSON Schema.
func annotate(js *jsonschema.Schema, typ reflect.Type) error {
	if js == nil || js.Properties == nil {
		return nil
	}

	s, err := schema.Of(typ)
	if err != nil {
		return err
	}

	for _, f := range s.Fields {
		prop, ok := js.Properties.Get(f.Key)
		if !ok || prop == nil {
			continue
		}

		if f.UserConfigurable() {
			if prop.Extras == nil {
				prop.Extras = map[string]any{}
			}
			prop.Extras[ExtUserConfigurable] = true
			continue
		}

		if err := annotateType(prop, f.Type); err != nil {
			return err
		}
	}

	return nil
}

func annotateType(js *jsonschema.Schema, t reflect.Type) error {
	t = schema.Indirect(t)

	switch t.Kind() {
	case reflect.Struct:
		if schema.IsPlainStruct(t) {
			return annotate(js, t)
		}
	case reflect.Slice, reflect.Array:
		if js.Items != nil {
			return annotateType(js.Items, t.Elem())
		}
	case reflect.Map:
		if js.AdditionalProperties != nil {
			return annotateType(js.AdditionalProperties, t.Elem())
		}
	}

	return nil
}
