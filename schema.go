package xsettings

import (
	"reflect"

	"github.com/sxwebdev/xsettings/schema"
)

type (
	// Configuration is embedded by configuration fragments, the nested
	// building blocks of a settings tree.
	Configuration = schema.Configuration
	// Settings is embedded by settings roots and carries their mandatory
	// name and description.
	Settings = schema.Settings
	// Fragment is implemented by every struct embedding Configuration.
	Fragment = schema.Fragment
	// Root is implemented by every struct embedding Settings.
	Root = schema.Root
)

// UserConfigurable marks a field declaration user configurable, see
// schema.UserConfigurable.
func UserConfigurable(f reflect.StructField) reflect.StructField {
	return schema.UserConfigurable(f)
}
