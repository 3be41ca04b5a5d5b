// Package customdefaults calls the SetDefaults hook of a settings value.
package customdefaults

import (
	"reflect"

	"github.com/sxwebdev/xsettings/plugins"
)

type setCustomDefaults interface {
	SetDefaults()
}

// New returns a plugin calling SetDefaults() on the walked value, if it has one.
func New() plugins.Plugin {
	return &walker{}
}

type walker struct {
	config any
}

func (v *walker) Parse() error {
	if v.config == nil {
		return nil
	}

	// follow pointers to pointers down to the one carrying the method set
	val := reflect.ValueOf(v.config)
	for val.Kind() == reflect.Ptr && !val.IsNil() && val.Elem().Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if s, ok := val.Interface().(setCustomDefaults); ok {
		s.SetDefaults()
	}

	return nil
}

func (v *walker) Walk(config any) error {
	v.config = config
	return nil
}
