package schema

import "reflect"

// Fragment is implemented by every struct embedding Configuration.
// Fragments are the nested building blocks of a settings tree.
type Fragment interface {
	configurationFragment()
}

// Configuration marks a struct as a configuration fragment.
//
//	type Budget struct {
//		xsettings.Configuration
//		MaxTokens int `json:"max_tokens" configurable:"true"`
//	}
type Configuration struct{}

func (Configuration) configurationFragment() {}

// Root is implemented by every struct embedding Settings.
type Root interface {
	settingsRoot()
	SettingsName() string
	SettingsDescription() string
}

// Settings is the top of a settings tree for one configurable component.
type Settings struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (Settings) settingsRoot() {}

// SettingsName returns the component name carried by the settings.
func (s Settings) SettingsName() string { return s.Name }

// SettingsDescription returns the human readable description.
func (s Settings) SettingsDescription() string { return s.Description }

// Kind is the variant of a settings field, fixed when the schema of its
// struct type is built.
type Kind uint8

const (
	// KindScalar fields are never part of the user config.
	KindScalar Kind = iota
	// KindUserConfigurable fields are copied verbatim.
	KindUserConfigurable
	// KindFragment fields hold a nested fragment.
	KindFragment
	// KindFragmentSlice fields hold a sequence of fragments.
	KindFragmentSlice
	// KindFragmentMap fields hold a keyed mapping of fragments.
	KindFragmentMap
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindUserConfigurable:
		return "user-configurable"
	case KindFragment:
		return "fragment"
	case KindFragmentSlice:
		return "fragment-slice"
	case KindFragmentMap:
		return "fragment-map"
	}

	return "unknown"
}

var (
	fragmentType = reflect.TypeOf((*Fragment)(nil)).Elem()
	rootType     = reflect.TypeOf((*Root)(nil)).Elem()
)

// IsFragment reports whether values of t are configuration fragments.
// Pointers are followed; interface types are never fragments by themselves.
func IsFragment(t reflect.Type) bool {
	if t == nil || t.Kind() == reflect.Interface {
		return false
	}

	return t.Implements(fragmentType)
}

// IsRoot reports whether values of t are settings roots.
func IsRoot(t reflect.Type) bool {
	if t == nil || t.Kind() == reflect.Interface {
		return false
	}

	return t.Implements(rootType)
}

// Classify returns the variant of a value of type t that carries no tag.
// Interface types, and containers of interface types, report dynamic so
// that the held values are checked one by one.
func Classify(t reflect.Type) (kind Kind, dynamic bool) {
	if t.Kind() == reflect.Interface {
		return KindScalar, true
	}

	if IsFragment(t) {
		return KindFragment, false
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		elem := t.Elem()
		if elem.Kind() == reflect.Interface {
			if t.Kind() == reflect.Map {
				return KindFragmentMap, true
			}
			return KindFragmentSlice, true
		}

		if !IsFragment(elem) {
			return KindScalar, false
		}

		if t.Kind() == reflect.Map {
			return KindFragmentMap, false
		}

		return KindFragmentSlice, false
	}

	return KindScalar, false
}
