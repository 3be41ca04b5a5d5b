// Package defaults applies `default` struct tags to settings fields.
package defaults

import (
	"fmt"

	"github.com/sxwebdev/xsettings/flat"
	"github.com/sxwebdev/xsettings/plugins"
	"github.com/sxwebdev/xsettings/schema"
)

const tag = "default"

func init() {
	plugins.RegisterTag(tag)
}

// New returns a defaults plugin that fills zero fields.
func New() plugins.Plugin {
	return &visitor{applyDefaults: true}
}

// NewAbsent returns a defaults plugin that fills every field whose path is
// absent from the source mapping the settings were decoded from. Fields that
// were explicitly present keep their value, even a zero one.
func NewAbsent(present schema.Paths) plugins.Plugin {
	return &visitor{applyDefaults: true, present: present}
}

// NewMetaOnly returns a defaults plugin that only registers metadata
// without applying default values. This is useful when you want to
// register defaults for usage/documentation but apply them later.
func NewMetaOnly() plugins.Plugin {
	return &visitor{applyDefaults: false}
}

type visitor struct {
	fields        flat.Fields
	applyDefaults bool
	present       schema.Paths
}

func (v *visitor) Visit(f flat.Fields) error {
	v.fields = f

	for _, f := range v.fields {
		value, ok := f.Tag(tag)
		if !ok {
			continue
		}

		f.Meta()[tag] = value
	}
	return nil
}

func (v *visitor) Parse() error {
	// If applyDefaults is false, skip applying values (only metadata was registered)
	if !v.applyDefaults {
		return nil
	}

	for _, f := range v.fields {
		value, ok := f.Meta()[tag]
		if !ok {
			continue
		}

		if v.present != nil {
			if v.present.Has(f.Name()) {
				continue
			}
		} else if !f.IsZero() {
			// Only set default if field is zero (empty)
			continue
		}

		if err := f.Set(value); err != nil {
			return fmt.Errorf("default tag: %w", err)
		}
	}

	return nil
}
