// Package plugins describes the xsettings pipeline stage interface.
// it exists to let stages live in their own packages without circular deps.
package plugins

import (
	"errors"
	"log"
	"runtime"

	"github.com/sxwebdev/xsettings/flat"
)

// Plugin is the common interface for all pipeline stages.
type Plugin interface {
	Parse() error
}

// Walker is the interface for stages that take the whole
// settings value, like validators.
type Walker interface {
	Plugin

	Walk(config any) error
}

// Visitor is the interface for stages that require a flat view
// of the settings, like defaults and env vars.
type Visitor interface {
	Plugin

	Visit(fields flat.Fields) error
}

var tags = map[string]string{}

// ErrUnsupported is returned for plugins that are neither Walker nor Visitor.
var ErrUnsupported = errors.New("unsupported plugins. expecting a Walker or Visitor")

// RegisterTag allows stages to ensure their tag is unique.
// they must call this function from an init.
func RegisterTag(name string) {
	if pkg, exists := tags[name]; exists {
		log.Panicf("tag %s already registered by %s", name, pkg)
	}

	pc, _, _, _ := runtime.Caller(1) //nolint:dogsled
	tags[name] = runtime.FuncForPC(pc).Name()
}
