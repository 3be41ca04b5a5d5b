package xsettings

import (
	"fmt"

	"github.com/sxwebdev/xsettings/flat"
	"github.com/sxwebdev/xsettings/plugins"
)

// Pipeline runs plugins over a settings value.
type Pipeline interface {
	// Parse runs the Parse method of every plugin in the order they were
	// given and stops at the first error.
	Parse() error

	// Fields returns the flat view shared by the Visitor plugins.
	Fields() flat.Fields
}

// Custom prepares a Pipeline over conf, a pointer to a settings struct.
// Walker plugins receive conf and Visitor plugins its flat view right away,
// nothing is parsed until Parse is called.
func Custom(conf any, ps ...plugins.Plugin) (Pipeline, error) {
	fields, err := flat.View(conf)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		fields:  fields,
		plugins: make([]plugins.Plugin, 0, len(ps)),
	}

	for _, plug := range ps {
		if err := attach(plug, conf, fields); err != nil {
			return nil, err
		}
		p.plugins = append(p.plugins, plug)
	}

	return p, nil
}

func attach(plug plugins.Plugin, conf any, fields flat.Fields) error {
	walker, isWalker := plug.(plugins.Walker)
	visitor, isVisitor := plug.(plugins.Visitor)

	if !isWalker && !isVisitor {
		return fmt.Errorf("%T: %w", plug, plugins.ErrUnsupported)
	}

	if isWalker {
		if err := walker.Walk(conf); err != nil {
			return err
		}
	}

	if isVisitor {
		if err := visitor.Visit(fields); err != nil {
			return err
		}
	}

	return nil
}

type pipeline struct {
	plugins []plugins.Plugin
	fields  flat.Fields
}

func (p *pipeline) Fields() flat.Fields {
	return p.fields
}

func (p *pipeline) Parse() error {
	for _, plug := range p.plugins {
		if err := plug.Parse(); err != nil {
			return err
		}
	}

	return nil
}
