package xsettings

import (
	"fmt"
	"reflect"
)

// Configurable is a component with canonical default settings.
type Configurable interface {
	// Name identifies the component in a Registry.
	Name() string
	// Prefix is the env variable prefix of the component, may be empty.
	Prefix() string
	// SettingsType is the concrete type of the component settings.
	SettingsType() reflect.Type
	// UserConfig returns the user configurable part of the defaults.
	UserConfig() (map[string]any, error)
	// BuildConfiguration applies overrides on top of the defaults.
	BuildConfiguration(overrides map[string]any) (Root, error)
}

var _ Configurable = (*Component[Settings])(nil)

type ComponentOption func(*componentOptions)

type componentOptions struct {
	prefix string
	opts   []Option
}

// WithPrefix sets the component prefix. Builds of a prefixed component read
// PREFIX_FIELD_PATH env variables for user configurable fields.
func WithPrefix(prefix string) ComponentOption {
	return func(o *componentOptions) {
		o.prefix = prefix
	}
}

// WithBuildOptions sets options used by every Build of the component.
func WithBuildOptions(opts ...Option) ComponentOption {
	return func(o *componentOptions) {
		o.opts = append(o.opts, opts...)
	}
}

// Component associates a component name with its canonical defaults.
// The defaults are checked once, when the component is created, and are
// read-only afterwards.
type Component[T Root] struct {
	name     string
	prefix   string
	defaults T
	opts     []Option
}

// NewComponent validates defaults and returns the component.
func NewComponent[T Root](name string, defaults T, opts ...ComponentOption) (*Component[T], error) {
	co := &componentOptions{}
	for _, opt := range opts {
		opt(co)
	}

	o := newOptions(co.opts)

	exported, err := Export(defaults)
	if err != nil {
		return nil, err
	}

	// defaults must be a valid settings value on their own
	if _, err := parse[T](exported, &options{logger: o.logger, validators: o.validators}); err != nil {
		return nil, fmt.Errorf("component %s defaults: %w", name, err)
	}

	c := &Component[T]{
		name:     name,
		prefix:   co.prefix,
		defaults: copyOf(defaults),
		opts:     co.opts,
	}

	if c.prefix != "" {
		c.opts = append([]Option{WithEnvPrefix(c.prefix)}, c.opts...)
	}

	return c, nil
}

// MustComponent is like NewComponent but panics on error.
func MustComponent[T Root](name string, defaults T, opts ...ComponentOption) *Component[T] {
	c, err := NewComponent(name, defaults, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Component[T]) Name() string {
	return c.name
}

func (c *Component[T]) Prefix() string {
	return c.prefix
}

func (c *Component[T]) SettingsType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Defaults returns a deep copy of the canonical defaults.
func (c *Component[T]) Defaults() T {
	return copyOf(c.defaults)
}

// UserConfig returns the user configurable part of the defaults, without
// building the component.
func (c *Component[T]) UserConfig() (map[string]any, error) {
	return UserConfig(c.Defaults())
}

// Build applies overrides on top of the defaults, see Build.
func (c *Component[T]) Build(overrides map[string]any, opts ...Option) (T, error) {
	all := make([]Option, 0, len(c.opts)+len(opts))
	all = append(all, c.opts...)
	all = append(all, opts...)

	return Build(c.Defaults(), overrides, all...)
}

// BuildConfiguration is Build for callers holding a Configurable.
func (c *Component[T]) BuildConfiguration(overrides map[string]any) (Root, error) {
	out, err := c.Build(overrides)
	if err != nil {
		return nil, err
	}
	return out, nil
}
