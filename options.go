package xsettings

import (
	"github.com/sxwebdev/xsettings/plugins"
	"github.com/sxwebdev/xsettings/plugins/env"
	"github.com/sxwebdev/xsettings/plugins/validate"
	"go.uber.org/zap"
)

type Option func(*options)

type options struct {
	// skipDefaults set to true will not fill absent fields from 'default' tags.
	skipDefaults bool
	// skipValidation set to true will not run Validate() hooks and 'validate' tags.
	skipValidation bool

	// envPrefix enables env overrides of user configurable fields.
	envPrefix string
	// envEnabled is set when env overrides were requested.
	envEnabled bool
	// envLookup resolves env variables, nil means the process environment.
	envLookup env.LookupFunc

	validators []validate.CustomValidator
	plugins    []plugins.Plugin

	logger *zap.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return o
}

func WithSkipDefaults() Option {
	return func(o *options) {
		o.skipDefaults = true
	}
}

func WithSkipValidation() Option {
	return func(o *options) {
		o.skipValidation = true
	}
}

// WithEnvPrefix overrides user configurable fields from PREFIX_FIELD_PATH
// environment variables. An empty prefix reads FIELD_PATH.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
		o.envEnabled = true
	}
}

// WithEnvLookup replaces the process environment used by WithEnvPrefix,
// e.g. with env.Dotenv.
func WithEnvLookup(lookup env.LookupFunc) Option {
	return func(o *options) {
		o.envLookup = lookup
	}
}

func WithValidators(validators ...validate.CustomValidator) Option {
	return func(o *options) {
		o.validators = append(o.validators, validators...)
	}
}

// WithPlugins appends plugins run after env overrides and before validation.
func WithPlugins(plugins ...plugins.Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugins...)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
