package xsettings

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry maps component names to their Configurable.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Configurable
	logger     *zap.Logger
}

// NewRegistry returns an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{
		components: make(map[string]Configurable),
		logger:     logger,
	}
}

// Register adds c. Names are unique within a registry.
func (r *Registry) Register(c Configurable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[c.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, c.Name())
	}

	r.components[c.Name()] = c

	r.logger.Debug("component registered",
		zap.String("name", c.Name()),
		zap.String("prefix", c.Prefix()),
		zap.Stringer("type", c.SettingsType()))

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(c Configurable) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (Configurable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.components[name]
	return c, ok
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// UserConfig returns the user configurable defaults of every component,
// keyed by component name.
func (r *Registry) UserConfig() (map[string]map[string]any, error) {
	out := make(map[string]map[string]any)

	for _, name := range r.Names() {
		c, ok := r.Lookup(name)
		if !ok {
			continue
		}

		cfg, err := c.UserConfig()
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", name, err)
		}
		out[name] = cfg
	}

	return out, nil
}

// Build builds the settings of the named component with overrides.
func (r *Registry) Build(name string, overrides map[string]any) (Root, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("xsettings: unknown component %q", name)
	}

	return c.BuildConfiguration(overrides)
}

var defaultRegistry = NewRegistry(nil)

// Register adds c to the default registry.
func Register(c Configurable) error {
	return defaultRegistry.Register(c)
}

// MustRegister adds c to the default registry and panics on error.
// It is meant to be called from package init or var blocks.
func MustRegister(c Configurable) {
	defaultRegistry.MustRegister(c)
}

// Lookup finds a component in the default registry.
func Lookup(name string) (Configurable, bool) {
	return defaultRegistry.Lookup(name)
}

// DefaultRegistry returns the registry used by Register and Lookup.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
