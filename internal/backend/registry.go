package backend

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps backend identifiers to the factories that build them.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates a new backend registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name. Identifiers are matched exactly, as
// they come from file names.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" || factory == nil {
		return ErrBackendInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %s", ErrBackendAlreadyRegistered, name)
	}

	r.factories[name] = factory

	return nil
}

// MustRegister is like Register but panics on error. Meant for init functions.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup retrieves the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	return f, ok
}

// Names returns all registered identifiers, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that built-in backends add
// themselves to from their init functions.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory to the default registry. It panics on duplicates.
func Register(name string, factory Factory) {
	defaultRegistry.MustRegister(name, factory)
}
