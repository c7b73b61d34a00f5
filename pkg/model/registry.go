package model

import (
	"fmt"
	"sync"
)

// Registry is a named collection of definitions. Loaders register the
// models they build so nested-field declarations can resolve each other by
// name; lookups are safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition under its declared name. Registering a nil
// definition, an unnamed one, or a duplicate name is an error.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return &InvalidConfigurationError{Detail: "cannot register a nil definition"}
	}
	if def.Name() == "" {
		return &InvalidConfigurationError{Detail: "cannot register an unnamed definition"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Name()]; exists {
		return &InvalidConfigurationError{Detail: fmt.Sprintf("model %q already registered", def.Name())}
	}
	r.defs[def.Name()] = def
	return nil
}

// Lookup resolves a definition by name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// All returns a copy of the name-to-definition mapping.
func (r *Registry) All() map[string]*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*Definition, len(r.defs))
	for name, def := range r.defs {
		out[name] = def
	}
	return out
}
