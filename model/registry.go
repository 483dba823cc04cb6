package model

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds class schemas by class name.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates a registry with the given schemas. It fails on
// duplicate classes or invalid schemas.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a schema. Classes can only be registered once.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return fmt.Errorf("schema is nil")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schemas == nil {
		r.schemas = make(map[string]*Schema)
	}
	if _, exists := r.schemas[s.Class()]; exists {
		return fmt.Errorf("class %s already registered", s.Class())
	}
	r.schemas[s.Class()] = s
	return nil
}

// Get returns the schema for a class.
func (r *Registry) Get(class string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[class]
	return s, ok
}

// Classes returns the registered class names, sorted.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
