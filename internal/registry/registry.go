package registry

import (
	"fmt"
)

// Registry is an immutable, ordered snapshot of script types. Order is
// matching priority: earlier types win ties.
type Registry struct {
	types       []ScriptType
	byID        map[string]ScriptType
	diagnostics []Diagnostic
}

// New builds a Registry from types in the given order. Duplicate or empty
// type ids are rejected.
func New(types ...ScriptType) (*Registry, error) {
	r := &Registry{byID: make(map[string]ScriptType, len(types))}
	for _, t := range types {
		if err := r.add(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(t ScriptType) error {
	id := t.TypeID()
	if id == "" {
		return fmt.Errorf("script type id cannot be empty")
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("script type %q is already registered", id)
	}
	r.byID[id] = t
	r.types = append(r.types, t)
	return nil
}

// Types returns the script types in priority order. The slice is a copy.
func (r *Registry) Types() []ScriptType {
	if r == nil {
		return nil
	}
	out := make([]ScriptType, len(r.types))
	copy(out, r.types)
	return out
}

// Get returns the script type with the given id.
func (r *Registry) Get(id string) (ScriptType, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.byID[id]
	return t, ok
}

// IDs returns the type ids in priority order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, len(r.types))
	for i, t := range r.types {
		ids[i] = t.TypeID()
	}
	return ids
}

// Len returns the number of script types in the snapshot.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.types)
}

// Diagnostics returns the problems recorded while the snapshot was built.
func (r *Registry) Diagnostics() []Diagnostic {
	if r == nil {
		return nil
	}
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}
