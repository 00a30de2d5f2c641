package pattern

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps pattern names to generator instances. It is populated once
// at construction and read-only afterwards, so a single Registry may be
// shared by concurrent pipeline runs.
type Registry struct {
	gens map[string]Generator
}

// NewRegistry builds a registry from the given generators. Duplicate names
// are an error.
func NewRegistry(gens ...Generator) (*Registry, error) {
	r := &Registry{gens: make(map[string]Generator, len(gens))}
	for _, g := range gens {
		name := g.Name()
		if _, exists := r.gens[name]; exists {
			return nil, fmt.Errorf("pattern %q registered twice", name)
		}
		r.gens[name] = g
	}
	return r, nil
}

// DefaultRegistry returns a registry holding the built-in generators.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(ParallelLines{}, CrossHatch{}, NewScript())
	if err != nil {
		// Built-in names are static and distinct.
		panic(err)
	}
	return r
}

// Lookup resolves a pattern name. A miss returns *UnknownPatternError
// carrying the known names for the caller's error message.
func (r *Registry) Lookup(name string) (Generator, error) {
	g, ok := r.gens[name]
	if !ok {
		return nil, &UnknownPatternError{Name: name, Known: r.Names()}
	}
	return g, nil
}

// Names returns the registered pattern names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.gens))
	for name := range r.gens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownPatternError reports a lookup of an unregistered pattern name.
type UnknownPatternError struct {
	Name  string
	Known []string
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("unknown pattern type %q (known: %s)",
		e.Name, strings.Join(e.Known, ", "))
}
