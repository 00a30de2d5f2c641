// Package pattern defines the generator contract for decorative infill
// patterns, the parameter merge semantics, and the registry that maps
// pattern names to generator instances.
package pattern

import (
	"fmt"

	"github.com/chazu/filigree/pkg/geom"
)

// Generator is the contract every pattern family implements. Generate must
// be deterministic for identical inputs, must not mutate the parameter map,
// and must produce geometry that fully covers bbox even after the caller
// rotates it by an arbitrary angle (see coverage.go for the span rule).
type Generator interface {
	// Name returns the stable identifier used for registry lookup.
	Name() string

	// Description documents the pattern and its parameter semantics.
	Description() string

	// Defaults returns every parameter the generator consults, each with
	// a valid default. Generate never reads a key absent from this map.
	Defaults() Params

	// Generate produces raw pattern geometry spanning bbox. Invalid
	// parameter values are reported as *ParameterError.
	Generate(bbox geom.BBox, params Params) (geom.Geometry, error)
}

// Params maps parameter names to scalar or string values.
type Params map[string]any

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge overlays user values onto p (the defaults) and returns the result.
// User values win, and unknown user keys are passed through untouched so
// that downstream consumers (e.g. serializer styling) can read them.
// Neither input map is mutated.
func (p Params) Merge(user Params) Params {
	out := p.Clone()
	for k, v := range user {
		out[k] = v
	}
	return out
}

// Float returns the named parameter as a float64. Integer values are
// widened; any other type reports false.
func (p Params) Float(name string) (float64, bool) {
	switch v := p[name].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// String returns the named parameter as a string.
func (p Params) String(name string) (string, bool) {
	s, ok := p[name].(string)
	return s, ok
}

// ParameterError reports a parameter value that violates its declared
// constraint.
type ParameterError struct {
	Param      string
	Constraint string
	Value      any
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %q: %s (got %v)", e.Param, e.Constraint, e.Value)
}

// floatParam reads a required numeric parameter. The key is always present
// after the defaults merge, so a miss means the user overrode it with a
// non-numeric value.
func floatParam(p Params, name string) (float64, error) {
	f, ok := p.Float(name)
	if !ok {
		return 0, &ParameterError{Param: name, Constraint: "must be a number", Value: p[name]}
	}
	return f, nil
}

// positiveParam reads a required numeric parameter that must be > 0.
func positiveParam(p Params, name string) (float64, error) {
	f, err := floatParam(p, name)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, &ParameterError{Param: name, Constraint: "must be positive", Value: f}
	}
	return f, nil
}
