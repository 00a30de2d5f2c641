// Package infill sequences the pattern pipeline: boundary normalization,
// generator resolution, parameter merge, raw generation, boundary clipping,
// and the handoff to a serializer. Every step is fail-fast; a run either
// fully succeeds or produces nothing.
package infill

import (
	"fmt"
	"io"

	"github.com/chazu/filigree/pkg/boundary"
	"github.com/chazu/filigree/pkg/geom"
	"github.com/chazu/filigree/pkg/kernel"
	"github.com/chazu/filigree/pkg/output"
	"github.com/chazu/filigree/pkg/pattern"
	"github.com/chazu/filigree/pkg/verify"
)

// Request describes one pattern run.
type Request struct {
	// Path is SVG path data describing the boundary outline. Ignored
	// when Ring is set.
	Path string

	// Ring is an already-parsed boundary vertex ring (closing vertex
	// optional). Takes precedence over Path.
	Ring []geom.Point

	// Pattern names the generator to resolve from the registry.
	Pattern string

	// Params are the user parameter overrides, overlaid onto the
	// generator's defaults. Unknown keys pass through to the serializer.
	Params pattern.Params
}

// Result is the output of a successful run, ready for serialization.
type Result struct {
	// Geometry is the clipped pattern, flattened into ordered pieces.
	Geometry geom.Geometry

	// Boundary is the normalized boundary ring the pattern was clipped
	// to.
	Boundary geom.Ring

	// Params is the merged parameter set (defaults plus overrides).
	Params pattern.Params

	// Style carries the styling hints drawn from Params.
	Style output.Style
}

// Pipeline runs pattern requests against an immutable registry and a
// clipping kernel. A Pipeline is safe for concurrent use: it holds no
// per-run state, and its collaborators are read-only after construction.
type Pipeline struct {
	registry  *pattern.Registry
	kernel    kernel.Kernel
	verifyTol float64
	verifyOn  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithVerification enables the containment post-condition check on every
// run: each clipped coordinate must lie within tol of the boundary.
func WithVerification(tol float64) Option {
	return func(p *Pipeline) {
		p.verifyOn = true
		p.verifyTol = tol
	}
}

// New creates a Pipeline around a registry and a clipping kernel.
func New(reg *pattern.Registry, k kernel.Kernel, opts ...Option) *Pipeline {
	p := &Pipeline{registry: reg, kernel: k}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full pipeline for one request.
//
// Errors surface with their taxonomy intact: *boundary.BoundaryError,
// *pattern.UnknownPatternError, *pattern.ParameterError, and
// *kernel.GeometryError all pass through unwrapped for errors.As.
func (p *Pipeline) Run(req Request) (*Result, error) {
	ring, err := p.normalize(req)
	if err != nil {
		return nil, err
	}

	gen, err := p.registry.Lookup(req.Pattern)
	if err != nil {
		return nil, err
	}

	merged := gen.Defaults().Merge(req.Params)
	bbox := ring.Bounds()

	raw, err := gen.Generate(bbox, merged)
	if err != nil {
		return nil, err
	}

	clipped, err := p.kernel.Intersect(raw, geom.Polygon{Outer: ring})
	if err != nil {
		return nil, err
	}

	if p.verifyOn {
		if err := verify.Contained(clipped, ring, p.verifyTol); err != nil {
			return nil, fmt.Errorf("containment check failed: %w", err)
		}
	}

	return &Result{
		Geometry: clipped,
		Boundary: ring,
		Params:   merged,
		Style:    output.StyleFromParams(merged),
	}, nil
}

func (p *Pipeline) normalize(req Request) (geom.Ring, error) {
	if len(req.Ring) > 0 {
		return boundary.FromPoints(req.Ring)
	}
	return boundary.Normalize(req.Path)
}

// WriteSVG runs the pipeline and serializes the result to w as SVG.
func (p *Pipeline) WriteSVG(w io.Writer, req Request) error {
	res, err := p.Run(req)
	if err != nil {
		return err
	}
	return output.WriteSVG(w, res.Geometry, res.Style)
}

// WriteDXF runs the pipeline and saves the result to path as DXF.
func (p *Pipeline) WriteDXF(path string, req Request) error {
	res, err := p.Run(req)
	if err != nil {
		return err
	}
	return output.WriteDXF(path, res.Geometry)
}
