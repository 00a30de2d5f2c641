// Package verify checks the containment post-condition of clipped output:
// every coordinate of the result must lie within (or on) the boundary.
// The boundary is evaluated as a 2D signed distance field built with the
// github.com/deadsy/sdfx CAD library, so "on the boundary" is a distance
// tolerance rather than an exact-arithmetic predicate.
package verify

import (
	"fmt"

	"github.com/chazu/filigree/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultTolerance is the containment tolerance used when the caller has
// no better value. Generous enough to absorb clipping round-off on
// millimeter-scale workpieces.
const DefaultTolerance = 1e-6

// Contained reports whether every coordinate of g lies within tol of the
// region bounded by ring. The first violating point is reported in the
// error.
func Contained(g geom.Geometry, ring geom.Ring, tol float64) error {
	field, err := fieldFor(ring)
	if err != nil {
		return err
	}
	for _, p := range g.Points() {
		// Evaluate returns the signed distance: negative inside the
		// polygon, positive outside.
		if d := field.Evaluate(v2.Vec{X: p.X, Y: p.Y}); d > tol {
			return fmt.Errorf("point (%g, %g) lies %g outside the boundary (tolerance %g)",
				p.X, p.Y, d, tol)
		}
	}
	return nil
}

// fieldFor builds the signed distance field of a boundary ring. The
// closing vertex is dropped; sdfx expects an open vertex list.
func fieldFor(ring geom.Ring) (sdf.SDF2, error) {
	vs := ring
	if ring.Closed() {
		vs = ring[:len(ring)-1]
	}
	pts := make([]v2.Vec, len(vs))
	for i, p := range vs {
		pts[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	field, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, fmt.Errorf("building boundary distance field: %w", err)
	}
	return field, nil
}
