// Package kernel defines the abstract planar geometry kernel interface.
// Implementations provide the boundary-clipping boolean operation behind
// this interface, so the robust intersection backend can be swapped
// without changing the rest of the system.
package kernel

import (
	"fmt"

	"github.com/chazu/filigree/pkg/geom"
)

// Kernel is the abstract clipping kernel interface.
type Kernel interface {
	// Intersect clips g to the closed region bounded by boundary,
	// returning only the portions of g lying within or exactly on it.
	// Line pieces yield zero or more line fragments; polygon pieces
	// yield zero or more polygon fragments, possibly with holes. An
	// empty intersection is an empty Geometry value, not an error.
	// Numerical or topological failures are reported as *GeometryError.
	Intersect(g geom.Geometry, boundary geom.Polygon) (geom.Geometry, error)
}

// GeometryError reports a numerical or topological failure inside the
// geometry kernel during clipping. It is propagated, never swallowed:
// silently wrong fabrication geometry is worse than a failed run.
type GeometryError struct {
	Op     string
	Detail string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry kernel: %s: %s", e.Op, e.Detail)
}
