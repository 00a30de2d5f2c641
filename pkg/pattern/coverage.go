package pattern

import (
	"math"

	"github.com/chazu/filigree/pkg/geom"
)

// Coverage rule: a periodic pattern generated for a bounding box must
// survive rotation by any angle about the box center and still cover every
// boundary inscribed in the box. Spanning only the box's width or height is
// not enough — rotating such a pattern leaves corners uncovered for boxes
// with uneven aspect ratios. The safe over-generation bound is the box
// diagonal D: periodic elements cover [center-D, center+D] and each element
// is at least 2*D long, so the covered disc of radius D centered on the box
// center contains the box under every rotation. The cost stays proportional
// to the boundary's extent, never to an arbitrary canvas.

// coverSpan returns the half-extent D of the over-generated region for
// bbox: its diagonal length. Zero for a degenerate box.
func coverSpan(bbox geom.BBox) float64 {
	return bbox.Diagonal()
}

// periodicOffsets returns the offsets (k+0.5)*spacing for k in [-n, n),
// with n chosen so that (n-0.5)*spacing >= span. The half-spacing phase
// keeps the field symmetric about the box center without an element pinned
// to the center line, so a spacing wider than the boundary's extent leaves
// the boundary untouched (an empty clip, which is valid output). spacing
// must be positive; callers validate first.
func periodicOffsets(span, spacing float64) []float64 {
	n := int(math.Ceil(span/spacing + 0.5))
	offsets := make([]float64, 0, 2*n)
	for k := -n; k < n; k++ {
		offsets = append(offsets, (float64(k)+0.5)*spacing)
	}
	return offsets
}
