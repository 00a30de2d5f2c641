// Package boundary normalizes external boundary descriptions into
// validated closed rings. The accepted description is SVG path data (the
// "d" attribute syntax); already-parsed vertex rings enter through
// FromPoints. Either way the result is a simple closed polygon with
// non-zero area, oriented counter-clockwise.
package boundary

import (
	"fmt"
	"math"

	"github.com/chazu/filigree/pkg/geom"
)

// BoundaryError reports a malformed, degenerate, or non-simple boundary
// description. No generation is attempted on a bad boundary.
type BoundaryError struct {
	Reason string
}

func (e *BoundaryError) Error() string {
	return "invalid boundary: " + e.Reason
}

func errf(format string, args ...any) *BoundaryError {
	return &BoundaryError{Reason: fmt.Sprintf(format, args...)}
}

// Normalize parses SVG path data into a validated boundary ring.
func Normalize(pathData string) (geom.Ring, error) {
	pts, closed, err := parsePath(pathData)
	if err != nil {
		return nil, err
	}
	if !closed {
		// Accept paths that return to their start without an explicit Z.
		if len(pts) >= 2 && pts[0].Near(pts[len(pts)-1]) {
			pts = pts[:len(pts)-1]
		} else {
			return nil, errf("path is not closed (missing Z and endpoints differ)")
		}
	}
	return FromPoints(pts)
}

// FromPoints builds a validated boundary ring from an ordered vertex list.
// The closing vertex may be present or omitted. The returned ring is
// closed, deduplicated, and wound counter-clockwise.
func FromPoints(pts []geom.Point) (geom.Ring, error) {
	ring := geom.Ring(dedupe(pts))
	if len(ring) >= 2 && ring[0].Near(ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, errf("need at least 3 distinct vertices, have %d", len(ring))
	}
	ring = ring.Close()
	if math.Abs(ring.Area()) < geom.Eps {
		return nil, errf("ring has zero area")
	}
	if ring.SelfIntersects() {
		return nil, errf("ring is self-intersecting")
	}
	if ring.Area() < 0 {
		ring = ring.Reverse()
	}
	return ring, nil
}

// dedupe drops consecutive coincident points.
func dedupe(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Near(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
