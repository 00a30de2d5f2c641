package geom

import "math"

// Ring is a closed vertex ring: the first and last points are equal.
// A valid boundary ring has at least three distinct vertices, non-zero
// area, and no self-intersections; pkg/boundary enforces this.
type Ring []Point

// Closed reports whether the ring's first and last points coincide.
func (r Ring) Closed() bool {
	return len(r) >= 2 && r[0].Near(r[len(r)-1])
}

// Close returns a copy of r with the closing point appended if missing.
func (r Ring) Close() Ring {
	if len(r) == 0 || r.Closed() {
		return r
	}
	out := make(Ring, len(r)+1)
	copy(out, r)
	out[len(r)] = r[0]
	return out
}

// Area returns the signed area of the ring (shoelace formula).
// Positive for counter-clockwise winding.
func (r Ring) Area() float64 {
	var sum float64
	for i := 0; i+1 < len(r); i++ {
		sum += r[i].Cross(r[i+1])
	}
	return sum / 2
}

// Reverse returns a copy of r with the winding direction flipped.
func (r Ring) Reverse() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Bounds returns the ring's axis-aligned bounding box.
func (r Ring) Bounds() BBox {
	b, _ := BoundsOf(r)
	return b
}

// Edges returns the ring's edges as segments.
func (r Ring) Edges() []Segment {
	if len(r) < 2 {
		return nil
	}
	edges := make([]Segment, 0, len(r)-1)
	for i := 0; i+1 < len(r); i++ {
		edges = append(edges, Segment{A: r[i], B: r[i+1]})
	}
	return edges
}

// OnEdge reports whether p lies within tol of one of the ring's edges.
func (r Ring) OnEdge(p Point, tol float64) bool {
	for i := 0; i+1 < len(r); i++ {
		if (Segment{A: r[i], B: r[i+1]}).DistToPoint(p) <= tol {
			return true
		}
	}
	return false
}

// Contains reports whether p lies inside the ring or on its edge.
// Interior membership uses an even-odd ray cast with the half-open edge
// rule, which is stable for rays passing through vertices; points on the
// edge itself are resolved by a distance check first.
func (r Ring) Contains(p Point) bool {
	if len(r) < 4 {
		return false
	}
	if r.OnEdge(p, Eps) {
		return true
	}
	inside := false
	for i := 0; i+1 < len(r); i++ {
		a, b := r[i], r[i+1]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xInt := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if xInt > p.X {
				inside = !inside
			}
		}
	}
	return inside
}

// SelfIntersects reports whether any two non-adjacent edges of the ring
// cross. Quadratic in the edge count; boundary rings are small.
func (r Ring) SelfIntersects() bool {
	edges := r.Edges()
	n := len(edges)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			// The first and last edges are adjacent through the
			// closing point.
			if i == 0 && j == n-1 {
				continue
			}
			ts, to, ok := edges[i].Intersect(edges[j])
			if !ok {
				continue
			}
			// Shared vertices between consecutive edges are not
			// crossings.
			if (ts < Eps || ts > 1-Eps) && (to < Eps || to > 1-Eps) {
				continue
			}
			return true
		}
	}
	return false
}

// RotateAbout returns a copy of the ring rotated by deg degrees around c.
func (r Ring) RotateAbout(deg float64, c Point) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = p.RotateAbout(deg, c)
	}
	return out
}

// Polygon is a filled region bounded by an outer ring, minus any holes.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// Bounds returns the bounding box of the outer ring.
func (p Polygon) Bounds() BBox { return p.Outer.Bounds() }

// Area returns the absolute area of the polygon, holes subtracted.
func (p Polygon) Area() float64 {
	a := math.Abs(p.Outer.Area())
	for _, h := range p.Holes {
		a -= math.Abs(h.Area())
	}
	return a
}

// Contains reports whether pt lies inside the polygon or on one of its
// rings. A point inside a hole is outside the polygon, but a point on a
// hole's edge is on the polygon.
func (p Polygon) Contains(pt Point) bool {
	if !p.Outer.Contains(pt) {
		return false
	}
	for _, h := range p.Holes {
		if h.OnEdge(pt, Eps) {
			return true
		}
		if h.Contains(pt) {
			return false
		}
	}
	return true
}

// RotateAbout returns a copy of the polygon rotated by deg degrees around c.
func (p Polygon) RotateAbout(deg float64, c Point) Polygon {
	out := Polygon{Outer: p.Outer.RotateAbout(deg, c)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, h.RotateAbout(deg, c))
	}
	return out
}
