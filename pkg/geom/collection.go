package geom

// Geometry is a flat, ordered collection of line and polygon pieces. It is
// the shape of both raw pattern output and clipped results: generators
// over-produce a Geometry spanning a bounding box, the clipper reduces it
// to the boundary, and serializers walk it piece by piece. The zero value
// is an explicitly empty collection, which is a valid result (a pattern
// that does not touch the boundary).
type Geometry struct {
	Lines    []Segment
	Polygons []Polygon
}

// Empty reports whether the collection has no pieces.
func (g Geometry) Empty() bool {
	return len(g.Lines) == 0 && len(g.Polygons) == 0
}

// PieceCount returns the number of pieces in the collection.
func (g Geometry) PieceCount() int {
	return len(g.Lines) + len(g.Polygons)
}

// Bounds returns the bounding box of all pieces. The second return value
// is false for an empty collection.
func (g Geometry) Bounds() (BBox, bool) {
	var b BBox
	have := false
	for _, s := range g.Lines {
		if !have {
			b = s.Bounds()
			have = true
		} else {
			b = b.Union(s.Bounds())
		}
	}
	for _, p := range g.Polygons {
		if !have {
			b = p.Bounds()
			have = true
		} else {
			b = b.Union(p.Bounds())
		}
	}
	return b, have
}

// Points returns every coordinate appearing in the collection, in piece
// order. Used by containment verification.
func (g Geometry) Points() []Point {
	var pts []Point
	for _, s := range g.Lines {
		pts = append(pts, s.A, s.B)
	}
	for _, p := range g.Polygons {
		pts = append(pts, p.Outer...)
		for _, h := range p.Holes {
			pts = append(pts, h...)
		}
	}
	return pts
}

// RotateAbout returns a copy of the collection rotated by deg degrees
// around c.
func (g Geometry) RotateAbout(deg float64, c Point) Geometry {
	out := Geometry{}
	if len(g.Lines) > 0 {
		out.Lines = make([]Segment, len(g.Lines))
		for i, s := range g.Lines {
			out.Lines[i] = s.RotateAbout(deg, c)
		}
	}
	if len(g.Polygons) > 0 {
		out.Polygons = make([]Polygon, len(g.Polygons))
		for i, p := range g.Polygons {
			out.Polygons[i] = p.RotateAbout(deg, c)
		}
	}
	return out
}
