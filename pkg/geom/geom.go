// Package geom defines the planar geometry value types shared across
// Filigree: points, segments, rings, polygons, bounding boxes, and the
// flattened geometry collection that moves through the pipeline. All
// values are plain data; third-party geometry representations are
// converted at the kernel and verification boundaries.
package geom

import "math"

// Eps is the tolerance used by the planar predicates in this package.
// Coordinates closer than Eps are treated as coincident.
const Eps = 1e-9

// Point is a 2D point (or vector) in the workpiece plane.
type Point struct {
	X float64
	Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Cross returns the 2D cross product (perp dot) of p and q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Near reports whether p and q are within Eps of each other.
func (p Point) Near(q Point) bool { return p.Dist(q) <= Eps }

// RotateAbout returns p rotated by deg degrees counter-clockwise around c.
func (p Point) RotateAbout(deg float64, c Point) Point {
	rad := deg * math.Pi / 180.0
	sin, cos := math.Sincos(rad)
	dx := p.X - c.X
	dy := p.Y - c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// Segment is a straight line segment from A to B.
type Segment struct {
	A Point
	B Point
}

// Length returns the segment length.
func (s Segment) Length() float64 { return s.A.Dist(s.B) }

// Midpoint returns the segment midpoint.
func (s Segment) Midpoint() Point {
	return Point{(s.A.X + s.B.X) / 2, (s.A.Y + s.B.Y) / 2}
}

// At returns the point at parameter t in [0,1] along the segment.
func (s Segment) At(t float64) Point {
	return Point{s.A.X + t*(s.B.X-s.A.X), s.A.Y + t*(s.B.Y-s.A.Y)}
}

// Bounds returns the axis-aligned bounding box of the segment.
func (s Segment) Bounds() BBox {
	return BBox{
		MinX: math.Min(s.A.X, s.B.X),
		MinY: math.Min(s.A.Y, s.B.Y),
		MaxX: math.Max(s.A.X, s.B.X),
		MaxY: math.Max(s.A.Y, s.B.Y),
	}
}

// RotateAbout returns the segment rotated by deg degrees around c.
func (s Segment) RotateAbout(deg float64, c Point) Segment {
	return Segment{A: s.A.RotateAbout(deg, c), B: s.B.RotateAbout(deg, c)}
}

// DistToPoint returns the distance from p to the closest point on s.
func (s Segment) DistToPoint(p Point) float64 {
	d := s.B.Sub(s.A)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return p.Dist(s.A)
	}
	t := p.Sub(s.A).Dot(d) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(s.At(t))
}

// Intersect computes the intersection of segments s and o. It returns the
// parameters ts (along s) and to (along o) of the crossing point and true
// if the segments intersect, including touches at endpoints. Parallel and
// collinear pairs report no intersection; callers that need collinear
// overlap handling classify by containment instead.
func (s Segment) Intersect(o Segment) (ts, to float64, ok bool) {
	da := s.B.Sub(s.A)
	db := o.B.Sub(o.A)
	div := da.Cross(db)
	if math.Abs(div) < Eps {
		return 0, 0, false
	}
	w := o.A.Sub(s.A)
	ts = w.Cross(db) / div
	to = w.Cross(da) / div
	if ts < -Eps || ts > 1+Eps || to < -Eps || to > 1+Eps {
		return 0, 0, false
	}
	return clamp01(ts), clamp01(to), true
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// BBox is an axis-aligned bounding rectangle.
type BBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Diagonal returns the length of the box diagonal.
func (b BBox) Diagonal() float64 { return math.Hypot(b.Width(), b.Height()) }

// Center returns the box center point.
func (b BBox) Center() Point {
	return Point{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// Empty reports whether the box encloses no area.
func (b BBox) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Overlaps reports whether b and o share any area or edge.
func (b BBox) Overlaps(o BBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// BoundsOf returns the bounding box of a set of points. The second return
// value is false if pts is empty.
func BoundsOf(pts []Point) (BBox, bool) {
	if len(pts) == 0 {
		return BBox{}, false
	}
	b := BBox{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b, true
}
