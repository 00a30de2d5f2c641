package geom

import (
	"math"
	"testing"
)

func TestPointRotateAbout(t *testing.T) {
	p := Point{X: 10, Y: 0}
	got := p.RotateAbout(90, Point{})
	want := Point{X: 0, Y: 10}
	if !got.Near(want) {
		t.Errorf("rotate 90 about origin = %v, want %v", got, want)
	}

	// Rotation about a non-origin center.
	got = Point{X: 60, Y: 50}.RotateAbout(180, Point{X: 50, Y: 50})
	want = Point{X: 40, Y: 50}
	if !got.Near(want) {
		t.Errorf("rotate 180 about (50,50) = %v, want %v", got, want)
	}

	// Full turn is the identity.
	got = p.RotateAbout(360, Point{X: 3, Y: 7})
	if !got.Near(p) {
		t.Errorf("rotate 360 = %v, want %v", got, p)
	}
}

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Segment
		wantOK bool
		wantTs float64
	}{
		{
			name:   "crossing at midpoints",
			a:      Segment{Point{0, 0}, Point{10, 0}},
			b:      Segment{Point{5, -5}, Point{5, 5}},
			wantOK: true,
			wantTs: 0.5,
		},
		{
			name:   "touch at endpoint",
			a:      Segment{Point{0, 0}, Point{10, 0}},
			b:      Segment{Point{10, 0}, Point{10, 10}},
			wantOK: true,
			wantTs: 1.0,
		},
		{
			name:   "disjoint",
			a:      Segment{Point{0, 0}, Point{10, 0}},
			b:      Segment{Point{20, -5}, Point{20, 5}},
			wantOK: false,
		},
		{
			name:   "parallel",
			a:      Segment{Point{0, 0}, Point{10, 0}},
			b:      Segment{Point{0, 1}, Point{10, 1}},
			wantOK: false,
		},
		{
			name:   "collinear overlap reports no crossing",
			a:      Segment{Point{0, 0}, Point{10, 0}},
			b:      Segment{Point{5, 0}, Point{15, 0}},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(ts-tt.wantTs) > 1e-9 {
				t.Errorf("ts = %g, want %g", ts, tt.wantTs)
			}
		})
	}
}

func TestSegmentDistToPoint(t *testing.T) {
	s := Segment{Point{0, 0}, Point{10, 0}}
	if d := s.DistToPoint(Point{5, 3}); math.Abs(d-3) > 1e-9 {
		t.Errorf("perpendicular distance = %g, want 3", d)
	}
	if d := s.DistToPoint(Point{-4, 0}); math.Abs(d-4) > 1e-9 {
		t.Errorf("distance beyond endpoint = %g, want 4", d)
	}
	if d := s.DistToPoint(Point{7, 0}); d > 1e-9 {
		t.Errorf("on-segment distance = %g, want 0", d)
	}
}

func TestBBox(t *testing.T) {
	b := BBox{MinX: 0, MinY: 0, MaxX: 30, MaxY: 40}
	if got := b.Diagonal(); math.Abs(got-50) > 1e-9 {
		t.Errorf("diagonal = %g, want 50", got)
	}
	if got := b.Center(); !got.Near(Point{15, 20}) {
		t.Errorf("center = %v, want (15,20)", got)
	}
	if b.Empty() {
		t.Error("non-degenerate box reported empty")
	}
	if !(BBox{MinX: 1, MinY: 1, MaxX: 1, MaxY: 5}).Empty() {
		t.Error("zero-width box should be empty")
	}

	other := BBox{MinX: 25, MinY: 35, MaxX: 50, MaxY: 60}
	if !b.Overlaps(other) {
		t.Error("overlapping boxes reported disjoint")
	}
	u := b.Union(other)
	if u.MinX != 0 || u.MinY != 0 || u.MaxX != 50 || u.MaxY != 60 {
		t.Errorf("union = %+v", u)
	}
}

func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Error("BoundsOf(nil) should report no bounds")
	}
	b, ok := BoundsOf([]Point{{1, 2}, {-3, 4}, {5, -6}})
	if !ok {
		t.Fatal("BoundsOf returned no bounds")
	}
	want := BBox{MinX: -3, MinY: -6, MaxX: 5, MaxY: 4}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestGeometryCollection(t *testing.T) {
	var g Geometry
	if !g.Empty() {
		t.Error("zero Geometry should be empty")
	}
	if _, ok := g.Bounds(); ok {
		t.Error("empty Geometry should report no bounds")
	}

	g.Lines = append(g.Lines, Segment{Point{0, 0}, Point{10, 0}})
	g.Polygons = append(g.Polygons, Polygon{
		Outer: Ring{{20, 20}, {30, 20}, {30, 30}, {20, 30}, {20, 20}},
	})
	if g.PieceCount() != 2 {
		t.Errorf("piece count = %d, want 2", g.PieceCount())
	}
	b, ok := g.Bounds()
	if !ok {
		t.Fatal("Bounds returned no bounds")
	}
	want := BBox{MinX: 0, MinY: 0, MaxX: 30, MaxY: 30}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
	if n := len(g.Points()); n != 2+5 {
		t.Errorf("point count = %d, want 7", n)
	}
}
