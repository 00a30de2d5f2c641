// Package polyclip implements the kernel.Kernel interface using the
// github.com/ctessum/polyclip-go polygon clipping library for area
// booleans, with segment clipping computed against the boundary edges
// directly. An R-tree prefilter skips pattern elements that cannot touch
// the boundary.
package polyclip

import (
	"fmt"
	"math"
	"sort"

	"github.com/chazu/filigree/pkg/geom"
	"github.com/chazu/filigree/pkg/kernel"
	polyclip "github.com/ctessum/polyclip-go"
	"github.com/dhconnelly/rtreego"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Clipper)(nil)

// minExtent pads degenerate R-tree rectangles; rtreego rejects zero-sized
// dimensions, and axis-aligned segments have zero height or width.
const minExtent = 1e-9

// Clipper implements kernel.Kernel.
type Clipper struct{}

// New returns a new Clipper.
func New() *Clipper {
	return &Clipper{}
}

// Intersect clips g to boundary. A degenerate boundary (zero area) or a
// pattern entirely outside the boundary yields an empty Geometry, not an
// error.
func (c *Clipper) Intersect(g geom.Geometry, boundary geom.Polygon) (geom.Geometry, error) {
	out := geom.Geometry{}
	if math.Abs(boundary.Outer.Area()) < geom.Eps {
		return out, nil
	}
	if g.Empty() {
		return out, nil
	}

	lineOK, polyOK := prefilter(g, boundary.Bounds())

	for i, s := range g.Lines {
		if !lineOK[i] {
			continue
		}
		out.Lines = append(out.Lines, clipSegment(s, boundary)...)
	}
	for i, p := range g.Polygons {
		if !polyOK[i] {
			continue
		}
		pieces, err := clipPolygon(p, boundary)
		if err != nil {
			return geom.Geometry{}, err
		}
		out.Polygons = append(out.Polygons, pieces...)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// R-tree prefilter
// ---------------------------------------------------------------------------

// element is an indexed pattern piece stored in the R-tree.
type element struct {
	rect rtreego.Rect
	line int // index into Lines, or -1
	poly int // index into Polygons, or -1
}

// Bounds implements rtreego.Spatial.
func (e *element) Bounds() rtreego.Rect { return e.rect }

func toRect(b geom.BBox) rtreego.Rect {
	w := math.Max(b.Width(), minExtent)
	h := math.Max(b.Height(), minExtent)
	r, err := rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{w, h})
	if err != nil {
		// Extents are clamped positive above.
		panic(fmt.Sprintf("rtreego.NewRect: %v", err))
	}
	return r
}

// prefilter indexes every pattern element and marks the ones whose bounds
// overlap the boundary's bounds. Elements far outside skip the precise
// intersection step; the original element order is preserved by returning
// index-keyed sets rather than the unordered tree results.
func prefilter(g geom.Geometry, bounds geom.BBox) (lineOK, polyOK []bool) {
	lineOK = make([]bool, len(g.Lines))
	polyOK = make([]bool, len(g.Polygons))

	tree := rtreego.NewTree(2, 25, 50)
	for i, s := range g.Lines {
		tree.Insert(&element{rect: toRect(s.Bounds()), line: i, poly: -1})
	}
	for i, p := range g.Polygons {
		tree.Insert(&element{rect: toRect(p.Bounds()), line: -1, poly: i})
	}

	for _, hit := range tree.SearchIntersect(toRect(bounds)) {
		e := hit.(*element)
		if e.line >= 0 {
			lineOK[e.line] = true
		} else {
			polyOK[e.poly] = true
		}
	}
	return lineOK, polyOK
}

// ---------------------------------------------------------------------------
// Segment clipping
// ---------------------------------------------------------------------------

// clipSegment returns the sub-segments of s lying within boundary. The
// segment is split at every crossing with a boundary edge, then each
// interval is classified by the containment of its midpoint; adjacent kept
// intervals merge into a single fragment. Points exactly on the boundary
// count as inside, so tangent fragments survive.
//
// No library in reach clips open polylines against polygons (area boolean
// kernels only handle region∩region), so this one routine is computed here
// from the segment intersection predicate.
func clipSegment(s geom.Segment, boundary geom.Polygon) []geom.Segment {
	ts := []float64{0, 1}
	collect := func(r geom.Ring) {
		for i := 0; i+1 < len(r); i++ {
			if t, _, ok := s.Intersect(geom.Segment{A: r[i], B: r[i+1]}); ok {
				ts = append(ts, t)
			}
		}
	}
	collect(boundary.Outer)
	for _, h := range boundary.Holes {
		collect(h)
	}
	sort.Float64s(ts)

	var out []geom.Segment
	var runStart, runEnd float64
	inRun := false
	flush := func() {
		if !inRun {
			return
		}
		frag := geom.Segment{A: s.At(runStart), B: s.At(runEnd)}
		if !frag.A.Near(frag.B) {
			out = append(out, frag)
		}
		inRun = false
	}
	for i := 0; i+1 < len(ts); i++ {
		t0, t1 := ts[i], ts[i+1]
		if t1-t0 < 1e-12 {
			continue
		}
		if boundary.Contains(s.At((t0 + t1) / 2)) {
			if !inRun {
				runStart = t0
				inRun = true
			}
			runEnd = t1
		} else {
			flush()
		}
	}
	flush()
	return out
}

// ---------------------------------------------------------------------------
// Polygon clipping
// ---------------------------------------------------------------------------

// clipPolygon intersects p with boundary using the polyclip boolean kernel
// and normalizes the resulting contours into polygons with holes. polyclip
// panics on some pathological inputs; those surface as *kernel.GeometryError
// rather than crashing the pipeline.
func clipPolygon(p, boundary geom.Polygon) (pieces []geom.Polygon, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &kernel.GeometryError{
				Op:     "polygon intersection",
				Detail: fmt.Sprint(r),
			}
		}
	}()

	subject := toPolyclip(p)
	clip := toPolyclip(boundary)
	res := subject.Construct(polyclip.INTERSECTION, clip)

	var rings []geom.Ring
	for _, contour := range res {
		ring := fromContour(contour)
		if len(ring) < 4 || math.Abs(ring.Area()) < geom.Eps {
			continue
		}
		rings = append(rings, ring)
	}
	return assemblePolygons(rings), nil
}

func toPolyclip(p geom.Polygon) polyclip.Polygon {
	out := make(polyclip.Polygon, 0, 1+len(p.Holes))
	out = append(out, toContour(p.Outer))
	for _, h := range p.Holes {
		out = append(out, toContour(h))
	}
	return out
}

// toContour converts a closed ring to a polyclip contour, which leaves the
// closing vertex implicit.
func toContour(r geom.Ring) polyclip.Contour {
	n := len(r)
	if r.Closed() {
		n--
	}
	c := make(polyclip.Contour, n)
	for i := 0; i < n; i++ {
		c[i] = polyclip.Point{X: r[i].X, Y: r[i].Y}
	}
	return c
}

func fromContour(c polyclip.Contour) geom.Ring {
	ring := make(geom.Ring, 0, len(c)+1)
	for _, pt := range c {
		ring = append(ring, geom.Point{X: pt.X, Y: pt.Y})
	}
	return ring.Close()
}

// assemblePolygons classifies result contours into outers and holes by
// nesting depth and attaches each hole to its innermost enclosing outer.
// The flattened polygon list keeps the contour order of the outers.
func assemblePolygons(rings []geom.Ring) []geom.Polygon {
	if len(rings) == 0 {
		return nil
	}
	depth := make([]int, len(rings))
	for i := range rings {
		for j := range rings {
			if i != j && rings[j].Contains(rings[i][0]) && !rings[j].OnEdge(rings[i][0], geom.Eps) {
				depth[i]++
			}
		}
	}

	// Outers at even depth, normalized counter-clockwise.
	polyIdx := make([]int, len(rings)) // ring index -> output polygon index
	var out []geom.Polygon
	for i, r := range rings {
		if depth[i]%2 != 0 {
			continue
		}
		if r.Area() < 0 {
			r = r.Reverse()
		}
		polyIdx[i] = len(out)
		out = append(out, geom.Polygon{Outer: r})
	}

	// Holes at odd depth, attached to the smallest enclosing outer,
	// normalized clockwise.
	for i, r := range rings {
		if depth[i]%2 == 0 {
			continue
		}
		parent := -1
		parentArea := math.Inf(1)
		for j := range rings {
			if j == i || depth[j]%2 != 0 {
				continue
			}
			if !rings[j].Contains(r[0]) {
				continue
			}
			if a := math.Abs(rings[j].Area()); a < parentArea {
				parent = j
				parentArea = a
			}
		}
		if parent < 0 {
			continue
		}
		if r.Area() > 0 {
			r = r.Reverse()
		}
		p := &out[polyIdx[parent]]
		p.Holes = append(p.Holes, r)
	}
	return out
}
