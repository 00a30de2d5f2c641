// Package output serializes clipped geometry into distributable vector
// documents: SVG for preview and engraving toolchains, DXF for cutters.
package output

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"

	"github.com/chazu/filigree/pkg/geom"
	"github.com/chazu/filigree/pkg/pattern"
)

// Margin is the fixed visual margin added around the geometry bounds in
// the output document's coordinate frame.
const Margin = 5.0

// Style holds the serializer-facing styling hints drawn from the merged
// parameter set.
type Style struct {
	StrokeColor string
	StrokeWidth float64
}

// DefaultStyle is used for keys absent from the parameter set.
var DefaultStyle = Style{StrokeColor: "black", StrokeWidth: 0.5}

// StyleFromParams reads line_color and line_width from merged parameters.
func StyleFromParams(p pattern.Params) Style {
	s := DefaultStyle
	if c, ok := p.String("line_color"); ok && c != "" {
		s.StrokeColor = c
	}
	if w, ok := p.Float("line_width"); ok && w > 0 {
		s.StrokeWidth = w
	}
	return s
}

func (s Style) attr() string {
	return fmt.Sprintf("stroke:%s;stroke-width:%g;stroke-linecap:round;fill:none",
		s.StrokeColor, s.StrokeWidth)
}

// errWriter remembers the first write error so the svg encoder's unchecked
// writes still surface I/O failures.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}

// WriteSVG writes g to w as a self-contained SVG document whose viewbox is
// the geometry bounds plus Margin on every side. An empty collection
// produces a valid document with an empty drawing area.
func WriteSVG(w io.Writer, g geom.Geometry, style Style) error {
	ew := &errWriter{w: w}
	doc := svg.New(ew)
	// Micron precision is plenty for fabrication outlines.
	doc.Decimals = 3

	b, ok := g.Bounds()
	if !ok {
		b = geom.BBox{}
	}
	minX := b.MinX - Margin
	minY := b.MinY - Margin
	width := b.Width() + 2*Margin
	height := b.Height() + 2*Margin

	doc.Startview(width, height, minX, minY, width, height)
	attr := style.attr()
	for _, s := range g.Lines {
		doc.Line(s.A.X, s.A.Y, s.B.X, s.B.Y, attr)
	}
	for _, p := range g.Polygons {
		doc.Path(pathData(p), attr)
	}
	doc.End()
	return ew.err
}

// pathData renders a polygon (outer ring plus holes) as SVG path data,
// one closed subpath per ring.
func pathData(p geom.Polygon) string {
	d := ringData(p.Outer)
	for _, h := range p.Holes {
		d += " " + ringData(h)
	}
	return d
}

func ringData(r geom.Ring) string {
	if len(r) == 0 {
		return ""
	}
	d := fmt.Sprintf("M %g %g", r[0].X, r[0].Y)
	last := len(r)
	if r.Closed() {
		last--
	}
	for _, pt := range r[1:last] {
		d += fmt.Sprintf(" L %g %g", pt.X, pt.Y)
	}
	return d + " Z"
}
