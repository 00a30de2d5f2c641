package pattern

import "github.com/chazu/filigree/pkg/geom"

// ParallelLines is the reference pattern family: straight parallel lines at
// a fixed perpendicular spacing, optionally rotated about the bounding box
// center.
type ParallelLines struct{}

// Name implements Generator.
func (ParallelLines) Name() string { return "parallel_lines" }

// Description implements Generator.
func (ParallelLines) Description() string {
	return "Evenly spaced parallel lines. Parameters: spacing (perpendicular " +
		"distance between lines, > 0), angle_deg (rotation about the bounding " +
		"box center), line_width (styling hint for the serializer)."
}

// Defaults implements Generator.
func (ParallelLines) Defaults() Params {
	return Params{
		"spacing":    5.0,
		"angle_deg":  0.0,
		"line_width": 0.5,
	}
}

// Generate implements Generator. Lines are laid out horizontally around the
// bbox center at the requested spacing, sized per the coverage rule, then
// rotated as a whole.
func (ParallelLines) Generate(bbox geom.BBox, params Params) (geom.Geometry, error) {
	spacing, err := positiveParam(params, "spacing")
	if err != nil {
		return geom.Geometry{}, err
	}
	angle, err := floatParam(params, "angle_deg")
	if err != nil {
		return geom.Geometry{}, err
	}
	return parallelField(bbox, spacing, angle), nil
}

// parallelField builds the horizontal line field covering bbox and rotates
// it by deg about the bbox center. Shared with the cross-hatch generator.
func parallelField(bbox geom.BBox, spacing, deg float64) geom.Geometry {
	span := coverSpan(bbox)
	if span == 0 {
		// Degenerate box: nothing to cover.
		return geom.Geometry{}
	}
	c := bbox.Center()
	offsets := periodicOffsets(span, spacing)
	g := geom.Geometry{Lines: make([]geom.Segment, 0, len(offsets))}
	for _, off := range offsets {
		y := c.Y + off
		g.Lines = append(g.Lines, geom.Segment{
			A: geom.Point{X: c.X - span, Y: y},
			B: geom.Point{X: c.X + span, Y: y},
		})
	}
	if deg != 0 {
		g = g.RotateAbout(deg, c)
	}
	return g
}
