package pattern

import "github.com/chazu/filigree/pkg/geom"

// CrossHatch overlays two parallel-line fields 90 degrees apart, giving the
// classic hatched engraving fill.
type CrossHatch struct{}

// Name implements Generator.
func (CrossHatch) Name() string { return "cross_hatch" }

// Description implements Generator.
func (CrossHatch) Description() string {
	return "Two perpendicular parallel-line fields. Parameters: spacing " +
		"(perpendicular distance within each field, > 0), angle_deg (rotation " +
		"of the first field about the bounding box center), line_width " +
		"(styling hint for the serializer)."
}

// Defaults implements Generator.
func (CrossHatch) Defaults() Params {
	return Params{
		"spacing":    5.0,
		"angle_deg":  0.0,
		"line_width": 0.5,
	}
}

// Generate implements Generator.
func (CrossHatch) Generate(bbox geom.BBox, params Params) (geom.Geometry, error) {
	spacing, err := positiveParam(params, "spacing")
	if err != nil {
		return geom.Geometry{}, err
	}
	angle, err := floatParam(params, "angle_deg")
	if err != nil {
		return geom.Geometry{}, err
	}
	g := parallelField(bbox, spacing, angle)
	cross := parallelField(bbox, spacing, angle+90)
	g.Lines = append(g.Lines, cross.Lines...)
	return g, nil
}
