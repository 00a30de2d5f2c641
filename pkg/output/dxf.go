package output

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/chazu/filigree/pkg/geom"
)

// patternLayer is the DXF layer carrying the clipped pattern entities.
const patternLayer = "PATTERN"

// WriteDXF saves g to path as a DXF drawing for cutter/engraver
// toolchains. Every piece is emitted as LINE entities on a dedicated
// layer; polygons (and their holes) become closed edge loops. DXF styling
// is the machine operator's concern, so Style does not apply here.
func WriteDXF(path string, g geom.Geometry) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(patternLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("dxf layer: %w", err)
	}

	for _, s := range g.Lines {
		if _, err := d.Line(s.A.X, s.A.Y, 0, s.B.X, s.B.Y, 0); err != nil {
			return fmt.Errorf("dxf line: %w", err)
		}
	}
	for _, p := range g.Polygons {
		if err := ringLines(d, p.Outer); err != nil {
			return err
		}
		for _, h := range p.Holes {
			if err := ringLines(d, h); err != nil {
				return err
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("dxf save: %w", err)
	}
	return nil
}

func ringLines(d *drawing.Drawing, r geom.Ring) error {
	r = r.Close()
	for i := 0; i+1 < len(r); i++ {
		if _, err := d.Line(r[i].X, r[i].Y, 0, r[i+1].X, r[i+1].Y, 0); err != nil {
			return fmt.Errorf("dxf line: %w", err)
		}
	}
	return nil
}
