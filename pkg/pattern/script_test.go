package pattern

import (
	"errors"
	"testing"

	"github.com/chazu/filigree/pkg/geom"
)

func TestScriptGenerate(t *testing.T) {
	gen := NewScript()
	src := `
; one diagonal across the box, sized from the bbox builtins
(line (bbox-min-x) (bbox-min-y) (bbox-max-x) (bbox-max-y))
`
	params := gen.Defaults().Merge(Params{"source": src})
	g, err := gen.Generate(testBox, params)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(g.Lines))
	}
	want := geom.Segment{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 100, Y: 100}}
	if !g.Lines[0].A.Near(want.A) || !g.Lines[0].B.Near(want.B) {
		t.Errorf("line = %+v, want %+v", g.Lines[0], want)
	}
}

func TestScriptReadsParams(t *testing.T) {
	gen := NewScript()
	src := `(line 0 (param "offset" 0) 10 (param "offset" 0))`
	params := gen.Defaults().Merge(Params{"source": src, "offset": 7.0})
	g, err := gen.Generate(testBox, params)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Lines) != 1 || g.Lines[0].A.Y != 7 {
		t.Errorf("geometry = %+v, want line at y=7", g)
	}
}

func TestScriptEmptySource(t *testing.T) {
	gen := NewScript()
	_, err := gen.Generate(testBox, gen.Defaults())
	var perr *ParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParameterError", err)
	}
	if perr.Param != "source" {
		t.Errorf("offending param = %q, want source", perr.Param)
	}
}

func TestScriptBadSource(t *testing.T) {
	gen := NewScript()
	params := gen.Defaults().Merge(Params{"source": "(line 1 2"})
	_, err := gen.Generate(testBox, params)
	var perr *ParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParameterError", err)
	}
}

func TestScriptDeterminism(t *testing.T) {
	gen := NewScript()
	src := `(line 0 0 (bbox-width) (bbox-height))`
	params := gen.Defaults().Merge(Params{"source": src})
	a, err := gen.Generate(testBox, params)
	if err != nil {
		t.Fatal(err)
	}
	b, err := gen.Generate(testBox, params)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Lines) != len(b.Lines) || a.Lines[0] != b.Lines[0] {
		t.Errorf("repeated evaluation differs: %+v vs %+v", a.Lines, b.Lines)
	}
}
