package infill

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/chazu/filigree/pkg/boundary"
	"github.com/chazu/filigree/pkg/geom"
	kernelpolyclip "github.com/chazu/filigree/pkg/kernel/polyclip"
	"github.com/chazu/filigree/pkg/pattern"
)

const squarePath = "M 0 0 L 100 0 L 100 100 L 0 100 Z"

func newPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	return New(pattern.DefaultRegistry(), kernelpolyclip.New(), opts...)
}

func TestRunSquareScenario(t *testing.T) {
	// 100x100 square filled with horizontal lines spaced 10 apart: ten
	// fragments at y = 5, 15, ..., 95, each spanning x in [0,100].
	res, err := newPipeline(t).Run(Request{
		Path:    squarePath,
		Pattern: "parallel_lines",
		Params:  pattern.Params{"spacing": 10.0, "angle_deg": 0.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Geometry.Lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(res.Geometry.Lines))
	}

	ys := make([]float64, 0, 10)
	for _, s := range res.Geometry.Lines {
		if math.Abs(s.A.Y-s.B.Y) > 1e-9 {
			t.Errorf("line not horizontal: %+v", s)
		}
		lo := math.Min(s.A.X, s.B.X)
		hi := math.Max(s.A.X, s.B.X)
		if math.Abs(lo) > 1e-9 || math.Abs(hi-100) > 1e-9 {
			t.Errorf("line x span [%g,%g], want [0,100]", lo, hi)
		}
		ys = append(ys, s.A.Y)
	}
	sort.Float64s(ys)
	for i := 1; i < len(ys); i++ {
		if math.Abs(ys[i]-ys[i-1]-10) > 1e-9 {
			t.Errorf("uneven spacing between y=%g and y=%g", ys[i-1], ys[i])
		}
	}

	// Defaults survive the merge alongside the overrides.
	if w, ok := res.Params.Float("line_width"); !ok || w != 0.5 {
		t.Errorf("line_width = %v, want default 0.5", res.Params["line_width"])
	}
	if !res.Boundary.Closed() {
		t.Error("result boundary not closed")
	}
}

func TestRunRotatedScenario(t *testing.T) {
	res, err := newPipeline(t).Run(Request{
		Path:    squarePath,
		Pattern: "parallel_lines",
		Params:  pattern.Params{"spacing": 10.0, "angle_deg": 45.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Geometry.Empty() {
		t.Fatal("rotated pattern produced nothing")
	}
	for _, s := range res.Geometry.Lines {
		for _, p := range []geom.Point{s.A, s.B} {
			if !res.Boundary.OnEdge(p, 1e-6) {
				t.Errorf("endpoint %v not on the boundary", p)
			}
		}
		if !res.Boundary.Contains(s.Midpoint()) {
			t.Errorf("midpoint %v outside the boundary", s.Midpoint())
		}
	}
}

func TestRunRingInput(t *testing.T) {
	// Ring takes precedence over Path, closing vertex optional.
	res, err := newPipeline(t).Run(Request{
		Path:    "garbage is ignored",
		Ring:    []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
		Pattern: "parallel_lines",
		Params:  pattern.Params{"spacing": 10.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Geometry.Lines) != 10 {
		t.Errorf("got %d lines, want 10", len(res.Geometry.Lines))
	}
}

func TestRunSpacingExceedsExtent(t *testing.T) {
	// Spacing wider than the boundary: a valid empty result, not an error.
	res, err := newPipeline(t).Run(Request{
		Path:    squarePath,
		Pattern: "parallel_lines",
		Params:  pattern.Params{"spacing": 300.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Geometry.Empty() {
		t.Errorf("got %d pieces, want empty geometry", res.Geometry.PieceCount())
	}
}

func TestRunErrorTaxonomy(t *testing.T) {
	p := newPipeline(t)

	_, err := p.Run(Request{Path: "not a path", Pattern: "parallel_lines"})
	var berr *boundary.BoundaryError
	if !errors.As(err, &berr) {
		t.Errorf("bad boundary: err = %v, want *boundary.BoundaryError", err)
	}

	_, err = p.Run(Request{Path: squarePath, Pattern: "zigzag"})
	var uerr *pattern.UnknownPatternError
	if !errors.As(err, &uerr) {
		t.Fatalf("unknown pattern: err = %v, want *pattern.UnknownPatternError", err)
	}
	if uerr.Name != "zigzag" || len(uerr.Known) == 0 {
		t.Errorf("unknown pattern error = %+v", uerr)
	}

	_, err = p.Run(Request{
		Path:    squarePath,
		Pattern: "parallel_lines",
		Params:  pattern.Params{"spacing": -1.0},
	})
	var perr *pattern.ParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("bad parameter: err = %v, want *pattern.ParameterError", err)
	}
	if perr.Param != "spacing" {
		t.Errorf("parameter error names %q, want spacing", perr.Param)
	}
}

func TestRunUnknownKeysReachStyle(t *testing.T) {
	// Unknown parameter keys pass through the merge to the serializer.
	res, err := newPipeline(t).Run(Request{
		Path:    squarePath,
		Pattern: "parallel_lines",
		Params:  pattern.Params{"spacing": 10.0, "line_color": "red"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Style.StrokeColor != "red" {
		t.Errorf("stroke color = %q, want red", res.Style.StrokeColor)
	}
	if _, ok := res.Params["line_color"]; !ok {
		t.Error("line_color dropped from merged params")
	}
}

func TestRunConcurrentScriptPattern(t *testing.T) {
	// Concurrent pipeline runs share one registry and therefore one script
	// engine; every run must succeed independently.
	p := newPipeline(t)
	req := Request{
		Path:    squarePath,
		Pattern: "script",
		Params:  pattern.Params{"source": `(line 0 50 100 50)`},
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.Run(req)
			if err != nil {
				t.Errorf("concurrent run failed: %v", err)
				return
			}
			if len(res.Geometry.Lines) != 1 {
				t.Errorf("got %d lines, want 1", len(res.Geometry.Lines))
			}
		}()
	}
	wg.Wait()
}

func TestRunWithVerification(t *testing.T) {
	p := newPipeline(t, WithVerification(1e-6))
	res, err := p.Run(Request{
		Path:    squarePath,
		Pattern: "cross_hatch",
		Params:  pattern.Params{"spacing": 10.0, "angle_deg": 30.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Geometry.Empty() {
		t.Error("verified run produced nothing")
	}
}

func TestWriteSVG(t *testing.T) {
	var sb strings.Builder
	err := newPipeline(t).WriteSVG(&sb, Request{
		Path:    squarePath,
		Pattern: "parallel_lines",
		Params:  pattern.Params{"spacing": 10.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := sb.String()
	if !strings.Contains(doc, "<svg") || strings.Count(doc, "<line") != 10 {
		t.Errorf("unexpected document:\n%s", doc)
	}
}

func TestWriteSVGFailureWritesNothing(t *testing.T) {
	// A failed run must not leave partial output behind.
	var sb strings.Builder
	err := newPipeline(t).WriteSVG(&sb, Request{
		Path:    squarePath,
		Pattern: "no_such_pattern",
	})
	if err == nil {
		t.Fatal("unknown pattern accepted")
	}
	if sb.Len() != 0 {
		t.Errorf("failed run wrote %d bytes", sb.Len())
	}
}
