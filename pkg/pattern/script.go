package pattern

import (
	"fmt"
	"strings"

	"github.com/chazu/filigree/pkg/engine"
	"github.com/chazu/filigree/pkg/geom"
)

// Script runs user-supplied zygomys Lisp to produce pattern geometry,
// opening the generator contract to pattern families that have no built-in
// implementation. The script emits geometry with (line ...) and
// (polygon ...), reads the target region with the bbox-* builtins, and
// reads merged pipeline parameters with (param "name" default).
//
// The coverage guarantee is the script's obligation: it should overspan
// the bounding box diagonal the same way the built-in generators do.
type Script struct {
	engine *engine.Engine
}

// NewScript returns a Script generator backed by a fresh engine.
func NewScript() *Script {
	return &Script{engine: engine.NewEngine()}
}

// Name implements Generator.
func (*Script) Name() string { return "script" }

// Description implements Generator.
func (*Script) Description() string {
	return "Pattern defined by a zygomys Lisp script. Parameters: source " +
		"(script text, required), line_width (styling hint for the " +
		"serializer). All other merged parameters are visible to the script " +
		"via (param \"name\" default)."
}

// Defaults implements Generator.
func (*Script) Defaults() Params {
	return Params{
		"source":     "",
		"line_width": 0.5,
	}
}

// Generate implements Generator. Script failures (parse errors, runtime
// errors, timeout) are reported as *ParameterError on "source", since the
// script text is itself a parameter value.
func (s *Script) Generate(bbox geom.BBox, params Params) (geom.Geometry, error) {
	src, _ := params.String("source")
	if strings.TrimSpace(src) == "" {
		return geom.Geometry{}, &ParameterError{
			Param:      "source",
			Constraint: "must be non-empty script source",
			Value:      src,
		}
	}

	g, evalErrs, err := s.engine.Evaluate(src, bbox, params)
	if err != nil {
		return geom.Geometry{}, &ParameterError{
			Param:      "source",
			Constraint: fmt.Sprintf("script evaluation failed: %v", err),
			Value:      "<script>",
		}
	}
	if len(evalErrs) > 0 {
		return geom.Geometry{}, &ParameterError{
			Param:      "source",
			Constraint: fmt.Sprintf("script error: %v", evalErrs[0]),
			Value:      "<script>",
		}
	}
	return g, nil
}
