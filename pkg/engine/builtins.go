package engine

import (
	"fmt"

	"github.com/chazu/filigree/pkg/geom"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms pattern-script source before passing it to
// zygomys:
//
//  1. `;` line comments become `//` comments. zygomys uses // for line
//     comments, not the traditional Lisp ;.
//
//  2. Kebab-case identifiers become underscore form: bbox-width ->
//     bbox_width. zygomys does not allow hyphens in identifiers (it
//     interprets them as subtraction).
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters (not a
		// minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Sexp conversion helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a SexpStr.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// floatArgs converts all args to float64, for builtins taking coordinate
// lists.
func floatArgs(name string, args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector accumulates geometry emitted by script builtins during one
// evaluation. Each evaluation gets a fresh collector.
type collector struct {
	bbox     geom.BBox
	params   map[string]any
	geometry geom.Geometry
}

// registerBuiltins installs the pattern-scripting vocabulary into a fresh
// sandbox environment:
//
//	(line x1 y1 x2 y2)            emit one line segment
//	(polygon x1 y1 x2 y2 x3 y3 …) emit a closed polygon (≥ 3 vertices)
//	(param "name" default)        read a merged pipeline parameter
//	(bbox-min-x) (bbox-min-y)     target bounding box accessors
//	(bbox-max-x) (bbox-max-y)
//	(bbox-width) (bbox-height)
//
// Scripts own the coverage obligation: geometry should overspan the
// bounding box diagonal so that rotation and clipping keep full coverage.
func registerBuiltins(env *zygo.Zlisp, col *collector) {

	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("line: want 4 arguments (x1 y1 x2 y2), got %d", len(args))
		}
		f, err := floatArgs("line", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		col.geometry.Lines = append(col.geometry.Lines, geom.Segment{
			A: geom.Point{X: f[0], Y: f[1]},
			B: geom.Point{X: f[2], Y: f[3]},
		})
		return zygo.SexpNull, nil
	})

	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 6 || len(args)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("polygon: want an even number of arguments, at least 6 (x y pairs), got %d", len(args))
		}
		f, err := floatArgs("polygon", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		ring := make(geom.Ring, 0, len(f)/2+1)
		for i := 0; i+1 < len(f); i += 2 {
			ring = append(ring, geom.Point{X: f[i], Y: f[i+1]})
		}
		ring = ring.Close()
		col.geometry.Polygons = append(col.geometry.Polygons, geom.Polygon{Outer: ring})
		return zygo.SexpNull, nil
	})

	env.AddFunction("param", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 || len(args) > 2 {
			return zygo.SexpNull, fmt.Errorf("param: want (param \"name\" [default]), got %d arguments", len(args))
		}
		key, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("param: name: %w", err)
		}
		if v, ok := col.params[key]; ok {
			switch val := v.(type) {
			case float64:
				return &zygo.SexpFloat{Val: val}, nil
			case int:
				return &zygo.SexpInt{Val: int64(val)}, nil
			case int64:
				return &zygo.SexpInt{Val: val}, nil
			case string:
				return &zygo.SexpStr{S: val}, nil
			}
			return zygo.SexpNull, fmt.Errorf("param: %q has unsupported type %T", key, v)
		}
		if len(args) == 2 {
			return args[1], nil
		}
		return zygo.SexpNull, nil
	})

	bboxAccessor := func(name string, value func() float64) {
		env.AddFunction(name, func(env *zygo.Zlisp, fname string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 0 {
				return zygo.SexpNull, fmt.Errorf("%s: takes no arguments", fname)
			}
			return &zygo.SexpFloat{Val: value()}, nil
		})
	}
	bboxAccessor("bbox_min_x", func() float64 { return col.bbox.MinX })
	bboxAccessor("bbox_min_y", func() float64 { return col.bbox.MinY })
	bboxAccessor("bbox_max_x", func() float64 { return col.bbox.MaxX })
	bboxAccessor("bbox_max_y", func() float64 { return col.bbox.MaxY })
	bboxAccessor("bbox_width", func() float64 { return col.bbox.Width() })
	bboxAccessor("bbox_height", func() float64 { return col.bbox.Height() })
}
