// Package engine provides the Lisp evaluation engine behind the "script"
// pattern generator. It wraps zygomys in a sandboxed environment and
// produces pattern geometry from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chazu/filigree/pkg/geom"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for pattern scripting. It is safe
// for concurrent use: the Engine holds no shared state, and each call to
// Evaluate creates a fresh sandboxed environment with its own result
// channel, so overlapping evaluations do not observe each other.
type Engine struct{}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs Lisp source and collects the geometry it emits. The script
// sees the target bounding box through the bbox-* builtins and the merged
// parameter map through (param "name" default).
//
// Return semantics:
//   - On success: geometry + nil errors + nil error
//   - On parse/eval failure: zero geometry + eval errors + nil error
//   - On fatal failure (timeout, panic): zero geometry + nil + error
func (e *Engine) Evaluate(source string, bbox geom.BBox, params map[string]any) (geom.Geometry, []EvalError, error) {
	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		g, evalErrs, err := e.evaluate(source, bbox, params)
		ch <- evalResult{geometry: g, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string, bbox geom.BBox, params map[string]any) (geom.Geometry, []EvalError, error) {
	// Empty source is a valid program that emits no geometry.
	if strings.TrimSpace(source) == "" {
		return geom.Geometry{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	col := &collector{bbox: bbox, params: params}
	registerBuiltins(env, col)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return geom.Geometry{}, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return geom.Geometry{}, parseZygomysError(err), nil
	}

	return col.geometry, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers where the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
