package engine

import (
	"fmt"
	"time"

	"github.com/chazu/filigree/pkg/geom"
)

// EvalTimeout is the hard limit for a single evaluation. User scripts with
// unbounded loops must not hang the pipeline.
const EvalTimeout = 5 * time.Second

// evalResult is the internal type used to pass evaluation results through
// channels.
type evalResult struct {
	geometry geom.Geometry
	errors   []EvalError
	err      error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds EvalTimeout.
//
// On timeout, the goroutine may still be running; its buffered send does
// not block, and the abandoned channel is collected with it.
func waitWithTimeout(ch <-chan evalResult) (geom.Geometry, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.geometry, res.errors, res.err
	case <-timer.C:
		return geom.Geometry{}, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
