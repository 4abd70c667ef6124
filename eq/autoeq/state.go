package autoeq

import "math"

// runState classifies one grid point of current - target.
type runState int8

const (
	under   runState = -1
	matched runState = 0
	over    runState = 1
)

func classify(delta, threshold float64) runState {
	switch {
	case math.Abs(delta) < threshold:
		return matched
	case delta > 0:
		return over
	default:
		return under
	}
}

// openRun is a span of non-matched points that has not ended yet.
type openRun struct {
	start int
	state runState
}

// closedRun is a finished span [start, end). end is the index of the first
// point that no longer belongs to the run.
type closedRun struct {
	start, end int
	state      runState
}

// advance feeds point i with state s to the run detector. It returns the run
// that is open after i (nil while matched) and the run that i closed, if any.
func advance(open *openRun, i int, s runState) (*openRun, *closedRun) {
	if open == nil {
		if s == matched {
			return nil, nil
		}

		return &openRun{start: i, state: s}, nil
	}
	if open.state == s {
		return open, nil
	}

	closed := &closedRun{start: open.start, end: i, state: open.state}
	if s == matched {
		return nil, closed
	}

	return &openRun{start: i, state: s}, closed
}

// finish closes a run still open at the end of a curve of length n. Runs
// covering a single point are dropped since they have no width.
func finish(open *openRun, n int) *closedRun {
	if open == nil || open.start >= n-1 {
		return nil
	}

	return &closedRun{start: open.start, end: n - 1, state: open.state}
}
