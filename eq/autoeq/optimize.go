package autoeq

import (
	"math"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
	"github.com/cwbudde/algo-autoeq/eq/response"
)

// freqUnit returns the frequency resolution used for a filter at freq.
func freqUnit(freq float64) float64 {
	switch {
	case freq < 100:
		return 1
	case freq < 1000:
		return 10
	case freq < 10000:
		return 100
	default:
		return 1000
	}
}

// strip snaps the frequency of f down to its unit and clamps every
// parameter into b.
func strip(f peq.Filter, b bounds) peq.Filter {
	unit := freqUnit(f.Freq)
	f.Freq = b.freq.Clamp(math.Floor(f.Freq/unit) * unit)
	f.Q = b.q.Clamp(f.Q)
	f.Gain = b.gain.Clamp(f.Gain)
	return f
}

// evaluator scores one filter on top of a fixed partial response.
type evaluator struct {
	frame  *response.Frame
	rest   curve.Curve
	target curve.Curve
}

func (e evaluator) distance(f peq.Filter) float64 {
	return response.Distance(e.frame.ApplyTo(e.rest, []peq.Filter{f}), e.target)
}

// tryStep evaluates origin moved by (df, dq, dg) steps of d. It returns the
// moved filter and its distance if the move stays inside b and beats best.
func tryStep(e evaluator, origin peq.Filter, d Delta, b bounds, df, dq, dg int, best float64) (peq.Filter, float64, bool) {
	f := peq.Filter{
		Type: origin.Type,
		Freq: origin.Freq + float64(df)*freqUnit(origin.Freq)*d.FreqStep,
		Q:    origin.Q + float64(dq)*d.QStep,
		Gain: origin.Gain + float64(dg)*d.GainStep,
	}
	if !b.contains(f) {
		return origin, best, false
	}

	dist := e.distance(f)
	if dist >= best {
		return origin, best, false
	}

	return f, dist, true
}

// Optimize refines every filter by a local grid search while holding the
// others fixed, using the step sizes of the given round (see Deltas). With
// reverse set, filters are visited from the highest frequency down. The
// result is sorted by ascending frequency.
func Optimize(c, target curve.Curve, filters []peq.Filter, round int, reverse bool, cfg Config) []peq.Filter {
	deltas := Deltas()
	d := deltas[max(0, min(round, len(deltas)-1))]

	out := make([]peq.Filter, len(filters))
	for i, f := range filters {
		out[i] = strip(f, cfg.boundsFor(f.Type))
	}

	frame := response.NewFrame(c)
	for k := range out {
		i := k
		if reverse {
			i = len(out) - 1 - k
		}
		e := evaluator{
			frame:  frame,
			rest:   frame.Apply(peq.Without(out, i)),
			target: target,
		}
		out[i] = optimizeOne(e, out[i], d, cfg.boundsFor(out[i].Type))
	}

	peq.SortByFreq(out)
	return out
}

// optimizeOne walks the (freq, Q, gain) neighborhood of f. Along the gain axis
// the walk continues outwards while either direction improves.
func optimizeOne(e evaluator, f peq.Filter, d Delta, b bounds) peq.Filter {
	best := f
	bestDist := e.distance(f)

	for df := -d.FreqSteps; df < d.FreqSteps; df++ {
		for dq := d.QSteps; dq > -d.QSteps; dq-- {
			for dg := 1; dg < d.GainSteps; dg++ {
				improved := false
				for _, sign := range [2]int{1, -1} {
					if g, dist, ok := tryStep(e, f, d, b, df, dq, sign*dg, bestDist); ok {
						best, bestDist, improved = g, dist, true
						break
					}
				}
				if !improved {
					break
				}
			}
		}
	}

	return best
}
