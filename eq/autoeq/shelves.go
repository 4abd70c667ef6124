package autoeq

import (
	"math"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
	"github.com/cwbudde/algo-autoeq/eq/response"
)

// Edge regions inspected for shelf opportunities.
const (
	lowEdgeMax       = 200.0  // Hz
	highEdgeMin      = 8000.0 // Hz
	edgeMinDeviation = 1.5    // dB, mean deviation required
	edgeSignShare    = 0.75   // share of edge points that must agree in sign
	gainSearchSteps  = 24
	gainSearchProbe  = 1e-3 // dB
)

var (
	lowShelfFreqs  = []float64{30, 45, 60, 80, 105, 140, 180, 240}
	highShelfFreqs = []float64{3000, 4000, 5000, 6500, 8000, 10000, 12500}
	shelfQs        = []float64{0.5, 0.7, 1}
)

// SearchShelves looks for a consistent deviation of target from current below
// 200 Hz and above 8 kHz and proposes at most one low and one high shelf.
// Each proposal is the (frequency, Q, gain) triple with the lowest RMS error
// over a grid of frequencies and Qs, with the gain found by binary search.
func SearchShelves(current, target curve.Curve, cfg Config) []Scored {
	frame := response.NewFrame(current)
	baseErr := response.WeightedError(current, target)

	var out []Scored
	for _, edge := range []struct {
		typ   peq.Type
		in    func(f float64) bool
		freqs []float64
	}{
		{peq.LowShelf, func(f float64) bool { return f <= lowEdgeMax }, lowShelfFreqs},
		{peq.HighShelf, func(f float64) bool { return f >= highEdgeMin }, highShelfFreqs},
	} {
		avg, ok := edgeDeviation(current, target, edge.in)
		if !ok {
			continue
		}

		b := cfg.boundsFor(edge.typ)
		gains := Range{0, b.gain.Max()}
		if avg < 0 {
			gains = Range{b.gain.Min(), 0}
		}

		best := Scored{Score: math.Inf(-1)}
		for _, freq := range edge.freqs {
			if !b.freq.Contains(freq) {
				continue
			}
			for _, q := range shelfQs {
				f := peq.Filter{Type: edge.typ, Freq: freq, Q: b.q.Clamp(q)}
				f.Gain = searchGain(frame, target, f, gains)
				if !f.Valid() {
					continue
				}
				score := baseErr - response.WeightedError(frame.Apply([]peq.Filter{f}), target)
				if score > best.Score {
					best = Scored{Filter: f, Score: score}
				}
			}
		}
		if best.Score > 0 {
			out = append(out, best)
		}
	}

	return out
}

// edgeDeviation returns the mean of target - current over the points selected
// by in, and whether it is large and sign-consistent enough for a shelf.
func edgeDeviation(current, target curve.Curve, in func(float64) bool) (float64, bool) {
	var devs []float64
	for i := range min(len(current), len(target)) {
		if in(current[i].Freq) {
			devs = append(devs, target[i].Gain-current[i].Gain)
		}
	}
	if len(devs) == 0 {
		return 0, false
	}

	sum := 0.0
	for _, d := range devs {
		sum += d
	}
	avg := sum / float64(len(devs))
	if math.Abs(avg) <= edgeMinDeviation {
		return avg, false
	}

	agree := 0
	for _, d := range devs {
		if math.Signbit(d) == math.Signbit(avg) {
			agree++
		}
	}

	return avg, float64(agree)/float64(len(devs)) >= edgeSignShare
}

// searchGain finds the gain in gains minimizing the RMS error of f applied to
// the frame's curve. The error is unimodal in gain for a fixed shape, so the
// slope sign at the midpoint decides which half to keep.
func searchGain(frame *response.Frame, target curve.Curve, f peq.Filter, gains Range) float64 {
	errAt := func(g float64) float64 {
		f.Gain = g
		return response.WeightedError(frame.Apply([]peq.Filter{f}), target)
	}

	lo, hi := gains.Min(), gains.Max()
	for range gainSearchSteps {
		mid := (lo + hi) / 2
		if errAt(mid+gainSearchProbe) < errAt(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2
}
