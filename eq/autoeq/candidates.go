package autoeq

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
	"github.com/cwbudde/algo-autoeq/eq/response"
)

// Scored is a candidate filter with the RMS error reduction it achieves when
// applied on its own.
type Scored struct {
	Filter peq.Filter
	Score  float64
}

// SearchCandidates scans current - target for maximal runs of over- or
// undershoot larger than threshold and proposes one peaking filter per run.
// Both curves must share the same grid. Candidates centered outside
// cfg.FreqRange are discarded.
func SearchCandidates(current, target curve.Curve, threshold float64, cfg Config) []peq.Filter {
	n := min(len(current), len(target))

	var (
		open       *openRun
		closed     *closedRun
		candidates []peq.Filter
	)
	emit := func(r *closedRun) {
		if r == nil {
			return
		}
		if f, ok := candidateFromRun(current, target, *r, cfg.FreqRange); ok {
			candidates = append(candidates, f)
		}
	}

	for i := range n {
		s := classify(current[i].Gain-target[i].Gain, threshold)
		open, closed = advance(open, i, s)
		emit(closed)
	}
	emit(finish(open, n))

	return candidates
}

// candidateFromRun builds the peaking filter that would flatten run r.
func candidateFromRun(current, target curve.Curve, r closedRun, freqRange Range) (peq.Filter, bool) {
	start := current[r.start].Freq
	end := current[r.end].Freq
	if end <= start {
		return peq.Filter{}, false
	}

	center := math.Sqrt(start * end)
	if !freqRange.Contains(center) {
		return peq.Filter{}, false
	}

	span := max(r.end, r.start+1)
	gain := curve.At(target[r.start:span], center) - curve.At(current[r.start:span], center)

	return peq.Filter{
		Type: peq.Peaking,
		Freq: center,
		Q:    center / (end - start),
		Gain: gain,
	}, true
}

// ScoreCandidates clamps each candidate into the configured ranges and scores
// it by the RMS error reduction it yields on current. Only candidates that
// improve the fit are returned, best first.
func ScoreCandidates(current, target curve.Curve, candidates []peq.Filter, cfg Config) []Scored {
	frame := response.NewFrame(current)
	baseErr := response.WeightedError(current, target)

	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		f := strip(c, cfg.boundsFor(c.Type))
		if !f.Valid() {
			continue
		}
		after := response.WeightedError(frame.Apply([]peq.Filter{f}), target)
		if score := baseErr - after; score > 0 {
			scored = append(scored, Scored{Filter: f, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}
