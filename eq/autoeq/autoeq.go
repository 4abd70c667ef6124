package autoeq

import (
	"context"
	"math"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
	"github.com/cwbudde/algo-autoeq/eq/response"
)

type options struct {
	logger log.FieldLogger
}

// Option configures a Run.
type Option func(*options)

// WithLogger sets the logger that receives per-round debug output.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// AutoEQ derives a filter set that moves source towards target. It is Run
// without cancellation.
func AutoEQ(source, target curve.Curve, cfg Config) peq.Set {
	set, _ := Run(context.Background(), source, target, cfg)
	return set
}

// Run derives a filter set that moves source towards target. Neither curve
// needs to be sorted or on the canonical grid.
//
// Both curves are resampled onto the canonical grid, target is aligned to
// source at cfg.ReferenceHz (1 kHz by default) and both are restricted to cfg.FreqRange. The set is then
// optionally seeded with shelves, grown one filter at a time (or in two
// batches when candidate scoring is off), polished, pruned, rounded and
// sorted by frequency.
//
// ctx is checked between optimizer rounds. When it is done, Run returns the
// rounded set found so far together with ctx.Err().
func Run(ctx context.Context, source, target curve.Curve, cfg Config, opts ...Option) (peq.Set, error) {
	o := options{logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg = cfg.sanitized()
	src, tgt := Prepare(source, target, cfg)
	r := &runner{
		cfg:    cfg,
		log:    o.logger,
		frame:  response.NewFrame(src),
		target: tgt,
	}

	filters, err := r.run(ctx)
	return finalize(filters), err
}

// Prepare canonicalizes source and target, aligns target to source at
// cfg.ReferenceHz and restricts both to cfg.FreqRange. These are the curves
// Run fits against.
func Prepare(source, target curve.Curve, cfg Config) (curve.Curve, curve.Curve) {
	cfg = cfg.sanitized()
	src, tgt := curve.AlignToReference(curve.Canonicalize(source), curve.Canonicalize(target), cfg.ReferenceHz)
	lo, hi := cfg.FreqRange.Min(), cfg.FreqRange.Max()
	return curve.Restrict(src, lo, hi), curve.Restrict(tgt, lo, hi)
}

// finalize rounds filters to display precision, drops the ones that rounded
// to nothing, sorts them and computes the preamp.
func finalize(filters []peq.Filter) peq.Set {
	out := make([]peq.Filter, 0, len(filters))
	for _, f := range filters {
		if f = f.Rounded(); f.Valid() {
			out = append(out, f)
		}
	}
	peq.SortByFreq(out)

	preamp := response.CalculatePreamp(curve.Flat(0), out)
	if preamp == 0 {
		preamp = 0 // no negative zero
	}

	return peq.Set{Filters: out, PreampDB: preamp}
}

// runner carries the prepared curves of one Run.
type runner struct {
	cfg    Config
	log    log.FieldLogger
	frame  *response.Frame
	target curve.Curve
}

func (r *runner) residualError(filters []peq.Filter) float64 {
	return response.WeightedError(r.frame.Apply(filters), r.target)
}

func (r *runner) run(ctx context.Context) ([]peq.Filter, error) {
	var filters []peq.Filter
	if err := ctx.Err(); err != nil {
		return filters, err
	}
	if r.cfg.MaxFilters == 0 || len(r.target) == 0 {
		return filters, nil
	}

	if r.cfg.UseShelfSeeding {
		filters = r.seedShelves(filters)
	}

	var err error
	if r.cfg.UseCandidateScoring {
		filters, err = r.grow(ctx, filters)
	} else {
		filters, err = r.batches(ctx, filters)
	}
	if err != nil {
		return filters, err
	}

	if filters, err = r.optimizeAll(ctx, filters); err != nil {
		return filters, err
	}

	return r.prune(filters), nil
}

// seedShelves adds at most one low and one high shelf, each only when it
// lowers the RMS error by more than shelfMinGain and leaves room for
// reservedPeakSlots peaking filters. The second shelf is scored against the
// residual left by the first.
func (r *runner) seedShelves(filters []peq.Filter) []peq.Filter {
	for len(filters) < 2 && r.cfg.MaxFilters-len(filters)-1 >= reservedPeakSlots {
		var best *Scored
		for _, s := range SearchShelves(r.frame.Apply(filters), r.target, r.cfg) {
			if hasType(filters, s.Filter.Type) {
				continue
			}
			if best == nil || s.Score > best.Score {
				best = &s
			}
		}
		if best == nil || best.Score <= shelfMinGain {
			break
		}

		r.log.WithFields(log.Fields{
			"filter": best.Filter.String(),
			"gain":   best.Score,
		}).Debug("autoeq: seeded shelf")
		filters = append(filters, best.Filter)
	}

	return filters
}

func hasType(filters []peq.Filter, t peq.Type) bool {
	return slices.ContainsFunc(filters, func(f peq.Filter) bool { return f.Type == t })
}

// grow appends the best-scoring candidate against the current residual and
// re-optimizes, until the band budget is used up, the fit is good enough or
// no candidate improves the fit.
func (r *runner) grow(ctx context.Context, filters []peq.Filter) ([]peq.Filter, error) {
	for pass := 0; len(filters) < r.cfg.MaxFilters; pass++ {
		current := r.frame.Apply(filters)
		rms := response.WeightedError(current, r.target)
		if rms < acceptableError {
			break
		}

		threshold := nextPassThreshold
		if pass == 0 {
			threshold = firstPassThreshold
		}
		scored := ScoreCandidates(current, r.target, SearchCandidates(current, r.target, threshold, r.cfg), r.cfg)
		if len(scored) == 0 && threshold > nextPassThreshold {
			scored = ScoreCandidates(current, r.target, SearchCandidates(current, r.target, nextPassThreshold, r.cfg), r.cfg)
		}
		if len(scored) == 0 {
			break
		}

		r.log.WithFields(log.Fields{
			"pass":       pass,
			"rms":        rms,
			"candidates": len(scored),
			"filter":     scored[0].Filter.String(),
		}).Debug("autoeq: adding filter")

		var err error
		if filters, err = r.optimizeAll(ctx, append(filters, scored[0].Filter)); err != nil {
			return filters, err
		}
	}

	return filters, nil
}

// batches places unscored candidates in two batches: first the largest
// deviations at the coarse threshold, then the residual at the fine one.
func (r *runner) batches(ctx context.Context, filters []peq.Filter) ([]peq.Filter, error) {
	first := max(r.cfg.MaxFilters/2-1, 1)
	var err error
	for _, batch := range []struct {
		threshold float64
		size      int
	}{
		{firstPassThreshold, first},
		{nextPassThreshold, r.cfg.MaxFilters},
	} {
		free := min(batch.size, r.cfg.MaxFilters-len(filters))
		if free <= 0 {
			break
		}

		cands := SearchCandidates(r.frame.Apply(filters), r.target, batch.threshold, r.cfg)
		slices.SortStableFunc(cands, func(a, b peq.Filter) int {
			return cmpDesc(math.Abs(a.Gain), math.Abs(b.Gain))
		})
		for _, c := range cands[:min(free, len(cands))] {
			if f := strip(c, r.cfg.boundsFor(c.Type)); f.Valid() {
				filters = append(filters, f)
			}
		}

		r.log.WithFields(log.Fields{
			"threshold": batch.threshold,
			"filters":   len(filters),
		}).Debug("autoeq: placed batch")

		if filters, err = r.optimizeAll(ctx, filters); err != nil {
			return filters, err
		}
	}

	return filters, nil
}

func cmpDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

// optimizeAll runs every optimizer round forwards and backwards.
func (r *runner) optimizeAll(ctx context.Context, filters []peq.Filter) ([]peq.Filter, error) {
	source := r.frame.Base()
	for round := range len(Deltas()) {
		if err := ctx.Err(); err != nil {
			return filters, err
		}
		for _, reverse := range [2]bool{false, true} {
			filters = Optimize(source, r.target, filters, round, reverse, r.cfg)
		}
		r.log.WithFields(log.Fields{
			"round": round,
			"rms":   r.residualError(filters),
		}).Debug("autoeq: optimized")
	}

	return filters, nil
}

// prune drops, in a single pass, every filter whose removal raises the RMS
// error by at most pruneTolerance. Each filter is judged against the full
// set.
func (r *runner) prune(filters []peq.Filter) []peq.Filter {
	full := r.residualError(filters)
	kept := make([]peq.Filter, 0, len(filters))
	for i, f := range filters {
		if !f.Valid() {
			continue
		}
		if r.residualError(peq.Without(filters, i))-full <= pruneTolerance {
			r.log.WithField("filter", f.String()).Debug("autoeq: pruned")
			continue
		}
		kept = append(kept, f)
	}

	return kept
}
