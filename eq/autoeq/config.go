package autoeq

import (
	"math"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
)

// Range is an inclusive [min, max] interval.
type Range [2]float64

// Min returns the lower bound.
func (r Range) Min() float64 { return r[0] }

// Max returns the upper bound.
func (r Range) Max() float64 { return r[1] }

// Contains reports whether v lies inside r.
func (r Range) Contains(v float64) bool { return v >= r[0] && v <= r[1] }

// Clamp limits v to r.
func (r Range) Clamp(v float64) float64 { return math.Min(math.Max(v, r[0]), r[1]) }

func (r Range) valid() bool {
	return !math.IsNaN(r[0]) && !math.IsNaN(r[1]) && r[0] < r[1]
}

// intersect returns the overlap of r and o, or r when they do not overlap.
func (r Range) intersect(o Range) Range {
	out := Range{math.Max(r[0], o[0]), math.Min(r[1], o[1])}
	if !out.valid() {
		return r
	}

	return out
}

// Config holds the tuning of one AutoEQ run. It is passed by value and never
// modified by the engine.
type Config struct {
	FreqRange  Range `toml:"freq_range"`
	QRange     Range `toml:"q_range"`
	GainRange  Range `toml:"gain_range"`
	MaxFilters int   `toml:"max_filters"`
	// ReferenceHz is the frequency at which target is level-matched to
	// source before fitting.
	ReferenceHz float64 `toml:"reference_hz"`

	// UseShelfSeeding proposes a low and/or high shelf at the curve edges
	// before any peaking filter is placed.
	UseShelfSeeding bool `toml:"shelf_seeding"`
	// UseCandidateScoring grows the set one best-scoring candidate at a time.
	// When false, candidates are taken in two unscored batches.
	UseCandidateScoring bool `toml:"candidate_scoring"`
}

// DefaultConfig returns the tuning used by the AutoEQ dialog.
func DefaultConfig() Config {
	return Config{
		FreqRange:           Range{20, 15000},
		QRange:              Range{0.5, 2},
		GainRange:           Range{-12, 12},
		MaxFilters:          8,
		ReferenceHz:         curve.ReferenceHz,
		UseShelfSeeding:     true,
		UseCandidateScoring: true,
	}
}

// sanitized replaces unusable ranges with their defaults.
func (c Config) sanitized() Config {
	def := DefaultConfig()
	if !c.FreqRange.valid() || c.FreqRange.Min() <= 0 {
		c.FreqRange = def.FreqRange
	}
	if !c.QRange.valid() || c.QRange.Min() <= 0 {
		c.QRange = def.QRange
	}
	if !c.GainRange.valid() {
		c.GainRange = def.GainRange
	}
	if !(c.ReferenceHz > 0) || math.IsInf(c.ReferenceHz, 0) {
		c.ReferenceHz = def.ReferenceHz
	}
	if c.MaxFilters < 0 {
		c.MaxFilters = 0
	}

	return c
}

// Shelf filters are searched in narrower windows than peaking filters.
var (
	lowShelfFreq  = Range{20, 300}
	highShelfFreq = Range{3000, 16000}
	shelfQ        = Range{0.4, 1}
)

// bounds are the parameter limits of one filter during optimization.
type bounds struct {
	freq, q, gain Range
}

func (c Config) boundsFor(t peq.Type) bounds {
	switch t {
	case peq.LowShelf:
		return bounds{freq: lowShelfFreq.intersect(c.FreqRange), q: shelfQ, gain: c.GainRange}
	case peq.HighShelf:
		return bounds{freq: highShelfFreq.intersect(c.FreqRange), q: shelfQ, gain: c.GainRange}
	default:
		return bounds{freq: c.FreqRange, q: c.QRange, gain: c.GainRange}
	}
}

func (b bounds) contains(f peq.Filter) bool {
	return b.freq.Contains(f.Freq) && b.q.Contains(f.Q) && b.gain.Contains(f.Gain)
}

// Delta is the search window of one optimizer round: a parameter moves by
// up to Steps multiples of its step size in either direction.
type Delta struct {
	FreqSteps, QSteps, GainSteps int
	FreqStep, QStep, GainStep    float64
}

// Deltas returns the three optimizer rounds, from coarse to fine. FreqStep
// is in multiples of the frequency unit of the filter (see freqUnit).
func Deltas() [3]Delta {
	return [3]Delta{
		{FreqSteps: 10, QSteps: 10, GainSteps: 10, FreqStep: 5, QStep: 0.1, GainStep: 0.5},
		{FreqSteps: 10, QSteps: 10, GainSteps: 10, FreqStep: 2, QStep: 0.1, GainStep: 0.2},
		{FreqSteps: 10, QSteps: 10, GainSteps: 10, FreqStep: 1, QStep: 0.05, GainStep: 0.1},
	}
}

// Tuning thresholds of the orchestrator.
const (
	firstPassThreshold = 1.0 // dB, run detection on the first growth step
	nextPassThreshold  = 0.5 // dB, run detection afterwards
	acceptableError    = 0.5 // dB RMS, growth stops below this
	shelfMinGain       = 0.3 // dB RMS improvement required to seed a shelf
	reservedPeakSlots  = 2   // slots kept free for peaking filters after seeding
	pruneTolerance     = 0.1 // dB RMS a filter may be worth and still be pruned
)
