package response

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-autoeq/dsp/filter/biquad"
	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
)

// DeadBand is the per-point difference below which Distance ignores a
// deviation.
const DeadBand = 0.1

// Frame holds a curve together with the phi term of each of its frequencies,
// so that many filter sets can be evaluated against the same curve without
// recomputing them.
type Frame struct {
	base curve.Curve
	phis []float64
}

// NewFrame prepares c for repeated evaluation.
func NewFrame(c curve.Curve) *Frame {
	phis := make([]float64, len(c))
	for i, p := range c {
		phis[i] = biquad.Phi(p.Freq, peq.ReferenceSampleRate)
	}

	return &Frame{base: c, phis: phis}
}

// Base returns the curve the frame was built from.
func (f *Frame) Base() curve.Curve { return f.base }

// Gains returns the combined dB response of filters at the frame's
// frequencies.
func (f *Frame) Gains(filters []peq.Filter) []float64 {
	coeffs, _ := peq.CoefficientsOf(filters)
	out := make([]float64, len(f.phis))
	for i, phi := range f.phis {
		sum := 0.0
		for j := range coeffs {
			sum += coeffs[j].MagnitudeDBPhi(phi)
		}
		out[i] = sum
	}

	return out
}

// Apply returns the frame's curve with filters applied.
func (f *Frame) Apply(filters []peq.Filter) curve.Curve {
	return f.ApplyTo(f.base, filters)
}

// ApplyTo adds the response of filters to c, which must have the frame's
// frequencies.
func (f *Frame) ApplyTo(c curve.Curve, filters []peq.Filter) curve.Curve {
	gains := f.Gains(filters)
	out := make(curve.Curve, len(c))
	for i, p := range c {
		out[i] = curve.Point{Freq: p.Freq, Gain: p.Gain + gains[i]}
	}

	return out
}

// Apply returns c with the response of filters added pointwise. Invalid
// filters are skipped; an empty filter list returns an unchanged copy.
func Apply(c curve.Curve, filters []peq.Filter) curve.Curve {
	return NewFrame(c).Apply(filters)
}

// CalculateGains returns the combined gain of filters at each frequency.
func CalculateGains(freqs []float64, filters []peq.Filter) []float64 {
	return peq.Gains(freqs, filters)
}

// Distance is the mean absolute gain difference between a and b, ignoring
// per-point differences smaller than DeadBand. Only the common prefix of the
// two curves is compared.
func Distance(a, b curve.Curve) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	sum := 0.0
	for i := range n {
		d := math.Abs(a[i].Gain - b[i].Gain)
		if d >= DeadBand {
			sum += d
		}
	}

	return sum / float64(n)
}

// WeightedError is the root-mean-square gain difference between a and b.
func WeightedError(a, b curve.Curve) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	diff := make([]float64, n)
	for i := range n {
		diff[i] = a[i].Gain - b[i].Gain
	}
	sq := make([]float64, n)
	vecmath.MulBlock(sq, diff, diff)

	sum := 0.0
	for _, v := range sq {
		sum += v
	}

	return math.Sqrt(sum / float64(n))
}

// Preamp returns the negated largest boost of filtered over baseline. It is
// 0 for empty curves.
func Preamp(baseline, filtered curve.Curve) float64 {
	n := min(len(baseline), len(filtered))
	if n == 0 {
		return 0
	}

	maxBoost := math.Inf(-1)
	for i := range n {
		maxBoost = math.Max(maxBoost, filtered[i].Gain-baseline[i].Gain)
	}

	return -maxBoost
}

// CalculatePreamp returns the preamp that keeps filters applied to baseline
// at or below 0 dB of boost.
func CalculatePreamp(baseline curve.Curve, filters []peq.Filter) float64 {
	return Preamp(baseline, Apply(baseline, filters))
}
