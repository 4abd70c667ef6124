package peq

import (
	"math"

	"github.com/cwbudde/algo-autoeq/dsp/filter/biquad"
	"github.com/cwbudde/algo-autoeq/dsp/filter/design"
)

// ReferenceSampleRate is the sample rate all equalizer coefficients are
// designed and evaluated at.
const ReferenceSampleRate = 48000.0

// Parameter clamps applied before coefficient design.
const (
	MinNormFreq = 1e-6
	MaxNormFreq = 1.0
	MinQ        = 1e-4
	MaxQ        = 1000.0
	MinGain     = -40.0
	MaxGain     = 40.0
)

// Params are design parameters after clamping. NormFreq is the frequency
// divided by ReferenceSampleRate.
type Params struct {
	NormFreq float64
	Q        float64
	Gain     float64
}

// ClampParams normalizes freq by ReferenceSampleRate and clamps all three
// parameters into their design range. The boolean reports whether any value
// had to be changed.
func ClampParams(freq, q, gain float64) (Params, bool) {
	p := Params{
		NormFreq: clamp(freq/ReferenceSampleRate, MinNormFreq, MaxNormFreq),
		Q:        clamp(q, MinQ, MaxQ),
		Gain:     clamp(gain, MinGain, MaxGain),
	}
	changed := p.NormFreq != freq/ReferenceSampleRate || p.Q != q || p.Gain != gain
	return p, changed
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}

	return math.Min(math.Max(v, lo), hi)
}

func (p Params) w0() float64 {
	return 2 * math.Pi * p.NormFreq
}

// PeakingCoeffs designs a clamped peaking band.
func PeakingCoeffs(freq, q, gain float64) biquad.Coefficients {
	p, _ := ClampParams(freq, q, gain)
	return design.PeakW(p.w0(), p.Gain, p.Q)
}

// LowShelfCoeffs designs a clamped low shelf.
func LowShelfCoeffs(freq, q, gain float64) biquad.Coefficients {
	p, _ := ClampParams(freq, q, gain)
	return design.LowShelfW(p.w0(), p.Gain, p.Q)
}

// HighShelfCoeffs designs a clamped high shelf.
func HighShelfCoeffs(freq, q, gain float64) biquad.Coefficients {
	p, _ := ClampParams(freq, q, gain)
	return design.HighShelfW(p.w0(), p.Gain, p.Q)
}

// Coefficients designs the biquad for f. It returns false when f is not
// Valid; such filters contribute nothing to a response.
func (f Filter) Coefficients() (biquad.Coefficients, bool) {
	if !f.Valid() {
		return biquad.Coefficients{}, false
	}

	switch f.Type {
	case LowShelf:
		return LowShelfCoeffs(f.Freq, f.Q, f.Gain), true
	case HighShelf:
		return HighShelfCoeffs(f.Freq, f.Q, f.Gain), true
	default:
		return PeakingCoeffs(f.Freq, f.Q, f.Gain), true
	}
}

// CoefficientsOf designs all valid filters and returns their coefficients
// together with the indices of the filters that were excluded.
func CoefficientsOf(filters []Filter) (coeffs []biquad.Coefficients, excluded []int) {
	coeffs = make([]biquad.Coefficients, 0, len(filters))
	for i, f := range filters {
		c, ok := f.Coefficients()
		if !ok {
			excluded = append(excluded, i)
			continue
		}
		coeffs = append(coeffs, c)
	}

	return coeffs, excluded
}

// MagnitudeDB returns the summed dB response of coeffs at each frequency,
// evaluated at ReferenceSampleRate.
func MagnitudeDB(freqs []float64, coeffs []biquad.Coefficients) []float64 {
	out := make([]float64, len(freqs))
	biquad.SumMagnitudeDB(out, freqs, coeffs, ReferenceSampleRate)
	return out
}

// Gains returns the combined gain in dB of filters at each frequency.
// Invalid filters are skipped.
func Gains(freqs []float64, filters []Filter) []float64 {
	coeffs, _ := CoefficientsOf(filters)
	return MagnitudeDB(freqs, coeffs)
}
