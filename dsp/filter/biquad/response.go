package biquad

import "math"

// Phi returns 4*sin^2(w/2) for w = 2*pi*freqHz/sampleRate. It is the
// variable of the polynomial form used by MagnitudeDBPhi.
func Phi(freqHz, sampleRate float64) float64 {
	s := math.Sin(math.Pi * freqHz / sampleRate)
	return 4 * s * s
}

// MagnitudeDB returns the gain of the section in dB at freqHz.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return c.MagnitudeDBPhi(Phi(freqHz, sampleRate))
}

// MagnitudeDBPhi returns the gain in dB for a precomputed phi (see [Phi]).
//
// With phi = 4*sin^2(w/2), |b0 + b1 z^-1 + b2 z^-2|^2 on the unit circle
// expands to (b0+b1+b2)^2 + (b0*b2*phi - (b1*(b0+b2) + 4*b0*b2))*phi, and
// likewise for the denominator with (1, a1, a2).
func (c *Coefficients) MagnitudeDBPhi(phi float64) float64 {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a0, a1, a2 := 1.0, c.A1, c.A2

	bs := b0 + b1 + b2
	as := a0 + a1 + a2
	num := bs*bs + (b0*b2*phi-(b1*(b0+b2)+4*b0*b2))*phi
	den := as*as + (a0*a2*phi-(a1*(a0+a2)+4*a0*a2))*phi

	return 10*math.Log10(num) - 10*math.Log10(den)
}

// SumMagnitudeDB writes into dst the summed dB response of all coeffs at each
// frequency in freqs. Independent sections add linearly in the dB domain.
// dst must have the same length as freqs.
func SumMagnitudeDB(dst, freqs []float64, coeffs []Coefficients, sampleRate float64) {
	if len(freqs) == 0 {
		return
	}
	_ = dst[len(freqs)-1] // bounds check hint

	for i, f := range freqs {
		phi := Phi(f, sampleRate)
		sum := 0.0
		for j := range coeffs {
			sum += coeffs[j].MagnitudeDBPhi(phi)
		}
		dst[i] = sum
	}
}
