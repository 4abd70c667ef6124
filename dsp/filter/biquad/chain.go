package biquad

import "math"

// Chain renders an equalizer profile in the time domain: one section per
// band behind a linear input gain (the preamp).
type Chain struct {
	sections []Section
	gain     float64
}

// chainConfig holds options for NewChain.
type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets the linear gain applied to the input before the first
// section. Default is 1.0 (unity gain).
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade with one section per coefficient set, in order.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{
		sections: make([]Section, len(coeffs)),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessBlock filters buf in-place through the gain and every section.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i, x := range buf {
			buf[i] = x * c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// ImpulseResponse returns the first n samples of the cascade's response to a
// unit impulse. The chain is reset before and after rendering.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	c.Reset()
	ir := make([]float64, n)
	ir[0] = 1
	c.ProcessBlock(ir)
	c.Reset()

	return ir
}

// MagnitudeDB returns the steady-state gain of the cascade in dB at freqHz,
// including the input gain.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := 20 * math.Log10(math.Abs(c.gain))
	for i := range c.sections {
		db += c.sections[i].MagnitudeDB(freqHz, sampleRate)
	}

	return db
}
