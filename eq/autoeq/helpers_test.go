package autoeq

import (
	"math"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
)

// bumpCurve is flat 0 dB with gain added for lo <= f <= hi.
func bumpCurve(lo, hi, gain float64) curve.Curve {
	c := curve.Flat(0)
	for i := range c {
		if c[i].Freq >= lo && c[i].Freq <= hi {
			c[i].Gain = gain
		}
	}

	return c
}

// wavyCurve has slow ripples of the given depth across the grid.
func wavyCurve(depth float64) curve.Curve {
	c := curve.Flat(0)
	for i := range c {
		c[i].Gain = depth * math.Sin(1.3*math.Log2(c[i].Freq/20))
	}

	return c
}

func indexAbove(c curve.Curve, f float64) int {
	for i, p := range c {
		if p.Freq >= f {
			return i
		}
	}

	return len(c)
}

func freqsOf(filters []peq.Filter) []float64 {
	out := make([]float64, len(filters))
	for i, f := range filters {
		out[i] = f.Freq
	}

	return out
}
