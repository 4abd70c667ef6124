package interp

import "math"

// Linear2 blends a and b at frac in [0,1].
func Linear2(frac, a, b float64) float64 {
	return a + frac*(b-a)
}

// LogFrac returns ln(f/f0) / ln(f1/f0), the position of f between f0 and f1
// on a logarithmic axis. It returns 0 when f0 == f1. All frequencies must be
// positive.
func LogFrac(f, f0, f1 float64) float64 {
	if f0 == f1 {
		return 0
	}

	return math.Log(f/f0) / math.Log(f1/f0)
}

// LogLinear interpolates linearly in value and logarithmically in frequency:
// v0 + (v1-v0)*ln(f/f0)/ln(f1/f0).
func LogLinear(f, f0, f1, v0, v1 float64) float64 {
	return Linear2(LogFrac(f, f0, f1), v0, v1)
}
