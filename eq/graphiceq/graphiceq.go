package graphiceq

import (
	"math"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
)

// Ladder parameters of the export.
const (
	MinFreq    = 20.0
	MaxFreq    = 20000.0
	RawStep    = 1.0072 // ratio of the dense evaluation ladder
	CoarseStep = 1.0563 // ratio of the published ladder
)

// RawFreqs returns the dense evaluation ladder.
func RawFreqs() []float64 {
	var out []float64
	for f := MinFreq; f <= MaxFreq; f *= RawStep {
		out = append(out, f)
	}

	return out
}

// CoarseFreqs returns the published ladder: whole Hz, strictly increasing.
func CoarseFreqs() []float64 {
	var out []float64
	for f := MinFreq; f <= MaxFreq; f *= CoarseStep {
		v := math.Floor(f)
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}

	return out
}

// Export evaluates filters on the dense ladder and averages the result into
// the buckets of the coarse ladder. A bucket collects the raw points below
// the geometric mean of its frequency and the next one; the last bucket runs
// to MaxFreq. The returned curve peaks at exactly 0 dB.
func Export(filters []peq.Filter) curve.Curve {
	raw := RawFreqs()
	rawGains := peq.Gains(raw, filters)
	coarse := CoarseFreqs()

	out := make(curve.Curve, len(coarse))
	j := 0
	for i, f := range coarse {
		sum, n := 0.0, 0
		for ; j < len(raw) && inBucket(raw[j], coarse, i); j++ {
			sum += rawGains[j]
			n++
		}

		gain := 0.0
		if n > 0 {
			gain = sum / float64(n)
		} else {
			gain = peq.Gains([]float64{f}, filters)[0]
		}
		out[i] = curve.Point{Freq: f, Gain: gain}
	}

	normalize(out)
	return out
}

func inBucket(f float64, coarse []float64, i int) bool {
	if i == len(coarse)-1 {
		return f <= MaxFreq
	}

	return f < math.Sqrt(coarse[i]*coarse[i+1])
}

// normalize shifts c so that its largest gain is 0 dB.
func normalize(c curve.Curve) {
	if len(c) == 0 {
		return
	}
	peak := math.Inf(-1)
	for _, p := range c {
		peak = math.Max(peak, p.Gain)
	}
	for i := range c {
		c[i].Gain -= peak
	}
}
