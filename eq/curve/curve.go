package curve

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-autoeq/dsp/interp"
)

// Grid constants. The grid starts at GridMin and steps by GridStep while the
// frequency stays below GridMax.
const (
	GridMin = 20.0
	GridMax = 20000.0

	// ReferenceHz is the default alignment frequency.
	ReferenceHz = 1000.0
)

// GridStep is the ratio between neighboring grid frequencies (1/48 octave).
var GridStep = math.Pow(2, 1.0/48)

// Point is one sample of a frequency response.
type Point struct {
	Freq float64 // Hz
	Gain float64 // dB
}

// Curve is a sequence of points in ascending frequency order.
type Curve []Point

// Grid returns the canonical frequency ladder.
func Grid() []float64 {
	freqs := make([]float64, 0, 480)
	for f := GridMin; f < GridMax; f *= GridStep {
		freqs = append(freqs, f)
	}

	return freqs
}

// Flat returns a canonical curve with every point at gain.
func Flat(gain float64) Curve {
	grid := Grid()
	c := make(Curve, len(grid))
	for i, f := range grid {
		c[i] = Point{Freq: f, Gain: gain}
	}

	return c
}

// Freqs returns the frequencies of c.
func (c Curve) Freqs() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Freq
	}

	return out
}

// Gains returns the gains of c.
func (c Curve) Gains() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Gain
	}

	return out
}

// Clone returns a copy of c.
func (c Curve) Clone() Curve {
	return append(Curve(nil), c...)
}

// At evaluates the sorted curve c at f by log-frequency linear
// interpolation. Outside the covered range the first or last gain is
// returned; an empty curve evaluates to 0 dB.
func At(c Curve, f float64) float64 {
	n := len(c)
	if n == 0 {
		return 0
	}
	if f <= c[0].Freq {
		return c[0].Gain
	}
	if f >= c[n-1].Freq {
		return c[n-1].Gain
	}

	// First point strictly above f; its predecessor is at or below f.
	hi := sort.Search(n, func(i int) bool { return c[i].Freq > f })
	lo := hi - 1
	return interp.LogLinear(f, c[lo].Freq, c[hi].Freq, c[lo].Gain, c[hi].Gain)
}

// Canonicalize resamples points onto the canonical grid. The input is not
// modified and need not be sorted. Points without a positive finite
// frequency or a finite gain are ignored. Empty input yields a flat 0 dB
// curve.
func Canonicalize(points []Point) Curve {
	sorted := make(Curve, 0, len(points))
	for _, p := range points {
		if usable(p) {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Freq < sorted[j].Freq })

	grid := Grid()
	out := make(Curve, len(grid))
	for i, f := range grid {
		out[i] = Point{Freq: f, Gain: At(sorted, f)}
	}

	return out
}

func usable(p Point) bool {
	return p.Freq > 0 && !math.IsInf(p.Freq, 0) && !math.IsNaN(p.Gain) && !math.IsInf(p.Gain, 0)
}

// NearestIndex returns the index of the point of c closest to hz on a
// logarithmic axis, or -1 for an empty curve.
func NearestIndex(c Curve, hz float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, p := range c {
		d := math.Abs(math.Log(p.Freq / hz))
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// AlignToReference shifts target so that it has the same gain as source at
// the grid point nearest refHz. Both curves must share the same grid. The
// source curve is returned unchanged.
func AlignToReference(source, target Curve, refHz float64) (Curve, Curve) {
	i := NearestIndex(source, refHz)
	if i < 0 || i >= len(target) {
		return source, target.Clone()
	}

	offset := source[i].Gain - target[i].Gain
	aligned := make(Curve, len(target))
	for j, p := range target {
		aligned[j] = Point{Freq: p.Freq, Gain: p.Gain + offset}
	}

	return source, aligned
}

// Restrict returns the points of c with lo <= Freq <= hi.
func Restrict(c Curve, lo, hi float64) Curve {
	out := make(Curve, 0, len(c))
	for _, p := range c {
		if p.Freq >= lo && p.Freq <= hi {
			out = append(out, p)
		}
	}

	return out
}
