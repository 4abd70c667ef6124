package fir

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-autoeq/dsp/filter/biquad"
	"github.com/cwbudde/algo-autoeq/dsp/filter/design"
	"github.com/cwbudde/algo-autoeq/eq/peq"
)

// Errors returned for unusable arguments.
var (
	ErrInvalidLength     = errors.New("fir: length must be positive")
	ErrInvalidSampleRate = errors.New("fir: sample rate must be positive")
	ErrInvalidBitDepth   = errors.New("fir: bit depth must be 16, 24 or 32")
)

// DefaultLength is the impulse response length used by the CLI.
const DefaultLength = 8192

// tailFraction is the share of the response faded out at its end.
const tailFraction = 8

// Coefficients designs the biquads of filters at sampleRate. Invalid filters
// and filters at or above Nyquist are skipped.
func Coefficients(filters []peq.Filter, sampleRate float64) []biquad.Coefficients {
	out := make([]biquad.Coefficients, 0, len(filters))
	for _, f := range filters {
		if !f.Valid() || f.Freq >= sampleRate/2 {
			continue
		}
		switch f.Type {
		case peq.LowShelf:
			out = append(out, design.LowShelf(f.Freq, f.Gain, f.Q, sampleRate))
		case peq.HighShelf:
			out = append(out, design.HighShelf(f.Freq, f.Gain, f.Q, sampleRate))
		default:
			out = append(out, design.Peak(f.Freq, f.Gain, f.Q, sampleRate))
		}
	}

	return out
}

// ImpulseResponse returns length samples of the impulse response of set at
// sampleRate, including its preamp.
func ImpulseResponse(set peq.Set, sampleRate float64, length int) ([]float64, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}

	ir := chainOf(set, sampleRate).ImpulseResponse(length)

	if n := length / tailFraction; n > 1 {
		vecmath.MulBlockInPlace(ir[length-n:], fadeOut(n))
	}

	return ir, nil
}

func chainOf(set peq.Set, sampleRate float64) *biquad.Chain {
	return biquad.NewChain(Coefficients(set.Filters, sampleRate),
		biquad.WithGain(math.Pow(10, set.PreampDB/20)))
}

// fadeOut is the falling half of a Hann window of n samples, ending at 0.
func fadeOut(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 + math.Cos(math.Pi*float64(i)/float64(n-1)))
	}

	return w
}

// MagnitudeDB returns the magnitude of ir in dB at each of freqs, read from
// its zero-padded spectrum by linear interpolation between bins.
func MagnitudeDB(ir []float64, sampleRate float64, freqs []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrInvalidLength
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}

	size := nextPowerOf2(max(len(ir), DefaultLength))
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fir: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}
	spec := make([]complex128, size)
	if err := plan.Forward(spec, in); err != nil {
		return nil, fmt.Errorf("fir: forward FFT: %w", err)
	}

	binHz := sampleRate / float64(size)
	half := size / 2
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		pos := math.Min(math.Max(f/binHz, 0), float64(half))
		lo := int(pos)
		hi := min(lo+1, half)
		frac := pos - float64(lo)
		mag := (1-frac)*cmplx.Abs(spec[lo]) + frac*cmplx.Abs(spec[hi])
		out[i] = 20 * math.Log10(mag)
	}

	return out, nil
}

// Deviation compares the spectrum of ir, rendered from set at sampleRate,
// with the analytic response of set and returns the largest absolute
// difference in dB over freqs. Frequencies at or above Nyquist are ignored.
// A large deviation means ir is too short for the filters in set.
func Deviation(ir []float64, set peq.Set, sampleRate float64, freqs []float64) (float64, error) {
	below := make([]float64, 0, len(freqs))
	for _, f := range freqs {
		if f > 0 && f < sampleRate/2 {
			below = append(below, f)
		}
	}

	got, err := MagnitudeDB(ir, sampleRate, below)
	if err != nil {
		return 0, err
	}

	chain := chainOf(set, sampleRate)
	worst := 0.0
	for i, f := range below {
		worst = math.Max(worst, math.Abs(got[i]-chain.MagnitudeDB(f, sampleRate)))
	}

	return worst, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// WriteWAV encodes ir as a mono PCM WAV file. Samples are clipped to
// [-1, 1].
func WriteWAV(w io.WriteSeeker, ir []float64, sampleRate, bitDepth int) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return ErrInvalidBitDepth
	}

	scale := float64(int64(1)<<(bitDepth-1) - 1)
	data := make([]int, len(ir))
	for i, v := range ir {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * scale))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("fir: writing samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("fir: finalizing wav: %w", err)
	}

	return nil
}
