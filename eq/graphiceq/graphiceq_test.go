package graphiceq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-autoeq/eq/peq"
)

func TestLadders(t *testing.T) {
	raw := RawFreqs()
	if raw[0] != MinFreq || raw[len(raw)-1] > MaxFreq {
		t.Fatalf("raw ladder spans %v..%v", raw[0], raw[len(raw)-1])
	}

	coarse := CoarseFreqs()
	if coarse[0] != MinFreq {
		t.Fatalf("coarse ladder starts at %v", coarse[0])
	}
	for i := 1; i < len(coarse); i++ {
		if coarse[i] <= coarse[i-1] {
			t.Fatalf("coarse ladder not strictly increasing at %d: %v", i, coarse[i-1:i+1])
		}
		if coarse[i] != math.Floor(coarse[i]) {
			t.Fatalf("coarse frequency %v is not whole", coarse[i])
		}
	}
	if len(coarse) >= len(raw) {
		t.Fatalf("coarse ladder (%d) not coarser than raw (%d)", len(coarse), len(raw))
	}
}

func TestExportPeakIsZero(t *testing.T) {
	filters := []peq.Filter{
		{Type: peq.LowShelf, Freq: 105, Q: 0.7, Gain: 4},
		{Type: peq.Peaking, Freq: 3000, Q: 2, Gain: -5},
		{Type: peq.HighShelf, Freq: 8000, Q: 0.7, Gain: 2},
	}

	got := Export(filters)
	if len(got) != len(CoarseFreqs()) {
		t.Fatalf("got %d points", len(got))
	}

	peak := math.Inf(-1)
	for _, p := range got {
		peak = math.Max(peak, p.Gain)
	}
	if peak != 0 {
		t.Fatalf("peak = %v, want exactly 0", peak)
	}
}

func TestExportShape(t *testing.T) {
	got := Export([]peq.Filter{{Type: peq.Peaking, Freq: 1000, Q: 1, Gain: -6}})

	// The filter cuts, so the far edges are the 0 dB peak and the dip sits
	// near 1 kHz at about -6 dB.
	if math.Abs(got[0].Gain) > 0.1 || math.Abs(got[len(got)-1].Gain) > 0.1 {
		t.Errorf("edges = %v, %v", got[0].Gain, got[len(got)-1].Gain)
	}

	low := got[0]
	for _, p := range got {
		if p.Gain < low.Gain {
			low = p
		}
	}
	if low.Freq < 900 || low.Freq > 1100 {
		t.Errorf("dip at %v Hz", low.Freq)
	}
	if low.Gain > -5 || low.Gain < -6.5 {
		t.Errorf("dip depth %v", low.Gain)
	}
}

func TestExportNoFilters(t *testing.T) {
	for _, p := range Export(nil) {
		if p.Gain != 0 {
			t.Fatalf("gain %v at %v Hz without filters", p.Gain, p.Freq)
		}
	}
}
