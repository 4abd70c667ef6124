package peq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-autoeq/dsp/filter/biquad"
	"github.com/cwbudde/algo-autoeq/internal/testutil"
)

var testFreqs = []float64{20, 50, 100, 250, 500, 1000, 2000, 5000, 10000, 16000, 20000}

func TestPeakingZeroGainIsIdentity(t *testing.T) {
	for _, freq := range []float64{30, 1000, 12000} {
		for _, q := range []float64{0.3, 1, 8} {
			c := PeakingCoeffs(freq, q, 0)
			got := MagnitudeDB(testFreqs, []biquad.Coefficients{c})
			for i, g := range got {
				if math.Abs(g) > 1e-9 {
					t.Fatalf("freq=%v q=%v: %v dB at %v Hz", freq, q, g, testFreqs[i])
				}
			}
		}
	}
}

func TestShelfAsymptotes(t *testing.T) {
	const corner = 200.0
	for _, gain := range []float64{-8, 6} {
		ls := MagnitudeDB([]float64{corner / 100, corner * 100}, []biquad.Coefficients{LowShelfCoeffs(corner, 0.707, gain)})
		if math.Abs(ls[0]-gain) > 0.5 || math.Abs(ls[1]) > 0.5 {
			t.Errorf("low shelf %v dB: low=%v high=%v", gain, ls[0], ls[1])
		}

		hs := MagnitudeDB([]float64{corner / 100, corner * 100}, []biquad.Coefficients{HighShelfCoeffs(corner, 0.707, gain)})
		if math.Abs(hs[0]) > 0.5 || math.Abs(hs[1]-gain) > 0.5 {
			t.Errorf("high shelf %v dB: low=%v high=%v", gain, hs[0], hs[1])
		}
	}
}

func TestGainsAdditive(t *testing.T) {
	a := Filter{Type: Peaking, Freq: 800, Q: 1.4, Gain: 5}
	b := Filter{Type: HighShelf, Freq: 6000, Q: 0.7, Gain: -3}

	both := Gains(testFreqs, []Filter{a, b})
	onlyA := Gains(testFreqs, []Filter{a})
	onlyB := Gains(testFreqs, []Filter{b})

	sum := make([]float64, len(testFreqs))
	for i := range sum {
		sum[i] = onlyA[i] + onlyB[i]
	}
	testutil.RequireSliceNearlyEqual(t, both, sum, 1e-9)
}

func TestGainsSkipsMalformedFilters(t *testing.T) {
	good := Filter{Type: Peaking, Freq: 1000, Q: 1, Gain: 6}
	filters := []Filter{
		good,
		{Type: Peaking, Q: 1, Gain: 6},
		{Type: Peaking, Freq: 1000, Gain: 6},
		{Type: Peaking, Freq: 1000, Q: 1},
		{Type: Type(7), Freq: 1000, Q: 1, Gain: 6},
		{Type: LowShelf, Freq: math.NaN(), Q: 1, Gain: 6},
	}

	coeffs, excluded := CoefficientsOf(filters)
	if len(coeffs) != 1 {
		t.Fatalf("got %d coefficient sets, want 1", len(coeffs))
	}
	if want := []int{1, 2, 3, 4, 5}; len(excluded) != len(want) {
		t.Fatalf("excluded = %v, want %v", excluded, want)
	}

	testutil.RequireSliceNearlyEqual(t, Gains(testFreqs, filters), Gains(testFreqs, []Filter{good}), 0)
}

func TestClampParams(t *testing.T) {
	p, changed := ClampParams(1000, 1, 6)
	if changed {
		t.Fatalf("in-range params reported as clamped: %+v", p)
	}
	if p.NormFreq != 1000/ReferenceSampleRate {
		t.Fatalf("NormFreq = %v", p.NormFreq)
	}

	cases := []struct {
		freq, q, gain float64
		want          Params
	}{
		{1e-9, 1, 6, Params{NormFreq: MinNormFreq, Q: 1, Gain: 6}},
		{1e6, 1, 6, Params{NormFreq: MaxNormFreq, Q: 1, Gain: 6}},
		{1000, 0, 6, Params{NormFreq: 1000 / ReferenceSampleRate, Q: MinQ, Gain: 6}},
		{1000, 5000, 6, Params{NormFreq: 1000 / ReferenceSampleRate, Q: MaxQ, Gain: 6}},
		{1000, 1, -90, Params{NormFreq: 1000 / ReferenceSampleRate, Q: 1, Gain: MinGain}},
		{1000, 1, 90, Params{NormFreq: 1000 / ReferenceSampleRate, Q: 1, Gain: MaxGain}},
	}
	for _, tc := range cases {
		got, changed := ClampParams(tc.freq, tc.q, tc.gain)
		if !changed || got != tc.want {
			t.Errorf("ClampParams(%v, %v, %v) = %+v, %v; want %+v, true", tc.freq, tc.q, tc.gain, got, changed, tc.want)
		}
	}
}

func TestExtremeParamsStayFinite(t *testing.T) {
	filters := []Filter{
		{Type: Peaking, Freq: 1e-3, Q: 1e-9, Gain: 500},
		{Type: LowShelf, Freq: 1e9, Q: 1e9, Gain: -500},
		{Type: HighShelf, Freq: 5, Q: 1e-7, Gain: 80},
	}
	testutil.RequireFinite(t, Gains(testFreqs, filters))
}

func TestPeakingCenterGain(t *testing.T) {
	g := Gains([]float64{1000}, []Filter{{Type: Peaking, Freq: 1000, Q: 2, Gain: -7.5}})
	if math.Abs(g[0]+7.5) > 1e-9 {
		t.Fatalf("center gain = %v, want -7.5", g[0])
	}
}

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"PK": Peaking, "pk": Peaking, "LSC": LowShelf, "ls": LowShelf,
		"HSC": HighShelf, " HS ": HighShelf, "highshelf": HighShelf,
	}
	for in, want := range cases {
		got, err := ParseType(in)
		if err != nil || got != want {
			t.Errorf("ParseType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseType("LP"); err == nil {
		t.Error("ParseType(LP) should fail")
	}
	for _, typ := range []Type{Peaking, LowShelf, HighShelf} {
		back, err := ParseType(typ.String())
		if err != nil || back != typ {
			t.Errorf("round trip of %v failed: %v, %v", typ, back, err)
		}
	}
}

func TestRoundedAndSort(t *testing.T) {
	f := Filter{Type: Peaking, Freq: 1234.56, Q: 1.23456, Gain: -3.456}.Rounded()
	if f.Freq != 1235 || f.Q != 1.23 || f.Gain != -3.5 {
		t.Fatalf("Rounded = %+v", f)
	}

	filters := []Filter{{Freq: 3000}, {Freq: 100}, {Freq: 900}}
	SortByFreq(filters)
	for i := 1; i < len(filters); i++ {
		if filters[i-1].Freq > filters[i].Freq {
			t.Fatalf("not sorted: %v", filters)
		}
	}

	rest := Without(filters, 1)
	if len(rest) != 2 || rest[0].Freq != 100 || rest[1].Freq != 3000 || len(filters) != 3 {
		t.Fatalf("Without = %v (source %v)", rest, filters)
	}
}
