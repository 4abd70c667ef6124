package autoeq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
	"github.com/cwbudde/algo-autoeq/eq/response"
	"github.com/cwbudde/algo-autoeq/internal/testutil"
)

func TestFreqUnit(t *testing.T) {
	cases := []struct{ freq, want float64 }{
		{20, 1},
		{99.9, 1},
		{100, 10},
		{999, 10},
		{1000, 100},
		{9999, 100},
		{10000, 1000},
		{19000, 1000},
	}
	for _, tc := range cases {
		if got := freqUnit(tc.freq); got != tc.want {
			t.Errorf("freqUnit(%v) = %v, want %v", tc.freq, got, tc.want)
		}
	}
}

func TestStrip(t *testing.T) {
	b := DefaultConfig().boundsFor(peq.Peaking)
	cases := []struct {
		in, want peq.Filter
	}{
		{peq.Filter{Type: peq.Peaking, Freq: 57.8, Q: 1, Gain: 3}, peq.Filter{Type: peq.Peaking, Freq: 57, Q: 1, Gain: 3}},
		{peq.Filter{Type: peq.Peaking, Freq: 437, Q: 5, Gain: -20}, peq.Filter{Type: peq.Peaking, Freq: 430, Q: 2, Gain: -12}},
		{peq.Filter{Type: peq.Peaking, Freq: 1416, Q: 0.1, Gain: 4}, peq.Filter{Type: peq.Peaking, Freq: 1400, Q: 0.5, Gain: 4}},
		{peq.Filter{Type: peq.Peaking, Freq: 18500, Q: 1, Gain: 4}, peq.Filter{Type: peq.Peaking, Freq: 15000, Q: 1, Gain: 4}},
	}
	for _, tc := range cases {
		if got := strip(tc.in, b); got != tc.want {
			t.Errorf("strip(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStripShelfBounds(t *testing.T) {
	cfg := DefaultConfig()
	got := strip(peq.Filter{Type: peq.HighShelf, Freq: 1200, Q: 2, Gain: 3}, cfg.boundsFor(peq.HighShelf))
	if got.Freq != highShelfFreq.Min() || got.Q != shelfQ.Max() {
		t.Fatalf("high shelf not clamped to shelf bounds: %v", got)
	}
}

func TestTryStep(t *testing.T) {
	cfg := DefaultConfig()
	target := bumpCurve(1000, 2000, 6)
	e := evaluator{frame: response.NewFrame(curve.Flat(0)), rest: curve.Flat(0), target: target}
	d := Deltas()[0]
	b := cfg.boundsFor(peq.Peaking)

	origin := peq.Filter{Type: peq.Peaking, Freq: 1400, Q: 1.4, Gain: 3}
	best := e.distance(origin)

	got, dist, ok := tryStep(e, origin, d, b, 0, 0, 2, best)
	if !ok {
		t.Fatalf("raising gain towards the bump was rejected")
	}
	if got.Gain != 4 || got.Freq != origin.Freq || got.Q != origin.Q {
		t.Errorf("moved filter = %v", got)
	}
	if dist >= best {
		t.Errorf("distance %v not below %v", dist, best)
	}

	if _, d2, ok := tryStep(e, origin, d, b, 0, 0, -2, best); ok || d2 != best {
		t.Errorf("lowering gain away from the bump was accepted")
	}
	if _, _, ok := tryStep(e, origin, d, b, 0, 0, 20, math.Inf(1)); ok {
		t.Errorf("step outside the gain range was accepted")
	}
	if _, _, ok := tryStep(e, origin, d, b, 0, -10, 0, math.Inf(1)); ok {
		t.Errorf("step outside the Q range was accepted")
	}
}

func TestOptimizeImprovesDistance(t *testing.T) {
	cfg := DefaultConfig()
	source := curve.Flat(0)
	target := bumpCurve(1000, 2000, 6)
	start := []peq.Filter{
		{Type: peq.Peaking, Freq: 2500, Q: 1, Gain: 2},
		{Type: peq.Peaking, Freq: 900, Q: 1.8, Gain: 2},
	}

	before := response.Distance(response.Apply(source, start), target)
	got := start
	for round := range len(Deltas()) {
		got = Optimize(source, target, got, round, round%2 == 1, cfg)
	}
	after := response.Distance(response.Apply(source, got), target)

	if after >= before {
		t.Fatalf("distance %v not below starting %v", after, before)
	}
	if len(got) != len(start) {
		t.Fatalf("optimizer changed the filter count to %d", len(got))
	}
	testutil.RequireAscending(t, freqsOf(got))
	for _, f := range got {
		if !cfg.boundsFor(f.Type).contains(f) {
			t.Errorf("filter %v left its bounds", f)
		}
	}
	if start[0].Freq != 2500 {
		t.Errorf("input slice was modified")
	}
}

func TestOptimizeClampsRound(t *testing.T) {
	cfg := DefaultConfig()
	in := []peq.Filter{{Type: peq.Peaking, Freq: 1400, Q: 1.4, Gain: 5}}
	got := Optimize(curve.Flat(0), bumpCurve(1000, 2000, 6), in, 7, false, cfg)
	want := Optimize(curve.Flat(0), bumpCurve(1000, 2000, 6), in, 2, false, cfg)
	if got[0] != want[0] {
		t.Fatalf("round 7 = %v, round 2 = %v", got[0], want[0])
	}
}
