package autoeq

import (
	"testing"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
	"github.com/cwbudde/algo-autoeq/eq/response"
	"github.com/cwbudde/algo-autoeq/internal/testutil"
)

func TestSearchShelvesLowEdge(t *testing.T) {
	current := curve.Flat(0)
	target := response.Apply(current, []peq.Filter{{Type: peq.LowShelf, Freq: 105, Q: 0.7, Gain: -4}})

	got := SearchShelves(current, target, DefaultConfig())
	if len(got) != 1 {
		t.Fatalf("got %d shelves %+v, want 1", len(got), got)
	}

	s := got[0]
	if s.Filter.Type != peq.LowShelf {
		t.Fatalf("type = %v, want low shelf", s.Filter.Type)
	}
	testutil.RequireInRange(t, "gain", s.Filter.Gain, -6, -2)
	if s.Score <= shelfMinGain {
		t.Errorf("score = %v", s.Score)
	}
	if !shelfQ.Contains(s.Filter.Q) || !lowShelfFreq.Contains(s.Filter.Freq) {
		t.Errorf("shelf %v outside shelf bounds", s.Filter)
	}
}

func TestSearchShelvesHighEdge(t *testing.T) {
	current := curve.Flat(0)
	target := response.Apply(current, []peq.Filter{{Type: peq.HighShelf, Freq: 6500, Q: 0.7, Gain: 5}})

	got := SearchShelves(current, target, DefaultConfig())
	if len(got) != 1 || got[0].Filter.Type != peq.HighShelf {
		t.Fatalf("got %+v, want one high shelf", got)
	}
	testutil.RequireInRange(t, "gain", got[0].Filter.Gain, 3, 7)
}

func TestSearchShelvesFlat(t *testing.T) {
	if got := SearchShelves(curve.Flat(0), curve.Flat(0), DefaultConfig()); len(got) != 0 {
		t.Fatalf("flat curves produced shelves %+v", got)
	}
}

func TestSearchShelvesInconsistentSign(t *testing.T) {
	target := curve.Flat(0)
	for i := range target {
		if f := target[i].Freq; f <= 200 {
			if i%2 == 0 {
				target[i].Gain = 6
			} else {
				target[i].Gain = -3
			}
		}
	}
	if got := SearchShelves(curve.Flat(0), target, DefaultConfig()); len(got) != 0 {
		t.Fatalf("alternating deviation produced shelves %+v", got)
	}
}
