package autoeq

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		delta, threshold float64
		want             runState
	}{
		{0, 1, matched},
		{0.99, 1, matched},
		{-0.99, 1, matched},
		{1, 1, over},
		{3, 0.5, over},
		{-1, 1, under},
		{-0.6, 0.5, under},
	}
	for _, tc := range cases {
		if got := classify(tc.delta, tc.threshold); got != tc.want {
			t.Errorf("classify(%v, %v) = %v, want %v", tc.delta, tc.threshold, got, tc.want)
		}
	}
}

func TestRunDetection(t *testing.T) {
	states := []runState{matched, over, over, matched, under, under, over, over, over}

	var (
		open *openRun
		runs []closedRun
	)
	for i, s := range states {
		var closed *closedRun
		open, closed = advance(open, i, s)
		if closed != nil {
			runs = append(runs, *closed)
		}
	}
	if last := finish(open, len(states)); last != nil {
		runs = append(runs, *last)
	}

	want := []closedRun{
		{start: 1, end: 3, state: over},
		{start: 4, end: 6, state: under},
		{start: 6, end: 8, state: over},
	}
	if len(runs) != len(want) {
		t.Fatalf("got %d runs %+v, want %+v", len(runs), runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run %d = %+v, want %+v", i, runs[i], want[i])
		}
	}
}

func TestAdvanceStaysOpenWhileStateHolds(t *testing.T) {
	open, closed := advance(nil, 0, matched)
	if open != nil || closed != nil {
		t.Fatalf("matched point opened a run")
	}

	open, _ = advance(nil, 2, under)
	next, closed := advance(open, 3, under)
	if closed != nil || next != open {
		t.Fatalf("same state must keep the run open")
	}
}

func TestFinishDropsSinglePointRun(t *testing.T) {
	if r := finish(&openRun{start: 4, state: over}, 5); r != nil {
		t.Fatalf("single trailing point produced run %+v", r)
	}
	if r := finish(nil, 5); r != nil {
		t.Fatalf("no open run produced %+v", r)
	}
}
