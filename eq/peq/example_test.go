package peq_test

import (
	"fmt"

	"github.com/cwbudde/algo-autoeq/eq/peq"
)

func ExampleGains() {
	filters := []peq.Filter{{Type: peq.Peaking, Freq: 1000, Q: 1, Gain: 6}}
	freqs := []float64{100, 1000, 10000}

	for i, g := range peq.Gains(freqs, filters) {
		fmt.Printf("%.0f Hz: %.2f dB\n", freqs[i], g)
	}
	// Output:
	// 100 Hz: 0.07 dB
	// 1000 Hz: 6.00 dB
	// 10000 Hz: 0.05 dB
}

func ExampleFilter_Rounded() {
	f := peq.Filter{Type: peq.LowShelf, Freq: 104.6, Q: 0.7071, Gain: 3.04}
	fmt.Println(f.Rounded())
	// Output:
	// LSC 105 Hz 3.0 dB Q 0.71
}
