package peq

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Type identifies the band shape of a Filter.
type Type int

const (
	// Peaking boosts or cuts a band around Freq.
	Peaking Type = iota
	// LowShelf boosts or cuts everything below Freq.
	LowShelf
	// HighShelf boosts or cuts everything above Freq.
	HighShelf
)

// String returns the ParametricEQ token of the type (PK, LSC, HSC).
func (t Type) String() string {
	switch t {
	case Peaking:
		return "PK"
	case LowShelf:
		return "LSC"
	case HighShelf:
		return "HSC"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Valid reports whether t is one of the defined band shapes.
func (t Type) Valid() bool {
	return t >= Peaking && t <= HighShelf
}

// IsShelf reports whether t is a low or high shelf.
func (t Type) IsShelf() bool {
	return t == LowShelf || t == HighShelf
}

// ParseType maps a type token to a Type. Besides PK, LSC and HSC it accepts
// the short forms LS and HS and the long names, case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PK", "PEQ", "PEAKING":
		return Peaking, nil
	case "LSC", "LS", "LOWSHELF":
		return LowShelf, nil
	case "HSC", "HS", "HIGHSHELF":
		return HighShelf, nil
	default:
		return 0, fmt.Errorf("unknown filter type %q", s)
	}
}

// Filter is one equalizer band. Freq is in Hz, Gain in dB.
type Filter struct {
	Type Type
	Freq float64
	Q    float64
	Gain float64
}

// Valid reports whether f has a valid type and non-zero, finite frequency,
// Q and gain. Invalid filters are excluded from every response computation.
func (f Filter) Valid() bool {
	return f.Type.Valid() && usable(f.Freq) && usable(f.Q) && usable(f.Gain)
}

func usable(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %.0f Hz %.1f dB Q %.2f", f.Type, f.Freq, f.Gain, f.Q)
}

// Rounded returns f with Freq rounded to whole Hz, Q to two decimals and
// Gain to one decimal, the precision of the ParametricEQ text format.
func (f Filter) Rounded() Filter {
	return Filter{
		Type: f.Type,
		Freq: math.Round(f.Freq),
		Q:    math.Round(f.Q*100) / 100,
		Gain: math.Round(f.Gain*10) / 10,
	}
}

// Set is an ordered list of filters together with the preamp that keeps the
// combined response at or below 0 dB.
type Set struct {
	Filters  []Filter
	PreampDB float64
}

// SortByFreq sorts filters in place by ascending frequency. The sort is
// stable so equal frequencies keep their relative order.
func SortByFreq(filters []Filter) {
	sort.SliceStable(filters, func(i, j int) bool {
		return filters[i].Freq < filters[j].Freq
	})
}

// Without returns a copy of filters with the element at index i removed.
func Without(filters []Filter, i int) []Filter {
	out := make([]Filter, 0, len(filters))
	out = append(out, filters[:i]...)
	return append(out, filters[i+1:]...)
}
