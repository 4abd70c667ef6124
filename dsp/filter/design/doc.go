// Package design provides RBJ-style coefficient designers for the equalizer
// band shapes: peaking, low shelf and high shelf.
//
// [Peak], [LowShelf] and [HighShelf] take a frequency in Hz and a sample
// rate and reject out-of-range input by returning zero coefficients. The
// W-suffixed variants take the angular frequency directly and perform no
// validation; eq/peq uses them after clamping its inputs.
package design
