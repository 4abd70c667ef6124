// Package interp provides interpolation primitives for sampled curves.
//
// Frequency responses are interpolated along a logarithmic frequency axis:
// [LogFrac] gives the fractional position of a frequency between two
// bracketing frequencies and [LogLinear] blends the bracketing values.
package interp
