// Package biquad provides second-order IIR section primitives used to model
// equalizer bands.
//
// [Coefficients] carries a normalized transfer function (a0 = 1). Its
// magnitude response is evaluated in closed form, without complex arithmetic,
// which is what the equalizer engine uses on every optimizer step. A
// [Section] or a cascaded [Chain] runs the same coefficients in Direct Form II
// Transposed, which is only used to render impulse responses for export.
//
// Coefficient design (peaking and shelving EQ) lives in dsp/filter/design.
package biquad
