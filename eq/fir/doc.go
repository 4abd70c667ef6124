// Package fir renders a parametric filter set as a finite impulse response
// for convolution engines, and measures the magnitude response of such an
// impulse response.
//
// The impulse response is the cascade of the set's biquads designed at the
// target sample rate, scaled by the preamp, with a short fade-out over its
// tail so that truncation does not click.
package fir
