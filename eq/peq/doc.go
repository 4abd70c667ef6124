// Package peq models parametric equalizer bands and evaluates their
// theoretical magnitude response.
//
// A [Filter] is an immutable (type, frequency, Q, gain) value. Filters with a
// missing parameter are treated as incomplete UI rows: [Filter.Coefficients]
// reports them as excluded rather than failing. Out-of-range parameters are
// clamped before coefficient design so the response math stays finite.
//
// All coefficients are designed at [ReferenceSampleRate]. That rate is a
// modeling constant for magnitude evaluation, not a playback rate.
package peq
