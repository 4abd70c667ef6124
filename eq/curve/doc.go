// Package curve resamples frequency-response curves onto the canonical
// 1/48-octave grid used for every comparison in the equalizer engine.
//
// Raw curves may be sparse, unsorted and sampled anywhere; [Canonicalize] is
// the only place where frequencies are interpolated. [AlignToReference]
// shifts a target curve so that it meets the source curve at a reference
// frequency, which makes distances between the two meaningful.
package curve
