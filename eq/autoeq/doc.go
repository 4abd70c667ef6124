// Package autoeq derives parametric equalizer bands that reshape a measured
// frequency response towards a target response.
//
// The pipeline in [Run] canonicalizes and aligns both curves, optionally
// seeds wide shelf filters at the band edges, then grows the filter set one
// candidate at a time. Candidates come from a scan of alternating
// over/under-shoot regions ([SearchCandidates]); each growth step is followed
// by coordinate-descent refinement ([Optimize]). A final polish, a single
// pruning pass and rounding produce the result.
//
// The engine is pure and keeps no state between calls, so any number of runs
// may execute concurrently. Numeric edge cases never produce errors: the
// only error Run returns is the context's, together with the best filter set
// found so far.
package autoeq
