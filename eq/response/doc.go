// Package response applies equalizer filters to frequency-response curves and
// measures how far two curves are apart.
//
// Two distance measures exist and are not interchangeable: [Distance] is a
// mean absolute difference with a 0.1 dB dead band and drives the local
// optimizer, while [WeightedError] is a plain RMS difference used to score
// candidate filters and to decide when a fit is good enough.
package response
