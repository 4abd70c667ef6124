// Package graphiceq converts a parametric filter set into the point list of
// a GraphicEQ profile. GraphicEQ importers have no preamp field, so the
// exported curve is normalized to a 0 dB peak.
package graphiceq
