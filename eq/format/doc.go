// Package format reads and writes the text interchange formats of equalizer
// profiles: the line-oriented ParametricEQ format
//
//	Preamp: -6.4 dB
//	Filter 1: ON PK Fc 105 Hz Gain 4.0 dB Q 0.70
//	Filter 2: ON HSC Fc 8000 Hz Gain -2.5 dB Q 0.71
//
// and the single-line GraphicEQ format
//
//	GraphicEQ: 20 -1.2; 21 -1.2; 22 -1.1
package format
