package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/cwbudde/algo-autoeq/eq/autoeq"
	"github.com/cwbudde/algo-autoeq/eq/curve"
)

// loadConfig returns the default tuning overlaid with the TOML file at path.
// An empty path yields the defaults.
func loadConfig(path string) (autoeq.Config, error) {
	cfg := autoeq.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// readCurve loads a CSV frequency response. An empty path yields a flat
// curve.
func readCurve(path string) (curve.Curve, error) {
	if path == "" {
		return curve.Flat(0), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := curve.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return curve.Curve(points), nil
}
