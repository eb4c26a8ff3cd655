package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quasp/quasp/search"
)

// fileOptions is the YAML shape of a search options file:
//
//	lambda: 1.2
//	safety_factor: 3
//	max_rounds: 50
//	round_timeout: 30s
//	retry_cap: 3
//	ancilla_budget: 64
//	seed: 42
//	init_weights: [0.5, 0.9]
type fileOptions struct {
	Lambda        float64   `yaml:"lambda"`
	SafetyFactor  int       `yaml:"safety_factor"`
	MaxRounds     int       `yaml:"max_rounds"`
	RoundTimeout  string    `yaml:"round_timeout"`
	RetryCap      int       `yaml:"retry_cap"`
	AncillaBudget int       `yaml:"ancilla_budget"`
	Seed          int64     `yaml:"seed"`
	InitWeights   []float64 `yaml:"init_weights"`
}

// loadOptions reads search options from a YAML file; an empty path yields
// the defaults.
func loadOptions(path string) (search.Options, error) {
	var opts search.Options
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("could not read config: %w", err)
	}
	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return opts, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	opts.Lambda = fo.Lambda
	opts.SafetyFactor = fo.SafetyFactor
	opts.MaxRounds = fo.MaxRounds
	opts.RetryCap = fo.RetryCap
	opts.AncillaBudget = fo.AncillaBudget
	opts.Seed = fo.Seed
	opts.InitWeights = fo.InitWeights
	if fo.RoundTimeout != "" {
		d, err := time.ParseDuration(fo.RoundTimeout)
		if err != nil {
			return opts, fmt.Errorf("could not parse round_timeout: %w", err)
		}
		opts.RoundTimeout = d
	}
	return opts, nil
}
