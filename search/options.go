package search

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/quasp/quasp/oracle"
)

// Options configure a search engine. The zero value is usable; every field
// has a sensible default.
type Options struct {
	// Lambda is the BBHT escalation factor applied to the iteration bound
	// after each failed round. Defaults to 6/5.
	Lambda float64

	// SafetyFactor multiplies the ceil(pi/4 * sqrt(2^n)) iteration budget.
	// Defaults to 3.
	SafetyFactor int

	// MaxRounds caps the number of search rounds independently of the
	// iteration budget. Zero means no round cap.
	MaxRounds int

	// RoundTimeout bounds each backend call. Defaults to 30s. A timed-out
	// round counts as failed and escalation continues.
	RoundTimeout time.Duration

	// RetryCap is the number of consecutive backend failures tolerated
	// before the run aborts with the backend's error. Defaults to 3.
	RetryCap int

	// AncillaBudget caps the oracle's ancilla qubits. Defaults to
	// oracle.DefaultAncillaBudget.
	AncillaBudget int

	// Seed drives the iteration-count sampling. Zero seeds from the clock.
	// Randomness is threaded through the engine state; nothing ambient.
	Seed int64

	// InitWeights, when non-nil, replaces the uniform Hadamard
	// initialization with per-atom RY rotations: InitWeights[i] is the
	// probability that atom i's qubit reads 1 in the initial state. Must
	// hold one value in [0,1] per atom.
	InitWeights []float64

	// Logger receives structured progress logs. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults(numAtoms int) (Options, error) {
	if o.Lambda == 0 {
		o.Lambda = 6.0 / 5.0
	}
	if o.Lambda <= 1 {
		return o, fmt.Errorf("search: escalation factor %v must exceed 1", o.Lambda)
	}
	if o.SafetyFactor == 0 {
		o.SafetyFactor = 3
	}
	if o.SafetyFactor < 1 {
		return o, fmt.Errorf("search: safety factor %d must be positive", o.SafetyFactor)
	}
	if o.RoundTimeout == 0 {
		o.RoundTimeout = 30 * time.Second
	}
	if o.RetryCap == 0 {
		o.RetryCap = 3
	}
	if o.AncillaBudget == 0 {
		o.AncillaBudget = oracle.DefaultAncillaBudget
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.InitWeights != nil {
		if len(o.InitWeights) != numAtoms {
			return o, fmt.Errorf("search: %d init weights for %d atoms", len(o.InitWeights), numAtoms)
		}
		for i, w := range o.InitWeights {
			if w < 0 || w > 1 {
				return o, fmt.Errorf("search: init weight %v for atom %d outside [0,1]", w, i)
			}
		}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o, nil
}
