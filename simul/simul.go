// Package simul provides a dense statevector simulator implementing the
// circuit.Backend contract. It is the reference backend for the search
// pipeline and its tests; real hardware backends plug in behind the same
// interface.
package simul

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/quasp/quasp/circuit"
)

// ErrTooManyQubits indicates the circuit exceeds the simulable register
// size (the statevector grows as 2^n).
var ErrTooManyQubits = errors.New("too many qubits to simulate")

// DefaultMaxQubits caps the register at 16 MiB of amplitudes.
const DefaultMaxQubits = 20

// A Backend simulates circuits on a dense statevector. The measurement
// sampler draws from a seeded source, so runs are reproducible; a Backend
// is not safe for concurrent use, matching the strictly sequential search
// control loop.
type Backend struct {
	// MaxQubits bounds the simulable circuit width. Zero means
	// DefaultMaxQubits.
	MaxQubits int

	rng *rand.Rand
}

// New returns a simulator whose measurement sampling is driven by the given
// seed.
func New(seed int64) *Backend {
	return &Backend{rng: rand.New(rand.NewSource(seed))}
}

// Execute runs the circuit and samples the measured qubits shots times.
// All shots are drawn from the same final state: the simulated experiment
// is "prepare and measure" repeated, not sequential collapse.
func (b *Backend) Execute(ctx context.Context, c *circuit.Circuit, shots int) ([]circuit.Bits, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d shots requested", circuit.ErrBackendExecution, shots)
	}
	if len(c.Measured) == 0 {
		return nil, fmt.Errorf("%w: circuit has no measured qubits", circuit.ErrBackendExecution)
	}
	state, err := b.Run(ctx, c)
	if err != nil {
		return nil, err
	}
	out := make([]circuit.Bits, shots)
	for s := 0; s < shots; s++ {
		idx := b.sample(state)
		bits := make(circuit.Bits, len(c.Measured))
		for k, q := range c.Measured {
			bits[k] = idx&(1<<q) != 0
		}
		out[s] = bits
	}
	return out, nil
}

// Run applies the circuit's gates to |0...0> and returns the final
// statevector; amplitude i corresponds to the basis state whose qubit q
// reads bit q of i. Tests use it to inspect oracle phases and ancilla
// hygiene directly.
func (b *Backend) Run(ctx context.Context, c *circuit.Circuit) ([]complex128, error) {
	maxQubits := b.MaxQubits
	if maxQubits == 0 {
		maxQubits = DefaultMaxQubits
	}
	if c.NumQubits > maxQubits {
		return nil, fmt.Errorf("%w: %d qubits, max %d", ErrTooManyQubits, c.NumQubits, maxQubits)
	}
	state := make([]complex128, 1<<c.NumQubits)
	state[0] = 1
	for i, g := range c.Gates {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", circuit.ErrBackendExecution, err)
			}
		}
		apply(state, g)
	}
	return state, nil
}

func apply(state []complex128, g circuit.Gate) {
	tmask := uint64(1) << g.Target
	var cmask uint64
	for _, q := range g.Controls {
		cmask |= 1 << q
	}
	switch g.Kind {
	case circuit.H:
		s := complex(1/math.Sqrt2, 0)
		forPairs(state, tmask, func(i, j uint64) {
			a, b := state[i], state[j]
			state[i] = s * (a + b)
			state[j] = s * (a - b)
		})
	case circuit.X:
		forPairs(state, tmask, func(i, j uint64) {
			state[i], state[j] = state[j], state[i]
		})
	case circuit.Z:
		for i := range state {
			if uint64(i)&tmask != 0 {
				state[i] = -state[i]
			}
		}
	case circuit.RY:
		cos := complex(math.Cos(g.Theta/2), 0)
		sin := complex(math.Sin(g.Theta/2), 0)
		forPairs(state, tmask, func(i, j uint64) {
			a, b := state[i], state[j]
			state[i] = cos*a - sin*b
			state[j] = sin*a + cos*b
		})
	case circuit.CX, circuit.MCX:
		forPairs(state, tmask, func(i, j uint64) {
			if i&cmask == cmask {
				state[i], state[j] = state[j], state[i]
			}
		})
	case circuit.MCZ:
		full := cmask | tmask
		for i := range state {
			if uint64(i)&full == full {
				state[i] = -state[i]
			}
		}
	default:
		panic("invalid gate kind")
	}
}

// forPairs calls f once per amplitude pair (i, i|tmask) with the target
// qubit clear in i.
func forPairs(state []complex128, tmask uint64, f func(i, j uint64)) {
	for i := uint64(0); i < uint64(len(state)); i++ {
		if i&tmask == 0 {
			f(i, i|tmask)
		}
	}
}

// sample draws a basis state index according to the squared amplitudes.
func (b *Backend) sample(state []complex128) uint64 {
	r := b.rng.Float64()
	acc := 0.0
	for i, amp := range state {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		acc += p
		if r < acc {
			return uint64(i)
		}
	}
	// Numerical slack can leave acc marginally below 1.
	return uint64(len(state) - 1)
}
