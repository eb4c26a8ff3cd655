package search

import (
	"math"

	"github.com/quasp/quasp/circuit"
)

// Circuit assembly for the Grover rounds. The atom register occupies qubits
// 0..n-1, the oracle's ancillas sit above it; only atom qubits take part in
// initialization, diffusion and measurement.

// initLayer prepares the initial state on the atom register: a uniform
// superposition by default, or the weighted RY product state when
// InitWeights is set.
func (e *Engine) initLayer(c *circuit.Circuit, inverse bool) {
	n := e.prog.NumAtoms()
	for q := 0; q < n; q++ {
		if e.opts.InitWeights == nil {
			c.H(q)
			continue
		}
		theta := 2 * math.Acos(math.Sqrt(1-e.opts.InitWeights[q]))
		if inverse {
			theta = -theta
		}
		c.RY(theta, q)
	}
}

// diffusion appends the reflection about the initial state, restricted to
// the atom register.
func (e *Engine) diffusion(c *circuit.Circuit) {
	n := e.prog.NumAtoms()
	atoms := make([]int, n)
	for q := range atoms {
		atoms[q] = q
	}
	e.initLayer(c, true)
	for _, q := range atoms {
		c.X(q)
	}
	c.MCZ(atoms)
	for _, q := range atoms {
		c.X(q)
	}
	e.initLayer(c, false)
}

// groverCircuit builds the full round circuit: initialization, iters
// applications of oracle plus diffusion, and a measurement of the atom
// register in atom order.
func (e *Engine) groverCircuit(iters int) *circuit.Circuit {
	c := circuit.New(e.orc.NumQubits)
	e.initLayer(c, false)
	for k := 0; k < iters; k++ {
		c.Append(e.orc)
		e.diffusion(c)
	}
	e.measureAtoms(c)
	return c
}

// uniformCircuit is the zero-iteration round: prepare and measure.
func (e *Engine) uniformCircuit() *circuit.Circuit {
	return e.groverCircuit(0)
}

func (e *Engine) measureAtoms(c *circuit.Circuit) {
	n := e.prog.NumAtoms()
	atoms := make([]int, n)
	for q := range atoms {
		atoms[q] = q
	}
	c.Measure(atoms...)
}
