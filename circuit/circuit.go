// Package circuit defines the quantum circuit intermediate representation
// produced by the oracle synthesizer and the search engine, and the backend
// contract under which circuits are executed.
//
// Qubits are indexed from 0. Measurement outcomes are little-endian with
// respect to the measured qubit list: bit k of a shot is the outcome of
// Measured[k].
package circuit

import "fmt"

// Kind identifies a gate.
type Kind byte

const (
	// H is the Hadamard gate on Target.
	H = Kind(iota)
	// X is the Pauli X (NOT) gate on Target.
	X
	// Z is the Pauli Z (phase flip) gate on Target.
	Z
	// RY is a rotation around Y by Theta on Target.
	RY
	// CX is X on Target controlled by Controls[0].
	CX
	// MCX is X on Target controlled by every qubit in Controls.
	MCX
	// MCZ flips the phase of states where Target and every qubit in
	// Controls are 1. The gate is symmetric in its qubits; the
	// target/control split is a notational convention.
	MCZ
)

func (k Kind) String() string {
	switch k {
	case H:
		return "h"
	case X:
		return "x"
	case Z:
		return "z"
	case RY:
		return "ry"
	case CX:
		return "cx"
	case MCX:
		return "mcx"
	case MCZ:
		return "mcz"
	default:
		panic("invalid gate kind")
	}
}

// A Gate is one operation of a circuit.
type Gate struct {
	Kind     Kind
	Target   int
	Controls []int
	Theta    float64 // RY only
}

// A Circuit is an ordered list of gates over NumQubits qubits, optionally
// followed by a measurement of the qubits in Measured. Circuits are built
// once and are read-only afterwards; sharing one across sequential search
// rounds is safe.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	Measured  []int
}

// New returns an empty circuit over n qubits.
func New(n int) *Circuit {
	if n < 0 {
		panic("circuit: negative qubit count")
	}
	return &Circuit{NumQubits: n}
}

func (c *Circuit) check(qs ...int) {
	for _, q := range qs {
		if q < 0 || q >= c.NumQubits {
			panic(fmt.Sprintf("circuit: qubit %d out of range [0,%d)", q, c.NumQubits))
		}
	}
}

// H appends a Hadamard gate on q.
func (c *Circuit) H(q int) {
	c.check(q)
	c.Gates = append(c.Gates, Gate{Kind: H, Target: q})
}

// X appends a NOT gate on q.
func (c *Circuit) X(q int) {
	c.check(q)
	c.Gates = append(c.Gates, Gate{Kind: X, Target: q})
}

// Z appends a phase flip on q.
func (c *Circuit) Z(q int) {
	c.check(q)
	c.Gates = append(c.Gates, Gate{Kind: Z, Target: q})
}

// RY appends a Y rotation by theta on q.
func (c *Circuit) RY(theta float64, q int) {
	c.check(q)
	c.Gates = append(c.Gates, Gate{Kind: RY, Target: q, Theta: theta})
}

// CX appends a controlled NOT with the given control and target.
func (c *Circuit) CX(control, target int) {
	c.check(control, target)
	c.Gates = append(c.Gates, Gate{Kind: CX, Target: target, Controls: []int{control}})
}

// MCX appends a multi-controlled NOT. With no controls it degenerates to X,
// with one to CX.
func (c *Circuit) MCX(controls []int, target int) {
	c.check(append([]int{target}, controls...)...)
	switch len(controls) {
	case 0:
		c.X(target)
	case 1:
		c.CX(controls[0], target)
	default:
		cs := append([]int(nil), controls...)
		c.Gates = append(c.Gates, Gate{Kind: MCX, Target: target, Controls: cs})
	}
}

// MCZ appends a multi-controlled phase flip over the given qubits.
// At least one qubit is required; a single qubit degenerates to Z.
func (c *Circuit) MCZ(qubits []int) {
	if len(qubits) == 0 {
		panic("circuit: MCZ over no qubits")
	}
	c.check(qubits...)
	if len(qubits) == 1 {
		c.Z(qubits[0])
		return
	}
	cs := append([]int(nil), qubits[:len(qubits)-1]...)
	c.Gates = append(c.Gates, Gate{Kind: MCZ, Target: qubits[len(qubits)-1], Controls: cs})
}

// Measure records the measured qubits, in output bit order. It may be
// called once per circuit.
func (c *Circuit) Measure(qubits ...int) {
	if c.Measured != nil {
		panic("circuit: Measure called twice")
	}
	c.check(qubits...)
	c.Measured = append([]int(nil), qubits...)
}

// Append appends all gates of other to c. Both circuits must agree on the
// qubit count; measurements of other are ignored.
func (c *Circuit) Append(other *Circuit) {
	if other.NumQubits != c.NumQubits {
		panic(fmt.Sprintf("circuit: appending %d-qubit circuit to %d-qubit circuit",
			other.NumQubits, c.NumQubits))
	}
	c.Gates = append(c.Gates, other.Gates...)
}

// Inverse returns a new circuit applying the inverse unitary of c.
// All supported gates are self-inverse except RY, which negates its angle.
// Measurements are not carried over.
func (c *Circuit) Inverse() *Circuit {
	inv := New(c.NumQubits)
	for i := len(c.Gates) - 1; i >= 0; i-- {
		g := c.Gates[i]
		if g.Kind == RY {
			g.Theta = -g.Theta
		}
		inv.Gates = append(inv.Gates, g)
	}
	return inv
}
