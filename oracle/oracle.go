// Package oracle compiles a boolean gate graph into a reversible phase
// oracle: a unitary that maps |x⟩|0...0⟩ to (-1)^f(x) |x⟩|0...0⟩ over the
// input register and a bank of ancilla qubits.
//
// Every interior node of the graph is computed into a dedicated ancilla
// with reversible gates (AND as a multi-controlled NOT, OR through
// De Morgan, NOT as CX followed by X), the phase flip is applied on the
// root's wire, and the whole computation is then undone gate by gate. The
// uncompute pass is what restores every ancilla to |0⟩ for every input;
// leaked data-ancilla entanglement would corrupt the interference that
// amplitude amplification relies on.
package oracle

import (
	"errors"
	"fmt"

	"github.com/quasp/quasp/circuit"
	"github.com/quasp/quasp/gate"
)

// ErrSynthesisResource indicates the oracle needs more ancilla qubits than
// the configured budget allows. Surfaced before any backend call is made.
var ErrSynthesisResource = errors.New("oracle exceeds ancilla budget")

// DefaultAncillaBudget is the default cap on ancilla qubits.
const DefaultAncillaBudget = 64

// Synthesize compiles g into a phase oracle over g.NumInputs() input qubits
// (input bit i on qubit i) followed by one ancilla per interior node. It
// returns the oracle fragment (no measurements) and the ancilla count.
//
// Constant graphs cannot be synthesized: a constant-false marking function
// must short-circuit to an UNSAT report upstream, and a constant-true one
// needs no search at all.
func Synthesize(g *gate.Graph, ancillaBudget int) (*circuit.Circuit, int, error) {
	if ancillaBudget <= 0 {
		ancillaBudget = DefaultAncillaBudget
	}
	root := g.Node(g.Root())
	if root.Op == gate.Const {
		return nil, 0, fmt.Errorf("oracle: cannot synthesize a constant marking function")
	}
	ancillas := g.Interior()
	if ancillas > ancillaBudget {
		return nil, 0, fmt.Errorf("%w: %d ancillas needed, budget %d",
			ErrSynthesisResource, ancillas, ancillaBudget)
	}

	n := g.NumInputs()
	c := circuit.New(n + ancillas)

	// wire[id] is the qubit carrying the value of node id.
	wire := make([]int, g.NumNodes())
	next := n
	compute := circuit.New(c.NumQubits)
	for id := 0; id < g.NumNodes(); id++ {
		node := g.Node(id)
		switch node.Op {
		case gate.Const:
			return nil, 0, fmt.Errorf("oracle: constant node %d inside non-constant graph", id)
		case gate.Input:
			wire[id] = node.Bit
			continue
		}
		anc := next
		next++
		wire[id] = anc
		ins := make([]int, len(node.In))
		for i, in := range node.In {
			ins[i] = wire[in]
		}
		switch node.Op {
		case gate.Not:
			compute.CX(ins[0], anc)
			compute.X(anc)
		case gate.And:
			compute.MCX(ins, anc)
		case gate.Or:
			// De Morgan: anc = not(and(not inputs)).
			for _, q := range ins {
				compute.X(q)
			}
			compute.MCX(ins, anc)
			compute.X(anc)
			for _, q := range ins {
				compute.X(q)
			}
		}
	}

	c.Append(compute)
	c.Z(wire[g.Root()])
	c.Append(compute.Inverse())
	return c, ancillas, nil
}
