// Package gate represents boolean functions as gate graphs: directed acyclic
// graphs of AND/OR/NOT nodes over input bits. The stable-model encoder emits
// a Graph and the oracle synthesizer walks it, allocating one ancilla qubit
// per interior node.
//
// A Graph is built through a Builder, which folds constants, flattens nested
// conjunctions and disjunctions, and deduplicates structurally identical
// nodes so that equal subformulas share a single ancilla.
package gate

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is the kind of a node.
type Op byte

const (
	// Const is a constant node; its value is Node.Val.
	Const = Op(iota)
	// Input reads input bit Node.Bit.
	Input
	// Not negates its single operand.
	Not
	// And is the conjunction of its operands.
	And
	// Or is the disjunction of its operands.
	Or
)

func (op Op) String() string {
	switch op {
	case Const:
		return "const"
	case Input:
		return "input"
	case Not:
		return "not"
	case And:
		return "and"
	case Or:
		return "or"
	default:
		panic("invalid op")
	}
}

// A Node is one gate of the graph. Operand identifiers in In always refer to
// earlier nodes, so iterating nodes in identifier order is a topological
// traversal.
type Node struct {
	Op  Op
	In  []int
	Bit int  // Input only
	Val bool // Const only
}

// A Graph is an immutable boolean function over NumInputs bits, rooted at
// Root. Interior nodes (Not/And/Or) each map to one ancilla qubit during
// synthesis.
type Graph struct {
	nodes  []Node
	root   int
	inputs int
}

// NumInputs returns the number of input bits of the function.
func (g *Graph) NumInputs() int {
	return g.inputs
}

// NumNodes returns the total node count.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Node returns node id. The caller must not mutate the operand slice.
func (g *Graph) Node(id int) Node {
	return g.nodes[id]
}

// Root returns the root node id.
func (g *Graph) Root() int {
	return g.root
}

// Interior returns the number of Not/And/Or nodes, i.e. the ancilla count a
// straightforward synthesis of g requires.
func (g *Graph) Interior() int {
	count := 0
	for _, n := range g.nodes {
		switch n.Op {
		case Not, And, Or:
			count++
		}
	}
	return count
}

// IsConstFalse is true iff the function is constantly false. The search
// engine must check this before synthesis: a function with no marked inputs
// short-circuits straight to the UNSAT report.
func (g *Graph) IsConstFalse() bool {
	n := g.nodes[g.root]
	return n.Op == Const && !n.Val
}

// IsConstTrue is true iff the function is constantly true.
func (g *Graph) IsConstTrue() bool {
	n := g.nodes[g.root]
	return n.Op == Const && n.Val
}

// Eval evaluates the function on the given input bits.
func (g *Graph) Eval(x []bool) bool {
	if len(x) != g.inputs {
		panic(fmt.Sprintf("gate: Eval on %d bits, graph has %d inputs", len(x), g.inputs))
	}
	vals := make([]bool, len(g.nodes))
	for id, n := range g.nodes {
		switch n.Op {
		case Const:
			vals[id] = n.Val
		case Input:
			vals[id] = x[n.Bit]
		case Not:
			vals[id] = !vals[n.In[0]]
		case And:
			v := true
			for _, in := range n.In {
				v = v && vals[in]
			}
			vals[id] = v
		case Or:
			v := false
			for _, in := range n.In {
				v = v || vals[in]
			}
			vals[id] = v
		}
	}
	return vals[g.root]
}

// String renders the function rooted at Root, bf-style:
// and(x0, or(not(x1), x2)).
func (g *Graph) String() string {
	return g.render(g.root)
}

func (g *Graph) render(id int) string {
	n := g.nodes[id]
	switch n.Op {
	case Const:
		if n.Val {
			return "⊤"
		}
		return "⊥"
	case Input:
		return "x" + strconv.Itoa(n.Bit)
	case Not:
		return "not(" + g.render(n.In[0]) + ")"
	case And, Or:
		subs := make([]string, len(n.In))
		for i, in := range n.In {
			subs[i] = g.render(in)
		}
		return n.Op.String() + "(" + strings.Join(subs, ", ") + ")"
	default:
		panic("invalid op")
	}
}
