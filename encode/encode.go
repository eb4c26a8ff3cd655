// Package encode translates a normal logic program into a boolean marking
// function whose satisfying assignments are exactly the program's stable
// models.
//
// The translation is the Lin-Zhao SAT encoding: the Clark completion of the
// program (each atom is equivalent to the disjunction of its rule bodies)
// conjoined with a loop formula for every loop of the positive dependency
// graph. Completion alone admits non-minimal models on positive cycles; the
// loop formulas close that gap, so the marking function is exact.
package encode

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/quasp/quasp/gate"
	"github.com/quasp/quasp/program"
)

// ErrProgramTooLarge indicates a strongly connected component of the
// positive dependency graph is too big for exhaustive loop enumeration.
var ErrProgramTooLarge = errors.New("program too large for loop enumeration")

// MaxLoopAtoms bounds the size of a single strongly connected component:
// loop formulas are emitted for every strongly connected subset, so the
// enumeration is exponential in the component size.
const MaxLoopAtoms = 16

// Encode builds the marking function of p as a gate graph over one input
// bit per atom, input bit i carrying atom i.
//
// The empty program yields the constant-true function over zero inputs
// (the empty assignment is its unique stable model). A program with a
// derivable contradiction, such as a constraint with an empty body, folds to
// the constant-false function; callers must detect that case with
// IsConstFalse and report UNSAT without synthesizing a circuit.
func Encode(p *program.Program) (*gate.Graph, error) {
	n := p.NumAtoms()
	b := gate.NewBuilder(n)

	// One gate node per rule body; conjunction of its literals.
	bodyNode := make([]int, p.NumRules())
	bodies := make(map[program.Atom][]int) // rule bodies per head atom
	var conjuncts []int
	for i := 0; i < p.NumRules(); i++ {
		lits := make([]int, 0, len(p.Body(i)))
		for _, l := range p.Body(i) {
			in := b.Input(int(l.Atom()))
			if l.Negated() {
				in = b.Not(in)
			}
			lits = append(lits, in)
		}
		bodyNode[i] = b.And(lits...)
		if head, ok := p.Head(i); ok {
			bodies[head] = append(bodies[head], bodyNode[i])
		} else {
			// Constraint: its body must be false.
			conjuncts = append(conjuncts, b.Not(bodyNode[i]))
		}
	}

	// Clark completion: each atom is equivalent to the disjunction of its
	// rule bodies. Atoms with no rules are forced false (empty disjunction).
	for a := program.Atom(0); a < program.Atom(n); a++ {
		conjuncts = append(conjuncts, b.Equiv(b.Input(int(a)), b.Or(bodies[a]...)))
	}

	lf, err := loopFormulas(p, b, bodyNode)
	if err != nil {
		return nil, err
	}
	conjuncts = append(conjuncts, lf...)

	return b.Build(b.And(conjuncts...)), nil
}

// loopFormulas emits, for every loop L of the positive dependency graph,
// the formula Or(L) -> Or(external supports of L). A loop is a set of atoms
// whose induced positive subgraph is strongly connected (including
// singletons with a self-edge); an external support is a rule with head in L
// whose positive body does not touch L.
func loopFormulas(p *program.Program, b *gate.Builder, bodyNode []int) ([]int, error) {
	dep := positiveDeps(p)
	var formulas []int
	for _, scc := range tarjanSCCs(dep) {
		if !hasCycle(dep, scc) {
			continue
		}
		if len(scc) > MaxLoopAtoms {
			return nil, fmt.Errorf("%w: dependency component has %d atoms, max %d",
				ErrProgramTooLarge, len(scc), MaxLoopAtoms)
		}
		for mask := uint32(1); mask < 1<<len(scc); mask++ {
			loop := subset(scc, mask)
			if !stronglyConnected(dep, loop) {
				continue
			}
			formulas = append(formulas, loopFormula(p, b, bodyNode, loop))
		}
	}
	return formulas, nil
}

func loopFormula(p *program.Program, b *gate.Builder, bodyNode []int, loop []program.Atom) int {
	inLoop := make(map[program.Atom]bool, len(loop))
	for _, a := range loop {
		inLoop[a] = true
	}
	var external []int
	for i := 0; i < p.NumRules(); i++ {
		head, ok := p.Head(i)
		if !ok || !inLoop[head] {
			continue
		}
		supports := true
		for _, l := range p.Body(i) {
			if !l.Negated() && inLoop[l.Atom()] {
				supports = false
				break
			}
		}
		if supports {
			external = append(external, bodyNode[i])
		}
	}
	atoms := make([]int, len(loop))
	for i, a := range loop {
		atoms[i] = b.Input(int(a))
	}
	return b.Implies(b.Or(atoms...), b.Or(external...))
}

// positiveDeps builds the positive dependency graph: an edge from the head
// of each rule to every atom of its positive body.
func positiveDeps(p *program.Program) [][]program.Atom {
	adj := make([][]program.Atom, p.NumAtoms())
	type edge struct{ from, to program.Atom }
	seen := make(map[edge]bool)
	for i := 0; i < p.NumRules(); i++ {
		head, ok := p.Head(i)
		if !ok {
			continue
		}
		for _, l := range p.Body(i) {
			if l.Negated() {
				continue
			}
			e := edge{head, l.Atom()}
			if !seen[e] {
				seen[e] = true
				adj[head] = append(adj[head], l.Atom())
			}
		}
	}
	return adj
}

// hasCycle reports whether the component contains any positive cycle: more
// than one atom, or a single atom depending on itself.
func hasCycle(adj [][]program.Atom, scc []program.Atom) bool {
	if len(scc) > 1 {
		return true
	}
	a := scc[0]
	for _, to := range adj[a] {
		if to == a {
			return true
		}
	}
	return false
}

func subset(scc []program.Atom, mask uint32) []program.Atom {
	loop := make([]program.Atom, 0, bits.OnesCount32(mask))
	for i, a := range scc {
		if mask&(1<<i) != 0 {
			loop = append(loop, a)
		}
	}
	return loop
}

// stronglyConnected reports whether the subgraph induced by the given atoms
// is strongly connected. Singletons count only with a self-edge.
func stronglyConnected(adj [][]program.Atom, atoms []program.Atom) bool {
	in := make(map[program.Atom]bool, len(atoms))
	for _, a := range atoms {
		in[a] = true
	}
	fwd := make(map[program.Atom][]program.Atom, len(atoms))
	bwd := make(map[program.Atom][]program.Atom, len(atoms))
	for _, a := range atoms {
		for _, to := range adj[a] {
			if in[to] {
				fwd[a] = append(fwd[a], to)
				bwd[to] = append(bwd[to], a)
			}
		}
	}
	if len(atoms) == 1 {
		return len(fwd[atoms[0]]) > 0 // only possible induced edge is the self-edge
	}
	reach := func(edges map[program.Atom][]program.Atom) int {
		visited := map[program.Atom]bool{atoms[0]: true}
		stack := []program.Atom{atoms[0]}
		for len(stack) > 0 {
			a := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, to := range edges[a] {
				if !visited[to] {
					visited[to] = true
					stack = append(stack, to)
				}
			}
		}
		return len(visited)
	}
	return reach(fwd) == len(atoms) && reach(bwd) == len(atoms)
}
