// Package program defines the in-memory model of a normal logic program:
// atoms, literals and rules, plus the classical stable-model test used to
// verify candidates sampled by the quantum search.
//
// A Program is built once from a list of rules and never mutated afterwards,
// so it can be shared freely across search rounds.
package program

import (
	"fmt"
	"sort"
	"strings"
)

// A Rule is one input rule "head :- body". An empty Head denotes a
// constraint. Pos and Neg hold the atom names of the positive and
// negation-as-failure body literals.
type Rule struct {
	Head string
	Pos  []string
	Neg  []string
}

// IsConstraint is true iff the rule has no head.
func (r Rule) IsConstraint() bool {
	return r.Head == ""
}

func (r Rule) String() string {
	var body []string
	for _, a := range r.Pos {
		body = append(body, a)
	}
	for _, a := range r.Neg {
		body = append(body, "not "+a)
	}
	if r.IsConstraint() {
		return ":- " + strings.Join(body, ", ") + "."
	}
	if len(body) == 0 {
		return r.Head + "."
	}
	return r.Head + " :- " + strings.Join(body, ", ") + "."
}

// A compiled rule: head atom (headless for constraints) and body literals.
type compiled struct {
	head    Atom
	hasHead bool
	body    []Lit
}

// A Program is the immutable model of a normal logic program. The atom
// universe is the union of all atoms appearing in any rule, enumerated in
// order of first appearance; that order fixes qubit positions and must be
// identical on the encode and decode sides.
type Program struct {
	names []string
	index map[string]Atom
	rules []compiled
}

// MaxEnumAtoms bounds classical brute-force enumeration (AnswerSets).
const MaxEnumAtoms = 24

// Build validates the given rules and constructs a Program.
// Every atom name must be non-empty; heads are plain atoms (negated heads
// cannot be expressed through Rule, and the parser rejects them upstream).
// It returns an error wrapping ErrMalformedProgram on violation.
func Build(rules []Rule) (*Program, error) {
	p := &Program{index: make(map[string]Atom)}
	for i, r := range rules {
		var c compiled
		if !r.IsConstraint() {
			if strings.TrimSpace(r.Head) == "" {
				return nil, fmt.Errorf("%w: rule %d: blank head", ErrMalformedProgram, i)
			}
			c.head = p.intern(r.Head)
			c.hasHead = true
		}
		for _, a := range r.Pos {
			if a == "" {
				return nil, fmt.Errorf("%w: rule %d: empty atom in positive body", ErrMalformedProgram, i)
			}
			c.body = append(c.body, Pos(p.intern(a)))
		}
		for _, a := range r.Neg {
			if a == "" {
				return nil, fmt.Errorf("%w: rule %d: empty atom in negative body", ErrMalformedProgram, i)
			}
			c.body = append(c.body, Neg(p.intern(a)))
		}
		p.rules = append(p.rules, c)
	}
	return p, nil
}

func (p *Program) intern(name string) Atom {
	if a, ok := p.index[name]; ok {
		return a
	}
	a := Atom(len(p.names))
	p.names = append(p.names, name)
	p.index[name] = a
	return a
}

// NumAtoms returns the size of the atom universe.
func (p *Program) NumAtoms() int {
	return len(p.names)
}

// AtomName returns the name of atom a.
func (p *Program) AtomName(a Atom) string {
	return p.names[a]
}

// AtomIndex returns the atom associated with name, if any.
func (p *Program) AtomIndex(name string) (Atom, bool) {
	a, ok := p.index[name]
	return a, ok
}

// NumRules returns the number of rules, constraints included.
func (p *Program) NumRules() int {
	return len(p.rules)
}

// Head returns the head atom of rule i and whether it has one
// (constraints do not).
func (p *Program) Head(i int) (Atom, bool) {
	return p.rules[i].head, p.rules[i].hasHead
}

// Body returns the body literals of rule i. The caller must not mutate it.
func (p *Program) Body(i int) []Lit {
	return p.rules[i].body
}

// BodySat is true iff every literal of rule i's body is satisfied by x.
func (p *Program) BodySat(i int, x Assignment) bool {
	for _, l := range p.rules[i].body {
		if !x.Sat(l) {
			return false
		}
	}
	return true
}

// IsStable is the Gelfond-Lifschitz stability test: x is stable iff no
// constraint body is satisfied by x and x equals the least model of the
// program's reduct under x's negative literals.
//
// This is the mandatory classical verifier for candidates sampled from the
// quantum backend: a measurement only raises the probability of hitting a
// stable model, it certifies nothing.
func (p *Program) IsStable(x Assignment) bool {
	if len(x) != len(p.names) {
		panic(fmt.Sprintf("assignment has %d atoms, program has %d", len(x), len(p.names)))
	}
	for i, r := range p.rules {
		if !r.hasHead && p.BodySat(i, x) {
			return false
		}
	}
	lm := p.leastReductModel(x)
	for a := range x {
		if x[a] != lm[a] {
			return false
		}
	}
	return true
}

// leastReductModel computes the least model of the reduct of p under x by
// fixpoint iteration over the rules whose negative body x satisfies.
func (p *Program) leastReductModel(x Assignment) Assignment {
	lm := make(Assignment, len(p.names))
	for changed := true; changed; {
		changed = false
		for _, r := range p.rules {
			if !r.hasHead || lm[r.head] {
				continue
			}
			fires := true
			for _, l := range r.body {
				if l.Negated() {
					if x[l.Atom()] {
						fires = false
						break
					}
				} else if !lm[l.Atom()] {
					fires = false
					break
				}
			}
			if fires {
				lm[r.head] = true
				changed = true
			}
		}
	}
	return lm
}

// AnswerSets enumerates all stable models of p by brute force over the 2^n
// assignments. It is the classical ground truth used by tests and by the
// "enumerate" command; it fails with ErrTooManyAtoms past MaxEnumAtoms.
func (p *Program) AnswerSets() ([]Assignment, error) {
	n := len(p.names)
	if n > MaxEnumAtoms {
		return nil, fmt.Errorf("%w: %d atoms, max %d", ErrTooManyAtoms, n, MaxEnumAtoms)
	}
	var models []Assignment
	for mask := uint32(0); mask < 1<<n; mask++ {
		x := make(Assignment, n)
		for a := 0; a < n; a++ {
			x[a] = mask&(1<<a) != 0
		}
		if p.IsStable(x) {
			models = append(models, x)
		}
	}
	return models, nil
}

// TrueAtoms returns the names of the atoms true in x, sorted.
func (p *Program) TrueAtoms(x Assignment) []string {
	var names []string
	for a, v := range x {
		if v {
			names = append(names, p.names[a])
		}
	}
	sort.Strings(names)
	return names
}
