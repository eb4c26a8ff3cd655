package program

// Basic types shared by the whole pipeline.

// An Atom is the index of a propositional symbol in a Program's universe.
// Indices are assigned in order of first appearance and are stable for the
// lifetime of the Program; atom i is measured on qubit i.
type Atom int32

// A Lit is a literal over an Atom; the negation flag lives in the low bit.
// Thus the positive literal over atom 3 is encoded as 6, its negation as 7.
type Lit int32

// Pos returns the positive literal over a.
func Pos(a Atom) Lit {
	return Lit(a * 2)
}

// Neg returns the negation-as-failure literal over a.
func Neg(a Atom) Lit {
	return Lit(a*2) + 1
}

// Atom returns the atom of l.
func (l Lit) Atom() Atom {
	return Atom(l / 2)
}

// Negated is true iff l is a negation-as-failure literal.
func (l Lit) Negated() bool {
	return l&1 == 1
}

// An Assignment is a total truth assignment over a Program's universe,
// indexed by Atom. Assignments are ephemeral: one is produced per decoded
// measurement and discarded after verification.
type Assignment []bool

// Sat is true iff the literal l is satisfied by the assignment.
func (x Assignment) Sat(l Lit) bool {
	if l.Negated() {
		return !x[l.Atom()]
	}
	return x[l.Atom()]
}

// Clone returns an independent copy of the assignment.
func (x Assignment) Clone() Assignment {
	cp := make(Assignment, len(x))
	copy(cp, x)
	return cp
}
