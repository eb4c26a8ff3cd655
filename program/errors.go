package program

import "errors"

// Sentinel errors for the program package.
var (
	// ErrMalformedProgram indicates invalid input rules (empty atom names,
	// negated heads and the like). Fatal, no retry.
	ErrMalformedProgram = errors.New("malformed program")

	// ErrUnsupportedConstruct indicates the input uses an ASP feature
	// outside normal logic programs (disjunction, choice, aggregates).
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrTooManyAtoms indicates the universe is too large for classical
	// brute-force enumeration.
	ErrTooManyAtoms = errors.New("too many atoms to enumerate")
)
