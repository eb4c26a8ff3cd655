package search

import (
	"time"

	"github.com/quasp/quasp/program"
)

// Status is the terminal outcome of a search run.
type Status byte

const (
	// StatusFound means a verified stable model was returned.
	StatusFound = Status(iota)
	// StatusUnsatisfiable means the program provably has no stable model:
	// the marking function folded to constant false at encode time, before
	// any circuit was built.
	StatusUnsatisfiable
	// StatusExhausted means no stable model was found within the search
	// budget. The search is probabilistic, so this is not a proof of
	// absence.
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "FOUND"
	case StatusUnsatisfiable:
		return "UNSAT"
	case StatusExhausted:
		return "EXHAUSTED"
	default:
		panic("invalid status")
	}
}

// A Result is the structured outcome of a run. Exhaustion is a legitimate
// result, not an error.
type Result struct {
	Status Status

	// Model holds the names of the true atoms of the stable model, sorted;
	// nil unless Status is StatusFound.
	Model []string
	// Assignment is the full verified assignment; nil unless found.
	Assignment program.Assignment

	// Rounds is the number of search rounds attempted.
	Rounds int
	// Iterations is the cumulative number of Grover iterations dispatched.
	Iterations int
	// Budget is the iteration cap the run operated under.
	Budget int
	// Ancillas is the oracle's ancilla qubit count (0 when no circuit was
	// synthesized).
	Ancillas int

	// RunID identifies the run in logs.
	RunID string
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// The engine's control-loop phases, logged at debug level.
type phase byte

const (
	phaseInit = phase(iota)
	phaseEscalate
	phaseRun
	phaseVerify
	phaseSuccess
	phaseExhausted
)

func (p phase) String() string {
	switch p {
	case phaseInit:
		return "init"
	case phaseEscalate:
		return "escalate"
	case phaseRun:
		return "run"
	case phaseVerify:
		return "verify"
	case phaseSuccess:
		return "success"
	case phaseExhausted:
		return "exhausted"
	default:
		panic("invalid phase")
	}
}
