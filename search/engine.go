// Package search drives the amplitude-amplification search for a stable
// model: it combines the synthesized phase oracle with a diffusion operator
// and escalates the Grover iteration count with the
// Boyer-Brassard-Hoyer-Tapp strategy, since the number of stable models is
// unknown before one is found.
//
// Every measured candidate is re-verified classically against the program's
// stable-model condition: a Grover hit only raises the probability of
// sampling a marked state, it certifies nothing.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/quasp/quasp/circuit"
	"github.com/quasp/quasp/encode"
	"github.com/quasp/quasp/oracle"
	"github.com/quasp/quasp/program"
)

// An Engine owns one program's search pipeline: the marking function, the
// synthesized oracle and the round control loop. The control loop is
// strictly sequential; the oracle circuit and the program are read-only and
// shared across rounds.
type Engine struct {
	prog    *program.Program
	backend circuit.Backend
	opts    Options
	log     *slog.Logger

	orc        *circuit.Circuit // phase oracle fragment; nil for constant functions
	ancillas   int
	constFalse bool
	constTrue  bool

	rng *rand.Rand
}

// New encodes the program, synthesizes its oracle and returns an engine
// ready to run. Encoding and synthesis errors (unsupported constructs,
// ancilla budget) surface here, before any backend call.
func New(p *program.Program, backend circuit.Backend, opts Options) (*Engine, error) {
	opts, err := opts.withDefaults(p.NumAtoms())
	if err != nil {
		return nil, err
	}
	e := &Engine{
		prog:    p,
		backend: backend,
		opts:    opts,
		log:     opts.Logger,
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}
	g, err := encode.Encode(p)
	if err != nil {
		return nil, err
	}
	switch {
	case g.IsConstFalse():
		e.constFalse = true
	case g.IsConstTrue():
		e.constTrue = true
	default:
		orc, ancillas, err := oracle.Synthesize(g, opts.AncillaBudget)
		if err != nil {
			return nil, err
		}
		e.orc = orc
		e.ancillas = ancillas
	}
	return e, nil
}

// Ancillas returns the oracle's ancilla qubit count.
func (e *Engine) Ancillas() int {
	return e.ancillas
}

// Run searches for one stable model with BBHT escalation. It returns a
// Result for every terminal outcome, including exhaustion and encode-time
// unsatisfiability; the error return is reserved for persistent backend
// failure and cancellation.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	n := e.prog.NumAtoms()
	res := e.newResult(n)
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()
	e.log.Debug("search starting", "run", res.RunID, "phase", phaseInit.String(),
		"atoms", n, "ancillas", e.ancillas, "budget", res.Budget, "seed", e.opts.Seed)

	if done := e.degenerate(res); done {
		return res, nil
	}

	var (
		m          = 1.0
		sqrtSpace  = math.Sqrt(math.Pow(2, float64(n)))
		cumulative = 0
		consecFail = 0
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Rounds++
		if e.opts.MaxRounds > 0 && res.Rounds > e.opts.MaxRounds {
			res.Rounds--
			e.exhaust(res)
			return res, nil
		}
		j := 1 + e.rng.Intn(int(math.Ceil(m)))
		e.log.Debug("round", "run", res.RunID, "phase", phaseEscalate.String(),
			"round", res.Rounds, "m", m, "j", j)

		// A plain uniform sample first, as in BBHT: it keeps the round
		// effective when marked states dominate the space and amplification
		// cannot help.
		found, err := e.shootAndVerify(ctx, e.uniformCircuit(), res)
		if err != nil {
			consecFail++
			if abort := e.backendFailure(res, consecFail, err); abort != nil {
				return nil, abort
			}
		} else {
			consecFail = 0
			if found {
				return res, nil
			}
		}

		cumulative += j
		res.Iterations = cumulative
		found, err = e.shootAndVerify(ctx, e.groverCircuit(j), res)
		if err != nil {
			consecFail++
			if abort := e.backendFailure(res, consecFail, err); abort != nil {
				return nil, abort
			}
		} else {
			consecFail = 0
			if found {
				return res, nil
			}
		}

		m = math.Min(m*e.opts.Lambda, sqrtSpace)
		if cumulative > res.Budget {
			e.exhaust(res)
			return res, nil
		}
	}
}

// RunKnownCount searches with the optimal fixed iteration count for a known
// number of stable models instead of BBHT escalation. Rounds repeat, within
// the same budgets as Run, until a sample verifies.
func (e *Engine) RunKnownCount(ctx context.Context, count int) (*Result, error) {
	if count < 1 {
		return nil, fmt.Errorf("search: known solution count %d must be positive", count)
	}
	n := e.prog.NumAtoms()
	res := e.newResult(n)
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	if done := e.degenerate(res); done {
		return res, nil
	}
	iters := OptimalIterations(n, count)
	e.log.Debug("search starting", "run", res.RunID, "phase", phaseInit.String(),
		"atoms", n, "known_count", count, "iterations", iters)

	circ := e.groverCircuit(iters)
	// A zero-iteration circuit still costs a round; charge at least one
	// unit so the budget bounds the run even when iters is 0.
	cost := iters
	if cost == 0 {
		cost = 1
	}
	cumulative, consecFail := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Rounds++
		if e.opts.MaxRounds > 0 && res.Rounds > e.opts.MaxRounds {
			res.Rounds--
			e.exhaust(res)
			return res, nil
		}
		cumulative += cost
		res.Iterations = cumulative
		found, err := e.shootAndVerify(ctx, circ, res)
		if err != nil {
			consecFail++
			if abort := e.backendFailure(res, consecFail, err); abort != nil {
				return nil, abort
			}
		} else {
			consecFail = 0
			if found {
				return res, nil
			}
		}
		if cumulative > res.Budget {
			e.exhaust(res)
			return res, nil
		}
	}
}

// OptimalIterations returns the Grover iteration count maximizing the
// success probability when m of the 2^n basis states are marked.
func OptimalIterations(n, m int) int {
	amplitude := math.Sqrt(float64(m) / math.Pow(2, float64(n)))
	if amplitude >= 1 {
		return 0
	}
	return int(math.Round(math.Acos(amplitude) / (2 * math.Asin(amplitude))))
}

func (e *Engine) newResult(n int) *Result {
	return &Result{
		RunID:    uuid.NewString(),
		Ancillas: e.ancillas,
		Budget:   int(math.Ceil(math.Pi/4*math.Sqrt(math.Pow(2, float64(n))))) * e.opts.SafetyFactor,
	}
}

// degenerate settles the runs that need no backend at all: encode-time
// unsatisfiability and constant-true marking functions (including the empty
// program, whose unique stable model is the empty assignment).
func (e *Engine) degenerate(res *Result) bool {
	switch {
	case e.constFalse:
		e.log.Info("marking function is constant false, reporting UNSAT",
			"run", res.RunID, "phase", phaseExhausted.String())
		res.Status = StatusUnsatisfiable
		return true
	case e.constTrue:
		x := make(program.Assignment, e.prog.NumAtoms())
		if !e.prog.IsStable(x) {
			panic("search: constant-true marking function rejected by the classical verifier")
		}
		e.succeed(res, x)
		return true
	}
	return false
}

// shootAndVerify dispatches one shot of the circuit, decodes the atom
// register and classically verifies the candidate, filling res on success.
func (e *Engine) shootAndVerify(ctx context.Context, circ *circuit.Circuit, res *Result) (bool, error) {
	rctx, cancel := context.WithTimeout(ctx, e.opts.RoundTimeout)
	defer cancel()
	e.log.Debug("dispatching circuit", "run", res.RunID, "phase", phaseRun.String(),
		"qubits", circ.NumQubits, "gates", len(circ.Gates))
	shots, err := e.backend.Execute(rctx, circ, 1)
	if err != nil {
		if !errors.Is(err, circuit.ErrBackendExecution) {
			err = fmt.Errorf("%w: %v", circuit.ErrBackendExecution, err)
		}
		return false, err
	}
	if len(shots) != 1 {
		return false, fmt.Errorf("%w: expected 1 shot, got %d", circuit.ErrBackendExecution, len(shots))
	}
	x := e.decode(shots[0])
	stable := e.prog.IsStable(x)
	e.log.Debug("verified candidate", "run", res.RunID, "phase", phaseVerify.String(),
		"candidate", shots[0].String(), "stable", stable)
	if stable {
		e.succeed(res, x)
	}
	return stable, nil
}

// decode maps one measurement shot back to an assignment via the program's
// stable atom order: measured bit i carries atom i.
func (e *Engine) decode(bits circuit.Bits) program.Assignment {
	x := make(program.Assignment, e.prog.NumAtoms())
	copy(x, bits)
	return x
}

func (e *Engine) succeed(res *Result, x program.Assignment) {
	res.Status = StatusFound
	res.Assignment = x
	res.Model = e.prog.TrueAtoms(x)
	e.log.Info("stable model found", "run", res.RunID, "phase", phaseSuccess.String(),
		"model", res.Model, "rounds", res.Rounds)
}

func (e *Engine) exhaust(res *Result) {
	res.Status = StatusExhausted
	e.log.Info("search budget exhausted", "run", res.RunID, "phase", phaseExhausted.String(),
		"rounds", res.Rounds, "iterations", res.Iterations, "budget", res.Budget)
}

// backendFailure logs a failed round and decides whether to abort. The
// round still counts toward the budget; transient backend flakiness must
// not kill the run.
func (e *Engine) backendFailure(res *Result, consecFail int, err error) error {
	e.log.Warn("backend call failed", "run", res.RunID, "round", res.Rounds,
		"consecutive_failures", consecFail, "err", err)
	if consecFail > e.opts.RetryCap {
		return fmt.Errorf("search: %d consecutive backend failures: %w", consecFail, err)
	}
	return nil
}
