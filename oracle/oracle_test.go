package oracle

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/quasp/quasp/circuit"
	"github.com/quasp/quasp/encode"
	"github.com/quasp/quasp/gate"
	"github.com/quasp/quasp/program"
	"github.com/quasp/quasp/simul"
)

const eps = 1e-9

// checkPhaseOracle prepares every basis input, applies the oracle and
// checks the whole statevector: the amplitude must sit entirely on the
// input state with all ancillas back at |0>, negated exactly when the
// function marks the input. That covers both the marking condition and
// ancilla hygiene.
func checkPhaseOracle(t *testing.T, g *gate.Graph) {
	t.Helper()
	orc, ancillas, err := Synthesize(g, 0)
	if err != nil {
		t.Fatalf("synthesis failed: %v", err)
	}
	if orc.NumQubits != g.NumInputs()+ancillas {
		t.Fatalf("oracle spans %d qubits, expected %d inputs + %d ancillas",
			orc.NumQubits, g.NumInputs(), ancillas)
	}
	backend := simul.New(1)
	n := g.NumInputs()
	for mask := 0; mask < 1<<n; mask++ {
		x := make([]bool, n)
		c := circuit.New(orc.NumQubits)
		for q := 0; q < n; q++ {
			if mask&(1<<q) != 0 {
				x[q] = true
				c.X(q)
			}
		}
		c.Append(orc)
		state, err := backend.Run(context.Background(), c)
		if err != nil {
			t.Fatalf("simulation failed: %v", err)
		}
		want := 1.0
		if g.Eval(x) {
			want = -1.0
		}
		for idx, amp := range state {
			expected := 0.0
			if idx == mask {
				expected = want
			}
			if math.Abs(real(amp)-expected) > eps || math.Abs(imag(amp)) > eps {
				t.Fatalf("input %v: amplitude %v at state %d, expected %v",
					x, amp, idx, complex(expected, 0))
			}
		}
	}
}

func TestSynthesizeSingleVariable(t *testing.T) {
	b := gate.NewBuilder(1)
	checkPhaseOracle(t, b.Build(b.Input(0)))
}

func TestSynthesizeNot(t *testing.T) {
	b := gate.NewBuilder(1)
	checkPhaseOracle(t, b.Build(b.Not(b.Input(0))))
}

func TestSynthesizeAndOr(t *testing.T) {
	b := gate.NewBuilder(3)
	f := b.Or(b.And(b.Input(0), b.Input(1)), b.Not(b.Input(2)))
	checkPhaseOracle(t, b.Build(f))
}

func TestSynthesizeSharedSubgraph(t *testing.T) {
	b := gate.NewBuilder(2)
	shared := b.And(b.Input(0), b.Input(1))
	f := b.Or(shared, b.Not(shared))
	checkPhaseOracle(t, b.Build(f))
}

func TestSynthesizeEncodedPrograms(t *testing.T) {
	programs := [][]program.Rule{
		{{Head: "a"}, {Head: "b", Neg: []string{"a"}}},
		{{Head: "a", Neg: []string{"b"}}, {Head: "b", Neg: []string{"a"}}},
		{{Head: "a", Neg: []string{"a"}}},
		{{Head: "a", Pos: []string{"b"}}, {Head: "b", Pos: []string{"a"}}},
	}
	for _, rules := range programs {
		p, err := program.Build(rules)
		if err != nil {
			t.Fatalf("could not build program: %v", err)
		}
		g, err := encode.Encode(p)
		if err != nil {
			t.Fatalf("could not encode program: %v", err)
		}
		checkPhaseOracle(t, g)
	}
}

func TestSynthesizeAncillaBudget(t *testing.T) {
	b := gate.NewBuilder(4)
	f := b.And(b.Not(b.Input(0)), b.Not(b.Input(1)), b.Not(b.Input(2)), b.Not(b.Input(3)))
	g := b.Build(f)
	if g.Interior() != 5 {
		t.Fatalf("expected 5 interior nodes, got %d", g.Interior())
	}
	if _, _, err := Synthesize(g, 4); !errors.Is(err, ErrSynthesisResource) {
		t.Errorf("expected ErrSynthesisResource, got %v", err)
	}
	if _, ancillas, err := Synthesize(g, 5); err != nil || ancillas != 5 {
		t.Errorf("expected 5 ancillas within budget, got %d (%v)", ancillas, err)
	}
}

func TestSynthesizeRejectsConstants(t *testing.T) {
	b := gate.NewBuilder(0)
	if _, _, err := Synthesize(b.Build(b.Const(false)), 0); err == nil {
		t.Errorf("expected an error for a constant graph")
	}
}
