package program

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func mustBuild(t *testing.T, rules []Rule) *Program {
	t.Helper()
	p, err := Build(rules)
	if err != nil {
		t.Fatalf("could not build program: %v", err)
	}
	return p
}

func asg(bits ...bool) Assignment {
	return Assignment(bits)
}

func TestLitEncoding(t *testing.T) {
	for a := Atom(0); a < 5; a++ {
		if Pos(a).Atom() != a || Pos(a).Negated() {
			t.Errorf("bad positive literal for atom %d: %d", a, Pos(a))
		}
		if Neg(a).Atom() != a || !Neg(a).Negated() {
			t.Errorf("bad negative literal for atom %d: %d", a, Neg(a))
		}
	}
}

func TestBuildRejectsEmptyAtoms(t *testing.T) {
	for _, rules := range [][]Rule{
		{{Head: "  "}},
		{{Head: "a", Pos: []string{""}}},
		{{Head: "a", Neg: []string{""}}},
	} {
		if _, err := Build(rules); !errors.Is(err, ErrMalformedProgram) {
			t.Errorf("rules %v: expected ErrMalformedProgram, got %v", rules, err)
		}
	}
}

func TestAtomOrderIsFirstAppearance(t *testing.T) {
	p := mustBuild(t, []Rule{
		{Head: "b", Neg: []string{"a"}},
		{Head: "a"},
		{Head: "c", Pos: []string{"b"}},
	})
	want := []string{"b", "a", "c"}
	for i, name := range want {
		if got := p.AtomName(Atom(i)); got != name {
			t.Errorf("atom %d: expected %q, got %q", i, name, got)
		}
	}
	if p.NumAtoms() != len(want) {
		t.Errorf("expected %d atoms, got %d", len(want), p.NumAtoms())
	}
}

func TestIsStableFactAndNegation(t *testing.T) {
	// a.  b :- not a.
	p := mustBuild(t, []Rule{
		{Head: "a"},
		{Head: "b", Neg: []string{"a"}},
	})
	tests := []struct {
		x      Assignment
		stable bool
	}{
		{asg(false, false), false},
		{asg(true, false), true},
		{asg(false, true), false},
		{asg(true, true), false},
	}
	for _, tt := range tests {
		if got := p.IsStable(tt.x); got != tt.stable {
			t.Errorf("IsStable(%v): expected %t, got %t", tt.x, tt.stable, got)
		}
	}
}

func TestIsStableOddLoop(t *testing.T) {
	// a :- not a.
	p := mustBuild(t, []Rule{{Head: "a", Neg: []string{"a"}}})
	if p.IsStable(asg(false)) || p.IsStable(asg(true)) {
		t.Errorf("odd loop must have no stable model")
	}
}

func TestIsStablePositiveLoop(t *testing.T) {
	// a :- b.  b :- a.  Unsupported loop: only the empty model is stable.
	p := mustBuild(t, []Rule{
		{Head: "a", Pos: []string{"b"}},
		{Head: "b", Pos: []string{"a"}},
	})
	if !p.IsStable(asg(false, false)) {
		t.Errorf("empty assignment must be stable")
	}
	if p.IsStable(asg(true, true)) {
		t.Errorf("unsupported loop {a,b} must not be stable")
	}
}

func TestIsStableConstraint(t *testing.T) {
	// a :- not b.  b :- not a.  :- a.
	p := mustBuild(t, []Rule{
		{Head: "a", Neg: []string{"b"}},
		{Head: "b", Neg: []string{"a"}},
		{Pos: []string{"a"}},
	})
	models, err := p.AnswerSets()
	if err != nil {
		t.Fatalf("enumeration failed: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected exactly one stable model, got %d", len(models))
	}
	if got := p.TrueAtoms(models[0]); len(got) != 1 || got[0] != "b" {
		t.Errorf("expected stable model {b}, got %v", got)
	}
}

func TestAnswerSetsEmptyProgram(t *testing.T) {
	p := mustBuild(t, nil)
	models, err := p.AnswerSets()
	if err != nil {
		t.Fatalf("enumeration failed: %v", err)
	}
	if len(models) != 1 || len(models[0]) != 0 {
		t.Errorf("empty program must have exactly the empty stable model, got %v", models)
	}
}

func TestAnswerSetsEvenLoop(t *testing.T) {
	// a :- not b.  b :- not a.  Two stable models: {a} and {b}.
	p := mustBuild(t, []Rule{
		{Head: "a", Neg: []string{"b"}},
		{Head: "b", Neg: []string{"a"}},
	})
	models, err := p.AnswerSets()
	if err != nil {
		t.Fatalf("enumeration failed: %v", err)
	}
	if len(models) != 2 {
		t.Errorf("expected 2 stable models, got %d", len(models))
	}
}

func TestRuleString(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{Head: "a"}, "a."},
		{Rule{Head: "b", Pos: []string{"a"}, Neg: []string{"c"}}, "b :- a, not c."},
		{Rule{Pos: []string{"a", "b"}}, ":- a, b."},
	}
	for _, tt := range tests {
		if got := tt.rule.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func ExampleProgram_AnswerSets() {
	p, _ := Parse(strings.NewReader(`
		a.
		b :- not a.
	`))
	models, _ := p.AnswerSets()
	for _, x := range models {
		fmt.Printf("{%s}\n", strings.Join(p.TrueAtoms(x), ", "))
	}
	// Output: {a}
}
