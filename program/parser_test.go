package program

import (
	"errors"
	"strings"
	"testing"
)

func TestParseBasics(t *testing.T) {
	p, err := Parse(strings.NewReader(`
		% facts
		a.  b :- a,
		        not c.
		:- b, c.
	`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.NumAtoms() != 3 {
		t.Errorf("expected 3 atoms, got %d", p.NumAtoms())
	}
	if p.NumRules() != 3 {
		t.Errorf("expected 3 rules, got %d", p.NumRules())
	}
	if _, ok := p.Head(2); ok {
		t.Errorf("third rule must be a constraint")
	}
}

func TestParseRuleShapes(t *testing.T) {
	rules, err := ParseRules(strings.NewReader("x :- not y. y :- not x."))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []Rule{
		{Head: "x", Neg: []string{"y"}},
		{Head: "y", Neg: []string{"x"}},
	}
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
	for i := range want {
		if rules[i].String() != want[i].String() {
			t.Errorf("rule %d: expected %v, got %v", i, want[i], rules[i])
		}
	}
}

func TestParseUnsupportedConstructs(t *testing.T) {
	for _, src := range []string{
		"a | b :- c.",
		"a ; b.",
		"{a}.",
		"#show a/0.",
		"b :- #count{x} > 1.",
		"-a.",
		"b :- -a.",
		"p(X) :- q(X).",
	} {
		if _, err := Parse(strings.NewReader(src)); !errors.Is(err, ErrUnsupportedConstruct) {
			t.Errorf("%q: expected ErrUnsupportedConstruct, got %v", src, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, src := range []string{
		"a",          // unterminated
		"b :- not .", // not without atom
		"a b :- c.",  // not an identifier
	} {
		if _, err := Parse(strings.NewReader(src)); !errors.Is(err, ErrMalformedProgram) {
			t.Errorf("%q: expected ErrMalformedProgram, got %v", src, err)
		}
	}
}

func TestParseEmptyBodyConstraint(t *testing.T) {
	// ":- ." is always violated, so the program has no stable model.
	p, err := Parse(strings.NewReader("a. :- ."))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.NumRules() != 2 {
		t.Fatalf("expected 2 rules, got %d", p.NumRules())
	}
	if _, ok := p.Head(1); ok {
		t.Errorf("second rule must be a constraint")
	}
	models, err := p.AnswerSets()
	if err != nil {
		t.Fatalf("enumeration failed: %v", err)
	}
	if len(models) != 0 {
		t.Errorf("expected no stable models, got %v", models)
	}
}

func TestParseFactWithEmptyBody(t *testing.T) {
	p, err := Parse(strings.NewReader("a :- ."))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	models, err := p.AnswerSets()
	if err != nil {
		t.Fatalf("enumeration failed: %v", err)
	}
	if len(models) != 1 || !models[0][0] {
		t.Errorf("expected the single stable model {a}, got %v", models)
	}
}
