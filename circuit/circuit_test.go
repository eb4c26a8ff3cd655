package circuit

import (
	"math"
	"testing"
)

func TestMCXDegenerates(t *testing.T) {
	c := New(3)
	c.MCX(nil, 0)
	c.MCX([]int{1}, 0)
	c.MCX([]int{1, 2}, 0)
	kinds := []Kind{X, CX, MCX}
	if len(c.Gates) != len(kinds) {
		t.Fatalf("expected %d gates, got %d", len(kinds), len(c.Gates))
	}
	for i, k := range kinds {
		if c.Gates[i].Kind != k {
			t.Errorf("gate %d: expected %v, got %v", i, k, c.Gates[i].Kind)
		}
	}
}

func TestMCZDegeneratesToZ(t *testing.T) {
	c := New(2)
	c.MCZ([]int{1})
	if len(c.Gates) != 1 || c.Gates[0].Kind != Z || c.Gates[0].Target != 1 {
		t.Errorf("single-qubit MCZ must become Z, got %+v", c.Gates)
	}
}

func TestInverseReversesAndNegatesRY(t *testing.T) {
	c := New(2)
	c.H(0)
	c.RY(math.Pi/3, 1)
	c.CX(0, 1)
	inv := c.Inverse()
	if len(inv.Gates) != 3 {
		t.Fatalf("expected 3 gates, got %d", len(inv.Gates))
	}
	if inv.Gates[0].Kind != CX {
		t.Errorf("expected the inverse to start with CX, got %v", inv.Gates[0].Kind)
	}
	if inv.Gates[1].Kind != RY || inv.Gates[1].Theta != -math.Pi/3 {
		t.Errorf("expected RY with negated angle, got %+v", inv.Gates[1])
	}
	if inv.Gates[2].Kind != H {
		t.Errorf("expected the inverse to end with H, got %v", inv.Gates[2].Kind)
	}
}

func TestBitsUintAndString(t *testing.T) {
	b := Bits{true, false, true, true}
	if b.Uint() != 0b1101 {
		t.Errorf("expected 13, got %d", b.Uint())
	}
	if b.String() != "1101" {
		t.Errorf("expected %q, got %q", "1101", b.String())
	}
}

func TestQubitRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic on out-of-range qubit")
		}
	}()
	c := New(1)
	c.H(1)
}

func TestMeasureTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic on double measurement")
		}
	}()
	c := New(1)
	c.Measure(0)
	c.Measure(0)
}
