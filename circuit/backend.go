package circuit

import (
	"context"
	"errors"
)

// ErrBackendExecution indicates a backend call failed or timed out. The
// search engine treats it as transient: the round counts against the budget
// and escalation continues, up to a configured cap on consecutive failures.
var ErrBackendExecution = errors.New("backend execution failed")

// Bits is one measurement shot: Bits[k] is the outcome of the k-th measured
// qubit (see Circuit.Measured).
type Bits []bool

// Uint returns the little-endian integer value of the bits.
func (b Bits) Uint() uint64 {
	var v uint64
	for k, bit := range b {
		if bit {
			v |= 1 << k
		}
	}
	return v
}

func (b Bits) String() string {
	// Most significant bit first, matching the usual ket notation.
	buf := make([]byte, len(b))
	for k, bit := range b {
		c := byte('0')
		if bit {
			c = '1'
		}
		buf[len(b)-1-k] = c
	}
	return string(buf)
}

// A Backend executes a measured circuit and returns one Bits per shot.
// The gate set it must support is the one this package can express:
// H, X, Z, RY, CX, MCX and MCZ.
//
// Implementations must honor ctx cancellation; a circuit execution is
// otherwise atomic from the caller's point of view.
type Backend interface {
	Execute(ctx context.Context, c *Circuit, shots int) ([]Bits, error)
}
