package dynamo

import "math"

// State is a state (or output) vector. Scalar systems still use a
// one-element State so that every model shares a single calling convention.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other hold bit-identical elements.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if math.Float64bits(s[i]) != math.Float64bits(other[i]) {
			return false
		}
	}
	return true
}

type Control []float64

// System is a continuous-time state-space model:
//
//	dx/dt = f(t, x, u)
//	y     = g(t, x, u)
//
// Implementations must be pure. Integration is left to the caller, which is
// expected to inspect the error returned by Derive (see ErrDomainViolation).
type System interface {
	Derive(t float64, x State, u Control) (State, error)
	Observe(t float64, x State, u Control) (State, error)
	StateDim() int
	ControlDim() int
}

type Configurable interface {
	GetParams() map[string]float64
}
