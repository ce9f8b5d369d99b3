package pond

import (
	"fmt"
	"math"

	"github.com/san-kum/pondmodel/internal/dynamo"
)

const (
	// dischargeCoeff is the weir discharge coefficient.
	dischargeCoeff = 3.33
	// contraction is the end-contraction factor applied to the weir width.
	contraction = 0.2
	// boundFraction of the weir width bounds the head.
	boundFraction = 0.33
)

// Normal operating point of the default pond: constant inflow uNop keeps the
// head at (very nearly) xNop.
const (
	uNop = 1.0
	xNop = 0.28805
)

// Dynamics returns dh/dt for head x[0] and inflow u[0]:
//
//	dh/dt = c * (q - 3.33*(b - 0.2*h)*h^1.5) / (h + d)^2
//
// t is accepted for interface uniformity; the pond is time-invariant.
// Every component of x must lie in [0, p.Limit()); otherwise the returned
// error is a *dynamo.DomainError matching dynamo.ErrDomainViolation.
func Dynamics(t float64, x dynamo.State, u dynamo.Control, p Params) (dynamo.State, error) {
	if err := checkDims(x, u); err != nil {
		return nil, err
	}
	if err := checkDomain(x, p); err != nil {
		return nil, err
	}

	h, q := x[0], u[0]
	hd := h + p.WeirHeight

	return dynamo.State{p.C * (q - Outflow(h, p)) / (hd * hd)}, nil
}

// Measurement returns the observed output, which for the pond is the head
// itself.
func Measurement(t float64, x dynamo.State, u dynamo.Control, p Params) dynamo.State {
	return x.Clone()
}

// Outflow returns the weir discharge for head h.
func Outflow(h float64, p Params) float64 {
	return dischargeCoeff * (p.WeirWidth - contraction*h) * math.Pow(h, 1.5)
}

func checkDims(x dynamo.State, u dynamo.Control) error {
	if len(x) != StateDim {
		return fmt.Errorf("state length %d, want %d: %w", len(x), StateDim, dynamo.ErrDimensionMismatch)
	}
	if len(u) != ControlDim {
		return fmt.Errorf("control length %d, want %d: %w", len(u), ControlDim, dynamo.ErrDimensionMismatch)
	}
	return nil
}

func checkDomain(x dynamo.State, p Params) error {
	limit := p.Limit()
	for i, h := range x {
		// written so that NaN fails too
		if !(h >= 0 && h < limit) {
			return &dynamo.DomainError{Index: i, Value: h, Lower: 0, Upper: limit}
		}
	}
	return nil
}
