package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for model evaluation.
var (
	// ErrDomainViolation indicates a state outside the model's validity domain.
	ErrDomainViolation = errors.New("dynamo: state outside model validity domain")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrNoEquilibrium indicates no steady state exists for the requested input.
	ErrNoEquilibrium = errors.New("dynamo: no equilibrium inside validity domain")
)

// DomainError reports the state component that left the validity domain
// [Lower, Upper).
type DomainError struct {
	Index int
	Value float64
	Lower float64
	Upper float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("x[%d]=%g outside [%g, %g): %v", e.Index, e.Value, e.Lower, e.Upper, ErrDomainViolation)
}

func (e *DomainError) Unwrap() error {
	return ErrDomainViolation
}

// CheckDims returns ErrDimensionMismatch when x or u do not match the
// dimensions of sys.
func CheckDims(sys System, x State, u Control) error {
	if len(x) != sys.StateDim() {
		return fmt.Errorf("state length %d, want %d: %w", len(x), sys.StateDim(), ErrDimensionMismatch)
	}
	if len(u) != sys.ControlDim() {
		return fmt.Errorf("control length %d, want %d: %w", len(u), sys.ControlDim(), ErrDimensionMismatch)
	}
	return nil
}
