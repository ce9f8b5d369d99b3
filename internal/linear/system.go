package linear

import (
	"fmt"

	"github.com/san-kum/pondmodel/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// System is a linear plant described by the state (A), input (B),
// output (C) and feedthrough (D) matrices of modern control theory.
type System struct {
	// System/State matrix A
	A *mat.Dense
	// Control/Input Matrix B
	B *mat.Dense
	// Observation/Output Matrix C
	C *mat.Dense
	// Feedthrough matrix D
	D *mat.Dense
}

func newSystem(A, B, C, D *mat.Dense) System {
	sys := System{A: mat.DenseCopyOf(A)}
	if B != nil {
		sys.B = mat.DenseCopyOf(B)
	}
	if C != nil {
		sys.C = mat.DenseCopyOf(C)
	}
	if D != nil {
		sys.D = mat.DenseCopyOf(D)
	}
	return sys
}

// SystemDims returns state length (nx), input length (nu) and output length (ny).
func (s System) SystemDims() (nx, nu, ny int) {
	nx, _ = s.A.Dims()
	if s.B != nil {
		_, nu = s.B.Dims()
	}
	if s.C != nil {
		ny, _ = s.C.Dims()
	}
	return nx, nu, ny
}

// SystemMatrix returns a copy of A.
func (s System) SystemMatrix() mat.Matrix { return mat.DenseCopyOf(s.A) }

// ControlMatrix returns a copy of B, or nil.
func (s System) ControlMatrix() mat.Matrix {
	if s.B == nil {
		return nil
	}
	return mat.DenseCopyOf(s.B)
}

// OutputMatrix returns a copy of C, or nil.
func (s System) OutputMatrix() mat.Matrix {
	if s.C == nil {
		return nil
	}
	return mat.DenseCopyOf(s.C)
}

// FeedForwardMatrix returns a copy of D, or nil.
func (s System) FeedForwardMatrix() mat.Matrix {
	if s.D == nil {
		return nil
	}
	return mat.DenseCopyOf(s.D)
}

// Observe returns the output C*x + D*u.
func (s System) Observe(x, u mat.Vector) (mat.Vector, error) {
	nx, nu, _ := s.SystemDims()
	if s.C == nil {
		return nil, fmt.Errorf("output matrix not defined")
	}
	if x.Len() != nx {
		return nil, fmt.Errorf("state length %d, want %d: %w", x.Len(), nx, dynamo.ErrDimensionMismatch)
	}
	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("input length %d, want %d: %w", u.Len(), nu, dynamo.ErrDimensionMismatch)
	}

	out := new(mat.Dense)
	out.Mul(s.C, x)

	if u != nil && s.D != nil {
		outU := new(mat.Dense)
		outU.Mul(s.D, u)

		out.Add(out, outU)
	}

	return out.ColView(0), nil
}

// String implements the Stringer interface.
func (s System) String() string {
	f := func(m mat.Matrix) string {
		if m == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", mat.Formatted(m, mat.Prefix("  "), mat.Squeeze()))
	}
	return fmt.Sprintf("A=%s\nB=%s\nC=%s\nD=%s", f(s.A), f(s.ControlMatrix()), f(s.OutputMatrix()), f(s.FeedForwardMatrix()))
}
