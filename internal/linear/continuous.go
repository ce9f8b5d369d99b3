package linear

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	"github.com/san-kum/pondmodel/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// quadratureSteps is the number of intervals used to integrate exp(A*t)
// when A is singular.
const quadratureSteps = 100

// Continuous is a linear, continuous-time, dynamical system
//
//	dx/dt = A*x + B*u
//	y     = C*x + D*u
type Continuous struct {
	System
}

// NewContinuous creates a linear continuous-time model. A must be defined.
func NewContinuous(A, B, C, D *mat.Dense) (*Continuous, error) {
	if A == nil {
		return nil, fmt.Errorf("system matrix must be defined for a model")
	}
	if r, c := A.Dims(); r != c {
		return nil, fmt.Errorf("system matrix must be square, got [%d x %d]: %w", r, c, dynamo.ErrDimensionMismatch)
	}
	return &Continuous{System: newSystem(A, B, C, D)}, nil
}

// Derive returns dx/dt = A*x + B*u.
func (ct *Continuous) Derive(x, u mat.Vector) (mat.Vector, error) {
	nx, nu, _ := ct.SystemDims()
	if x.Len() != nx {
		return nil, fmt.Errorf("state length %d, want %d: %w", x.Len(), nx, dynamo.ErrDimensionMismatch)
	}
	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("input length %d, want %d: %w", u.Len(), nu, dynamo.ErrDimensionMismatch)
	}

	out := new(mat.Dense)
	out.Mul(ct.A, x)
	if u != nil && ct.B != nil {
		outU := new(mat.Dense)
		outU.Mul(ct.B, u)

		out.Add(out, outU)
	}

	return out.ColView(0), nil
}

// ToDiscrete returns the zero-order-hold equivalent of ct sampled every ts.
//
//	Ad = exp(A*ts)
//	Bd = (exp(A*ts) - I) * inv(A) * B
//
// When A is singular Bd is obtained by integrating exp(A*t) over [0, ts].
// See Discrete-Time Control Systems by Katsuhiko Ogata, Eq. (5-73) and (5-74).
func (ct *Continuous) ToDiscrete(ts float64) (*Discrete, error) {
	if ts <= 0 {
		return nil, fmt.Errorf("sampling time must be positive, got %g", ts)
	}

	nx, nu, _ := ct.SystemDims()
	dsys := newSystem(ct.A, ct.B, ct.C, ct.D)

	scaled := mat.NewDense(nx, nx, nil)
	scaled.Scale(ts, ct.A)
	dsys.A = new(mat.Dense)
	dsys.A.Exp(scaled)

	if ct.B == nil {
		return &Discrete{System: dsys, Ts: ts}, nil
	}

	eye, err := matrix.NewDenseValIdentity(nx, 1.0)
	if err != nil {
		return nil, err
	}

	aux := mat.NewDense(nx, nx, nil)
	aux.Sub(dsys.A, eye)

	ainv := mat.NewDense(nx, nx, nil)
	if err := ainv.Inverse(ct.A); err == nil {
		prod := new(mat.Dense)
		prod.Mul(aux, ainv)
		dsys.B = mat.NewDense(nx, nu, nil)
		dsys.B.Mul(prod, ct.B)
		return &Discrete{System: dsys, Ts: ts}, nil
	}

	// trapezoidal rule over exp(A*t), t in [0, ts]
	sum := mat.NewDense(nx, nx, nil)
	dt := ts / quadratureSteps
	term := new(mat.Dense)
	for i := 0; i <= quadratureSteps; i++ {
		scaled.Scale(dt*float64(i), ct.A)
		term.Exp(scaled)
		w := dt
		if i == 0 || i == quadratureSteps {
			w = dt / 2
		}
		term.Scale(w, term)
		sum.Add(sum, term)
	}
	dsys.B = mat.NewDense(nx, nu, nil)
	dsys.B.Mul(sum, ct.B)

	return &Discrete{System: dsys, Ts: ts}, nil
}

// Discrete is a linear, discrete-time, dynamical system sampled every Ts
//
//	x[n+1] = A*x[n] + B*u[n]
//	y[n]   = C*x[n] + D*u[n]
type Discrete struct {
	System
	Ts float64
}
