package pond

import (
	"fmt"
	"math"

	"github.com/san-kum/pondmodel/internal/dynamo"
	"github.com/san-kum/pondmodel/internal/linear"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

const bisectIters = 200

// MaxInflow returns the outflow at the head bound: the largest constant
// inflow that still has an equilibrium inside the validity domain.
func MaxInflow(p Params) float64 {
	return Outflow(p.Limit(), p)
}

// SteadyState returns the head at which inflow q balances the weir outflow.
// Outflow is strictly increasing on [0, Limit), so the root is unique and is
// found by bisection.
func SteadyState(q float64, p Params) (float64, error) {
	if q < 0 || math.IsNaN(q) {
		return 0, fmt.Errorf("inflow %g is negative: %w", q, dynamo.ErrNoEquilibrium)
	}
	if q == 0 {
		return 0, nil
	}
	if qmax := MaxInflow(p); !(q < qmax) {
		return 0, fmt.Errorf("inflow %g exceeds maximum %g: %w", q, qmax, dynamo.ErrNoEquilibrium)
	}

	lo, hi := 0.0, p.Limit()
	for i := 0; i < bisectIters; i++ {
		mid := lo + (hi-lo)/2
		if mid == lo || mid == hi {
			break
		}
		if Outflow(mid, p) < q {
			lo = mid
		} else {
			hi = mid
		}
	}

	return lo, nil
}

// Jacobian returns the partial derivatives of dh/dt with respect to head and
// inflow at (h, q).
func Jacobian(h, q float64, p Params) (dfdh, dfdq float64, err error) {
	if err := checkDomain(dynamo.State{h}, p); err != nil {
		return 0, 0, err
	}

	hd := h + p.WeirHeight
	g := Outflow(h, p)
	// d/dh of 3.33*(b - 0.2h)*h^1.5
	dg := dischargeCoeff * math.Sqrt(h) * (1.5*p.WeirWidth - 2.5*contraction*h)

	dfdq = p.C / (hd * hd)
	dfdh = -p.C*dg/(hd*hd) - 2*p.C*(q-g)/(hd*hd*hd)

	return dfdh, dfdq, nil
}

// Linearize returns the linear model
//
//	d(δh)/dt = A*δh + B*δq
//	δy       = C*δh + D*δq
//
// around (h, q), with A and B obtained by central finite differences. The
// point must lie far enough inside the validity domain for the difference
// stencil to stay inside it.
func Linearize(h, q float64, p Params) (*linear.Continuous, error) {
	var evalErr error
	f := func(y, z []float64) {
		dx, err := Dynamics(0, dynamo.State{z[0]}, dynamo.Control{z[1]}, p)
		if err != nil {
			if evalErr == nil {
				evalErr = err
			}
			y[0] = math.NaN()
			return
		}
		y[0] = dx[0]
	}

	jac := mat.NewDense(StateDim, StateDim+ControlDim, nil)
	fd.Jacobian(jac, f, []float64{h, q}, &fd.JacobianSettings{
		Formula: fd.Central,
	})
	if evalErr != nil {
		return nil, fmt.Errorf("linearize at h=%g q=%g: %w", h, q, evalErr)
	}

	A := mat.DenseCopyOf(jac.Slice(0, StateDim, 0, StateDim))
	B := mat.DenseCopyOf(jac.Slice(0, StateDim, StateDim, StateDim+ControlDim))
	C := mat.NewDense(StateDim, StateDim, []float64{1})
	D := mat.NewDense(StateDim, ControlDim, []float64{0})

	return linear.NewContinuous(A, B, C, D)
}
