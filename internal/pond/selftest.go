package pond

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/pondmodel/internal/dynamo"
)

// opTolerance bounds |dh/dt| at the operating point.
const opTolerance = 1e-6

// Check is the outcome of one self-test property.
type Check struct {
	Name string
	Err  error
}

func (c Check) Passed() bool { return c.Err == nil }

// Report collects the checks run by SelfTest.
type Report struct {
	Params Params
	Checks []Check
}

// Passed reports whether every check passed.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed() {
			return false
		}
	}
	return true
}

// Err joins the failures, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, c := range r.Checks {
		if c.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, c.Err))
		}
	}
	return errors.Join(errs...)
}

// RunSelfTests checks the model against the default parameters.
func RunSelfTests() error {
	return SelfTest(DefaultParams()).Err()
}

// SelfTest evaluates the model's invariants for p: the zero fixed point,
// bounds enforcement, the operating point, measurement identity, sensitivity
// to each parameter and determinism.
func SelfTest(p Params) Report {
	r := Report{Params: p}
	add := func(name string, err error) {
		r.Checks = append(r.Checks, Check{Name: name, Err: err})
	}

	add("zero fixed point", checkZero(p))
	add("bounds enforced", checkBounds(p))

	x, u, err := operatingPoint(p)
	if err != nil {
		add("operating point", err)
		return r
	}
	add("operating point", checkOperatingPoint(x, u, p))
	add("measurement identity", checkMeasurement(x, u, p))
	add("parameter sensitivity", checkSensitivity(x, u, p))
	add("deterministic", checkDeterminism(x, u, p))

	return r
}

// operatingPoint returns the nominal point for the default pond and the
// solved equilibrium for uNop otherwise.
func operatingPoint(p Params) (dynamo.State, dynamo.Control, error) {
	if p == DefaultParams() {
		return dynamo.State{xNop}, dynamo.Control{uNop}, nil
	}
	h, err := SteadyState(uNop, p)
	if err != nil {
		return nil, nil, err
	}
	return dynamo.State{h}, dynamo.Control{uNop}, nil
}

func checkZero(p Params) error {
	for _, t := range []float64{0, 110} {
		dx, err := Dynamics(t, dynamo.State{0}, dynamo.Control{0}, p)
		if err != nil {
			return err
		}
		if dx[0] != 0 {
			return fmt.Errorf("dh/dt(t=%g, h=0, q=0) = %g, want 0", t, dx[0])
		}
	}
	return nil
}

func checkBounds(p Params) error {
	over := 0.34 * p.WeirWidth
	if _, err := Dynamics(0, dynamo.State{over}, dynamo.Control{0}, p); !errors.Is(err, dynamo.ErrDomainViolation) {
		return fmt.Errorf("h=%g: got %v, want domain violation", over, err)
	}
	under := 0.32 * p.WeirWidth
	if _, err := Dynamics(0, dynamo.State{under}, dynamo.Control{0}, p); err != nil {
		return fmt.Errorf("h=%g: %w", under, err)
	}
	return nil
}

func checkOperatingPoint(x dynamo.State, u dynamo.Control, p Params) error {
	dx, err := Dynamics(10, x, u, p)
	if err != nil {
		return err
	}
	if math.Abs(dx[0]) >= opTolerance {
		return fmt.Errorf("dh/dt(h=%g, q=%g) = %g, want |.| < %g", x[0], u[0], dx[0], opTolerance)
	}
	return nil
}

func checkMeasurement(x dynamo.State, u dynamo.Control, p Params) error {
	if y := Measurement(10, x, u, p); !y.Equal(x) {
		return fmt.Errorf("y = %v, want %v", y, x)
	}
	return nil
}

func checkSensitivity(x dynamo.State, u dynamo.Control, p Params) error {
	base, err := Dynamics(10, x, u, p)
	if err != nil {
		return err
	}

	perturbed := []struct {
		name string
		p    Params
	}{
		{"c", p.WithC(p.C + 0.001)},
		{"weir_height", withWeirHeight(p, p.WeirHeight+0.01)},
		{"weir_width", withWeirWidth(p, p.WeirWidth+0.1)},
	}

	for _, pp := range perturbed {
		dx, err := Dynamics(10, x, u, pp.p)
		if err != nil {
			return fmt.Errorf("%s: %w", pp.name, err)
		}
		if dx.Equal(base) {
			return fmt.Errorf("changing %s has no effect on dh/dt", pp.name)
		}
	}
	return nil
}

func checkDeterminism(x dynamo.State, u dynamo.Control, p Params) error {
	a, err := Dynamics(10, x, u, p)
	if err != nil {
		return err
	}
	b, err := Dynamics(10, x, u, p)
	if err != nil {
		return err
	}
	if !a.Equal(b) {
		return fmt.Errorf("repeated evaluation differs: %v != %v", a, b)
	}
	return nil
}

func withWeirHeight(p Params, d float64) Params {
	p.WeirHeight = d
	return p
}

func withWeirWidth(p Params, b float64) Params {
	p.WeirWidth = b
	return p
}
