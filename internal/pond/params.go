package pond

import (
	"fmt"
	"math"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/san-kum/pondmodel/internal/dynamo"
)

const (
	DefaultWeirHeight = 5.0
	DefaultWeirWidth  = 2.0
	DefaultAlpha      = 10.0
)

// Params is the pond parameter set. It is a value type: model functions take
// it by value and never modify it.
type Params struct {
	// WeirHeight is the height of the weir crest above the deepest point (m).
	WeirHeight float64 `mapstructure:"weir_height" yaml:"weir_height"`
	// WeirWidth is the width of the weir opening (m).
	WeirWidth float64 `mapstructure:"weir_width" yaml:"weir_width"`
	// Alpha is the inclination of the pond walls from vertical (deg).
	Alpha float64 `mapstructure:"alpha" yaml:"alpha"`
	// C is the geometry coefficient tan(Alpha)^2/π.
	C float64 `mapstructure:"c" yaml:"c"`
}

// Coefficient returns tan(alpha)^2/π for a wall inclination alpha in degrees.
func Coefficient(alpha float64) float64 {
	tan := math.Tan(alpha * math.Pi / 180)
	return tan * tan / math.Pi
}

// NewParams returns a parameter set with C derived from alpha.
func NewParams(weirHeight, weirWidth, alpha float64) Params {
	return Params{
		WeirHeight: weirHeight,
		WeirWidth:  weirWidth,
		Alpha:      alpha,
		C:          Coefficient(alpha),
	}
}

func DefaultParams() Params {
	return NewParams(DefaultWeirHeight, DefaultWeirWidth, DefaultAlpha)
}

// WithC returns a copy of p with the geometry coefficient set directly.
// The result no longer agrees with p.Alpha.
func (p Params) WithC(c float64) Params {
	p.C = c
	return p
}

// Limit returns the upper bound on head for which the weir discharge
// approximation holds.
func (p Params) Limit() float64 {
	return boundFraction * p.WeirWidth
}

// Consistent reports whether C agrees with Alpha.
func (p Params) Consistent() bool {
	want := Coefficient(p.Alpha)
	return math.Abs(p.C-want) <= 1e-12*math.Max(1, math.Abs(want))
}

// Validate checks that p describes a physical pond.
func (p Params) Validate() error {
	switch {
	case !(p.WeirHeight > 0):
		return fmt.Errorf("weir_height must be positive, got %g: %w", p.WeirHeight, dynamo.ErrParameterBounds)
	case !(p.WeirWidth > 0):
		return fmt.Errorf("weir_width must be positive, got %g: %w", p.WeirWidth, dynamo.ErrParameterBounds)
	case !(p.Alpha > 0 && p.Alpha < 90):
		return fmt.Errorf("alpha must be in (0, 90) degrees, got %g: %w", p.Alpha, dynamo.ErrParameterBounds)
	case !(p.C > 0) || math.IsInf(p.C, 0):
		return fmt.Errorf("c must be positive and finite, got %g: %w", p.C, dynamo.ErrParameterBounds)
	}
	return nil
}

// Map returns the parameters keyed by name.
func (p Params) Map() map[string]float64 {
	return map[string]float64{
		"weir_height": p.WeirHeight,
		"weir_width":  p.WeirWidth,
		"alpha":       p.Alpha,
		"c":           p.C,
	}
}

// Get returns the parameter with the given name.
func (p Params) Get(name string) (float64, error) {
	v, ok := p.Map()[name]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q (known: %v)", name, Names())
	}
	return v, nil
}

// Names lists the parameter names in sorted order.
func Names() []string {
	m := Params{}.Map()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParamsFromMap overlays the named values in m onto base. C is derived from
// the resulting Alpha unless m names "c" explicitly. Unknown names are an
// error.
func ParamsFromMap(base Params, m map[string]float64) (Params, error) {
	p := base

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return Params{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Params{}, fmt.Errorf("decode parameters: %w", err)
	}

	if _, ok := m["c"]; !ok {
		p.C = Coefficient(p.Alpha)
	}

	return p, nil
}
