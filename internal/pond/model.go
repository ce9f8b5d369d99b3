package pond

import "github.com/san-kum/pondmodel/internal/dynamo"

const (
	StateDim   = 1
	ControlDim = 1
)

// Model binds a parameter set to the pond equations and implements
// dynamo.System.
type Model struct {
	params Params
}

func NewModel(p Params) *Model {
	return &Model{params: p}
}

func (m *Model) StateDim() int   { return StateDim }
func (m *Model) ControlDim() int { return ControlDim }

func (m *Model) Params() Params { return m.params }

func (m *Model) Derive(t float64, x dynamo.State, u dynamo.Control) (dynamo.State, error) {
	return Dynamics(t, x, u, m.params)
}

func (m *Model) Observe(t float64, x dynamo.State, u dynamo.Control) (dynamo.State, error) {
	return Measurement(t, x, u, m.params), nil
}

func (m *Model) GetParams() map[string]float64 {
	return m.params.Map()
}

var (
	_ dynamo.System       = (*Model)(nil)
	_ dynamo.Configurable = (*Model)(nil)
)
