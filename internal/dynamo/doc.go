// Package dynamo provides the shared vocabulary for continuous-time
// state-space models:
//
//   - [State] and [Control]: vectors, one element per state or input
//   - [System]: interface for dX/dt = f(t, X, u) and Y = g(t, X, u)
//   - [DomainError]: typed failure for states outside a model's valid range
//   - [ParallelFor]: fan-out helper for evaluating a model over many points
//
// # Example
//
//	sys := pond.NewModel(pond.DefaultParams())
//	dx, err := sys.Derive(0, dynamo.State{0.2}, dynamo.Control{1})
//	if errors.Is(err, dynamo.ErrDomainViolation) {
//	    // shrink the step and retry
//	}
//
// # Thread Safety
//
// Models implementing [System] are expected to be pure and may be called
// concurrently.
package dynamo
