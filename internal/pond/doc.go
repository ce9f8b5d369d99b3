// Package pond models a single storage pond drained over a weir.
//
// The state is the head on the weir h (m), the input is the inflow rate q
// (m³/s) and the output is the head:
//
//	dh/dt = c * (q - 3.33*(b - 0.2*h)*h^1.5) / (h + d)^2
//	y     = h
//
// with weir height d, weir width b and geometry coefficient
// c = tan(alpha)^2/π for walls inclined alpha degrees from vertical.
//
// The model is valid for 0 ≤ h < 0.33*b. [Dynamics] reports states outside
// that range as a [dynamo.DomainError]; integrators are expected to catch it
// with errors.Is(err, dynamo.ErrDomainViolation) and shrink their step.
//
// All functions are pure and safe for concurrent use. Vectors are always
// one-element slices so that the pond shares the [dynamo.System] calling
// convention with multi-state models.
package pond
