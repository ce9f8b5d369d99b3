package pond

import (
	"fmt"

	"github.com/san-kum/pondmodel/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// sweepChunk is the smallest slice of the grid handed to one goroutine.
const sweepChunk = 256

// Sweep evaluates dh/dt for constant inflow q at n heads evenly spaced over
// [0, Limit). The grid stops one spacing short of the bound.
func Sweep(q float64, p Params, n int) (heads, rates []float64, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("sweep needs at least 2 points, got %d", n)
	}

	heads = make([]float64, n+1)
	floats.Span(heads, 0, p.Limit())
	heads = heads[:n]

	rates = make([]float64, n)
	errs := make([]error, n)

	dynamo.ParallelFor(n, sweepChunk, func(start, end int) {
		for i := start; i < end; i++ {
			dx, err := Dynamics(0, dynamo.State{heads[i]}, dynamo.Control{q}, p)
			if err != nil {
				errs[i] = err
				continue
			}
			rates[i] = dx[0]
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}

	return heads, rates, nil
}
