package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// RateCurve renders dh/dt against head as an ASCII graph. The caption names
// the head range covered by the samples.
func RateCurve(heads, rates []float64, width, height int) (string, error) {
	if len(heads) != len(rates) {
		return "", fmt.Errorf("heads and rates differ in length: %d != %d", len(heads), len(rates))
	}
	if len(rates) == 0 {
		return "", fmt.Errorf("no data to plot")
	}

	caption := fmt.Sprintf("dh/dt vs head, h in [%.3g, %.3g] m", heads[0], heads[len(heads)-1])
	return asciigraph.Plot(rates,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
