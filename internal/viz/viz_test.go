package viz

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/pondmodel/internal/pond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparklineChart(t *testing.T) {
	assert.Equal(t, "─────", SparklineChart(nil, 5))

	out := SparklineChart([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	assert.Contains(t, out, "▁")
	assert.Contains(t, out, "█")
}

func TestSeparator(t *testing.T) {
	assert.Contains(t, Separator(20), "◆")
	assert.NotPanics(t, func() { Separator(0) })
}

func TestRateCurve(t *testing.T) {
	heads, rates, err := pond.Sweep(1, pond.DefaultParams(), 40)
	require.NoError(t, err)

	out, err := RateCurve(heads, rates, 40, 10)
	require.NoError(t, err)
	assert.Contains(t, out, "dh/dt vs head")

	_, err = RateCurve(heads, rates[:3], 40, 10)
	assert.Error(t, err)

	_, err = RateCurve(nil, nil, 40, 10)
	assert.Error(t, err)
}

func TestNewRatePlot(t *testing.T) {
	p, err := NewRatePlot([]float64{0, 0.1, 0.2}, []float64{1e-3, 0, -1e-3}, 0.1)
	require.NoError(t, err)
	assert.Equal(t, "Pond dynamics", p.Title.Text)

	_, err = NewRatePlot([]float64{0}, []float64{0}, -1)
	assert.Error(t, err)

	_, err = NewRatePlot([]float64{0, 1}, []float64{0}, -1)
	assert.Error(t, err)
}

func TestSaveRatePlot(t *testing.T) {
	heads, rates, err := pond.Sweep(1, pond.DefaultParams(), 20)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rate.svg")
	assert.NoError(t, SaveRatePlot(path, heads, rates, -1))
}

func TestRenderReport(t *testing.T) {
	r := pond.Report{
		Params: pond.DefaultParams(),
		Checks: []pond.Check{
			{Name: "zero fixed point"},
			{Name: "operating point", Err: errors.New("off by 1e-3")},
		},
	}

	out := RenderReport(r)
	assert.Contains(t, out, "zero fixed point")
	assert.Contains(t, out, "off by 1e-3")
	assert.Contains(t, out, "1/2 checks passed")
	assert.Equal(t, 1, strings.Count(out, "FAIL"))
}
