package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewRatePlot creates a plot of dh/dt against head. If eq is non-negative it
// marks the equilibrium head.
func NewRatePlot(heads, rates []float64, eq float64) (*plot.Plot, error) {
	if len(heads) != len(rates) {
		return nil, fmt.Errorf("invalid data dimensions: %d heads, %d rates", len(heads), len(rates))
	}
	if len(heads) < 2 {
		return nil, fmt.Errorf("invalid data supplied: need at least 2 points")
	}

	p := plot.New()

	p.Title.Text = "Pond dynamics"
	p.X.Label.Text = "head on weir (m)"
	p.Y.Label.Text = "dh/dt (m/s)"
	p.Legend.Top = true

	line, err := plotter.NewLine(makePoints(heads, rates))
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %v", err)
	}
	line.LineStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	line.LineStyle.Width = vg.Points(1.5)

	p.Add(line)
	p.Legend.Add("model", line)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(zero)

	if eq >= 0 {
		eqScatter, err := plotter.NewScatter(plotter.XYs{{X: eq, Y: 0}})
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter: %v", err)
		}
		eqScatter.GlyphStyle.Color = color.RGBA{G: 200, A: 255}
		eqScatter.Shape = draw.PyramidGlyph{}
		eqScatter.GlyphStyle.Radius = vg.Points(4)

		p.Add(eqScatter)
		p.Legend.Add("equilibrium", eqScatter)
	}

	return p, nil
}

// SaveRatePlot renders the rate plot to path; the format follows the file
// extension.
func SaveRatePlot(path string, heads, rates []float64, eq float64) error {
	p, err := NewRatePlot(heads, rates, eq)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func makePoints(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
