// Package viz renders model output for the terminal and for image files:
//
//   - [RenderReport]: lipgloss-styled self-test report
//   - [RateCurve]: asciigraph plot of dh/dt over head
//   - [NewRatePlot]: gonum/plot figure of the same curve, saved as PNG/SVG/PDF
package viz
