package dashboard

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderRevenueSVG draws the monthly revenue series as a bar chart and
// writes it as SVG, for embedding straight into the overview page.
func RenderRevenueSVG(w io.Writer, points []MonthPoint) error {
	p := plot.New()
	p.Title.Text = "Revenue by Month"
	p.Y.Label.Text = "Revenue"

	values := make(plotter.Values, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		values[i] = pt.Total
		labels[i] = pt.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return fmt.Errorf("building revenue chart: %w", err)
	}

	p.Add(bars)
	p.NominalX(labels...)

	wt, err := p.WriterTo(16*vg.Centimeter, 9*vg.Centimeter, "svg")
	if err != nil {
		return fmt.Errorf("rendering revenue chart: %w", err)
	}

	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing revenue chart: %w", err)
	}

	return nil
}
