package chart

import (
	"bytes"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"transistor_bench/internal/models"
)

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// Render draws junction temperature and total power loss against current for
// a completed run's samples and returns the encoded PNG. Binary-search
// samples arrive in probe order, so the series is sorted by current first.
func Render(title string, points []models.LiveDataPoint) ([]byte, error) {
	sorted := make([]models.LiveDataPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Current < sorted[j].Current })

	tempXY := make(plotter.XYs, len(sorted))
	powerXY := make(plotter.XYs, len(sorted))
	for i, pt := range sorted {
		tempXY[i] = plotter.XY{X: pt.Current, Y: pt.Temperature}
		powerXY[i] = plotter.XY{X: pt.Current, Y: pt.PowerLoss}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Current (A)"
	p.Y.Label.Text = "Junction temp (°C) / Power loss (W)"
	p.Add(plotter.NewGrid())

	tempLine, err := plotter.NewLine(tempXY)
	if err != nil {
		return nil, err
	}
	powerLine, err := plotter.NewLine(powerXY)
	if err != nil {
		return nil, err
	}
	powerLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(tempLine, powerLine)
	p.Legend.Add("junction temp", tempLine)
	p.Legend.Add("power loss", powerLine)
	p.Legend.Top = true

	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
