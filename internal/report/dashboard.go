package report

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

const (
	dashboardWidth  = 16 * vg.Inch
	dashboardHeight = 5 * vg.Inch
)

// RenderDashboard draws the daily line, weekly bars and the mean-vs-max
// scatter side by side and encodes them as PNG
func RenderDashboard(daily, weekly []models.SeriesPoint, summary models.BuildingSummary) ([]byte, error) {
	dailyPlot, err := dailyPanel(daily)
	if err != nil {
		return nil, fmt.Errorf("daily panel: %w", err)
	}
	weeklyPlot, err := weeklyPanel(weekly)
	if err != nil {
		return nil, fmt.Errorf("weekly panel: %w", err)
	}
	scatterPlot, err := scatterPanel(summary)
	if err != nil {
		return nil, fmt.Errorf("scatter panel: %w", err)
	}

	img := vgimg.New(dashboardWidth, dashboardHeight)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      3,
		PadX:      vg.Millimeter * 10,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}

	plots := [][]*plot.Plot{{dailyPlot, weeklyPlot, scatterPlot}}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

func dailyPanel(daily []models.SeriesPoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Daily Consumption"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "kWh"
	p.X.Tick.Marker = plot.TimeTicks{Format: dateFormat}

	if len(daily) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(daily))
	for i, pt := range daily {
		xys[i].X = float64(pt.Period.Unix())
		xys[i].Y = pt.KWh
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	p.Add(line, points)
	return p, nil
}

func weeklyPanel(weekly []models.SeriesPoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Weekly Consumption"
	p.Y.Label.Text = "kWh"

	if len(weekly) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(weekly))
	labels := make([]string, len(weekly))
	for i, pt := range weekly {
		values[i] = pt.KWh
		labels[i] = pt.Period.Format(dateFormat)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

func scatterPanel(summary models.BuildingSummary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Mean vs Max Consumption"
	p.X.Label.Text = "Mean"
	p.Y.Label.Text = "Max"

	stats := summary.Ordered()
	if len(stats) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(stats))
	names := make([]string, len(stats))
	for i, s := range stats {
		xys[i].X = s.Mean
		xys[i].Y = s.Max
		names[i] = s.Building
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, err
	}
	p.Add(scatter, labels)
	return p, nil
}
