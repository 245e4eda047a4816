package render

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MassChartPNG plots the per-species total mass over time, the standard
// conservation check for the Min system exercises.
func MassChartPNG(times []float64, masses map[string][]float64, path string) error {
	seriesColors := []drawing.Color{
		chart.ColorRed,
		chart.ColorGreen,
		chart.ColorBlue,
		{R: 255, G: 165, B: 0, A: 255},
		chart.ColorCyan,
	}

	var series []chart.Series
	for i, name := range sortedKeys(masses) {
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: times,
			YValues: masses[name],
			Style:   chart.Style{StrokeColor: seriesColors[i%len(seriesColors)], StrokeWidth: 2.0},
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("mass chart: no series to plot")
	}

	graph := chart.Chart{
		Title:  "Total mass over time",
		XAxis:  chart.XAxis{Name: "t", Style: chart.Style{FontSize: 10}},
		YAxis:  chart.YAxis{Name: "mass", Style: chart.Style{FontSize: 10}},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mass chart: %w", err)
	}
	defer out.Close()

	if err := graph.Render(chart.PNG, out); err != nil {
		return fmt.Errorf("render mass chart: %w", err)
	}
	return nil
}
