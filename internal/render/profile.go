package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/pattern"
)

// ProfilePNG plots one or more named (x, y) curves, e.g. a simulated
// concentration profile next to its fitted exponential.
func ProfilePNG(title, xlabel, ylabel, path string, curves map[string]plotter.XYs) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	// Stable iteration: plotutil-style auto colors keyed by insertion would
	// be nondeterministic over a map, so fix a small palette and sort names.
	names := sortedKeys(curves)
	for i, name := range names {
		line, err := plotter.NewLine(curves[name])
		if err != nil {
			return fmt.Errorf("line %q: %w", name, err)
		}
		line.Color = lineColor(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save profile plot: %w", err)
	}
	return nil
}

// XY converts parallel slices into plotter.XYs.
func XY(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}

// SpotXYs converts spot grid coordinates into physical cell-centre points.
func SpotXYs(spots []pattern.Spot, dx, dy float64) plotter.XYs {
	pts := make(plotter.XYs, len(spots))
	for i, s := range spots {
		pts[i] = plotter.XY{X: (float64(s.X) + 0.5) * dx, Y: (float64(s.Y) + 0.5) * dy}
	}
	return pts
}
