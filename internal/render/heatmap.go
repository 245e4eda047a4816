// Package render turns fields, kymographs and time series into files a
// student can look at. It is strictly a consumer of the numeric packages:
// nothing here feeds back into detection or integration, so a headless sweep
// can skip rendering entirely.
package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/diag"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
)

// fieldGrid adapts a Field to plotter.GridXYZ.
type fieldGrid struct {
	f *field.Field
}

func (g fieldGrid) Dims() (c, r int) { return g.f.Grid.Nx, g.f.Grid.Ny }
func (g fieldGrid) Z(c, r int) float64 {
	return g.f.At(c, r)
}
func (g fieldGrid) X(c int) float64 { return (float64(c) + 0.5) * g.f.Grid.Dx() }
func (g fieldGrid) Y(r int) float64 { return (float64(r) + 0.5) * g.f.Grid.Dy() }

// kymoGrid adapts a Kymograph to plotter.GridXYZ with time on the y axis.
type kymoGrid struct {
	k *diag.Kymograph
}

func (g kymoGrid) Dims() (c, r int)   { return len(g.k.Xs), len(g.k.Times) }
func (g kymoGrid) Z(c, r int) float64 { return g.k.Rows[r][c] }
func (g kymoGrid) X(c int) float64    { return g.k.Xs[c] }
func (g kymoGrid) Y(r int) float64    { return g.k.Times[r] }

// FieldHeatmap writes a colour-mapped image of the field to a PNG file.
func FieldHeatmap(f *field.Field, title, path string) error {
	return saveHeatmap(fieldGrid{f: f}, title, "x", "y", path)
}

// KymographHeatmap writes a space-time heatmap to a PNG file.
func KymographHeatmap(k *diag.Kymograph, title, path string) error {
	return saveHeatmap(kymoGrid{k: k}, title, "x", "t", path)
}

func saveHeatmap(grid plotter.GridXYZ, title, xlabel, ylabel, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	hm := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(255))
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}
