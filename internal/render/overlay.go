package render

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/pattern"
)

// SpotOverlayPNG renders the field heatmap with the detected spots marked,
// the visual check the exercises use to sanity-check the estimator output.
func SpotOverlayPNG(f *field.Field, spots []pattern.Spot, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	p.Add(plotter.NewHeatMap(fieldGrid{f: f}, moreland.SmoothBlueRed().Palette(255)))

	sc, err := plotter.NewScatter(SpotXYs(spots, f.Grid.Dx(), f.Grid.Dy()))
	if err != nil {
		return fmt.Errorf("spot scatter: %w", err)
	}
	sc.GlyphStyle.Shape = draw.RingGlyph{}
	sc.GlyphStyle.Color = color.White
	sc.GlyphStyle.Radius = vg.Points(4)
	p.Add(sc)
	p.Legend.Add(fmt.Sprintf("%d spots", len(spots)), sc)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save overlay: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lineColor(i int) color.Color {
	palette := []color.RGBA{
		{R: 0xd6, G: 0x28, B: 0x28, A: 0xff},
		{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
		{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
		{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	}
	return palette[i%len(palette)]
}
