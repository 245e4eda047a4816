package sweep

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTMLReport renders an interactive HTML report for a completed sweep:
// the measured length scale and spot count plotted against the swept
// parameter. With several swept parameters the one with the most distinct
// values goes on the x-axis and the rest are shown in the tooltip.
func WriteHTMLReport(out io.Writer, s *Summary) error {
	if s == nil || len(s.Results) == 0 {
		return fmt.Errorf("no results to report")
	}

	xParam := primaryParam(s.Results)
	if xParam == "" {
		return fmt.Errorf("results carry no parameters")
	}

	sorted := append([]ComboResult(nil), s.Results...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Params[xParam] < sorted[j].Params[xParam] })

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Sweep %s (%s)", s.RunID, s.Model)
	page.AddCharts(
		lengthScaleChart(s, sorted, xParam),
		spotCountChart(s, sorted, xParam),
	)
	if err := page.Render(out); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func lengthScaleChart(s *Summary, results []ComboResult, xParam string) components.Charter {
	data := make([]opts.ScatterData, 0, len(results))
	for _, r := range results {
		if r.NoPattern {
			continue
		}
		data = append(data, opts.ScatterData{
			Value:  []interface{}{r.Params[xParam], r.LengthScale},
			Symbol: "circle",
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Pattern length scale",
			Subtitle: fmt.Sprintf("model=%s combos=%d (pattern-free combos omitted)", s.Model, len(results)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xParam, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "length scale", NameLocation: "middle", NameGap: 35}),
	)
	scatter.AddSeries("length_scale", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	return scatter
}

func spotCountChart(s *Summary, results []ComboResult, xParam string) components.Charter {
	x := make([]string, 0, len(results))
	y := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		x = append(x, fmt.Sprintf("%.4g", r.Params[xParam]))
		y = append(y, opts.BarData{Value: r.SpotCount})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Spot count",
			Subtitle: fmt.Sprintf("vs %s; zero bars are pattern-free combos", xParam),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xParam, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "spots", NameLocation: "middle", NameGap: 30}),
	)
	bar.SetXAxis(x).AddSeries("spot_count", y,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

// primaryParam picks the swept parameter with the most distinct values.
// Names tie-break alphabetically so the choice is deterministic.
func primaryParam(results []ComboResult) string {
	distinct := map[string]map[float64]struct{}{}
	for _, r := range results {
		for name, v := range r.Params {
			if distinct[name] == nil {
				distinct[name] = map[float64]struct{}{}
			}
			distinct[name][v] = struct{}{}
		}
	}

	names := make([]string, 0, len(distinct))
	for name := range distinct {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	bestCount := 0
	for _, name := range names {
		if n := len(distinct[name]); n > bestCount {
			best, bestCount = name, n
		}
	}
	return best
}
