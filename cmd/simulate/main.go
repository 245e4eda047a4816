// Command simulate runs one of the pattern-formation teaching models and
// writes its diagnostics: concentration heatmaps, mass time series, a
// kymograph, the detected spots, and optionally a movie of the run.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gonum.org/v1/plot/plotter"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/config"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/diag"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/pattern"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd/models"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/render"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON run configuration (optional)")
	model := flag.String("model", "", "Model to simulate (overrides config): "+fmt.Sprint(models.Names()))
	tEnd := flag.Float64("t-end", 0, "Simulated end time (0: model default)")
	outDir := flag.String("out", "", "Output directory (overrides config)")
	movie := flag.Bool("movie", false, "Also write an AVI movie of the pattern species")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if err := run(*configPath, *model, *tEnd, *outDir, *movie); err != nil {
		log.Fatalf("simulate: %v", err)
	}
}

func run(configPath, modelFlag string, tEndFlag float64, outFlag string, movieFlag bool) error {
	cfg := &config.SimConfig{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	modelName := cfg.GetModel()
	if modelFlag != "" {
		modelName = modelFlag
	}
	outDir := cfg.GetOutDir()
	if outFlag != "" {
		outDir = outFlag
	}
	wantMovie := cfg.GetMovie() || movieFlag

	// Probe the model for its defaults before committing to a grid.
	_, _, meta, err := models.Build(modelName, field.MustGrid(4, 4, 1, 1), nil)
	if err != nil {
		return err
	}

	grid := meta.DefaultGrid
	if cfg.GetNx() != 0 {
		grid, err = field.NewGrid(cfg.GetNx(), cfg.GetNy(), cfg.GetLx(), cfg.GetLy())
		if err != nil {
			return err
		}
	}
	tEnd := meta.DefaultTEnd
	if cfg.GetTEnd() != 0 {
		tEnd = cfg.GetTEnd()
	}
	if tEndFlag != 0 {
		tEnd = tEndFlag
	}
	interval := cfg.GetSnapshotInterval()
	if interval == 0 {
		interval = tEnd / 50
	}

	sys, init, _, err := models.Build(modelName, grid, cfg.Params)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("simulating %s on %dx%d grid (%gx%g) until t=%g", modelName, grid.Nx, grid.Ny, grid.Lx, grid.Ly, tEnd)
	res, err := rd.Run(ctx, sys, init, rd.Config{
		Dt:               cfg.GetDt(),
		SafetyFactor:     cfg.GetSafetyFactor(),
		TEnd:             tEnd,
		SnapshotInterval: interval,
	})
	if err != nil {
		return err
	}
	log.Printf("run complete: %d snapshots", len(res.Times))

	return writeOutputs(cfg, res, meta, outDir, wantMovie)
}

func writeOutputs(cfg *config.SimConfig, res *rd.Result, meta models.Meta, outDir string, wantMovie bool) error {
	patternIdx := res.SpeciesIndex(meta.PatternSpecies)
	final := res.Final(patternIdx)

	// Final-state heatmap per species.
	for i, name := range res.Species {
		path := filepath.Join(outDir, fmt.Sprintf("final_%s.png", name))
		if err := render.FieldHeatmap(res.Final(i), name, path); err != nil {
			return err
		}
	}

	// Mass time series for every species.
	masses := make(map[string][]float64, len(res.Species))
	for i, name := range res.Species {
		masses[name] = diag.MassSeries(res, i)
	}
	if err := render.MassChartPNG(res.Times, masses, filepath.Join(outDir, "mass.png")); err != nil {
		return err
	}
	if err := writeMassCSV(filepath.Join(outDir, "mass.csv"), res, masses); err != nil {
		return err
	}
	for _, group := range meta.Conserved {
		series, err := diag.GroupMassSeries(res, group)
		if err != nil {
			return err
		}
		log.Printf("conserved group %v: max relative drift %.2e", group, diag.MaxRelativeDrift(series))
	}

	// Mean concentration profile along x, with an exponential fit against
	// the analytic gradient length for models that have one.
	if err := writeProfile(res, meta, patternIdx, filepath.Join(outDir, "profile.png")); err != nil {
		return err
	}

	// Kymograph through the middle row.
	kymo, err := diag.RowKymograph(res, patternIdx, final.Grid.Ny/2)
	if err != nil {
		return err
	}
	if err := render.KymographHeatmap(kymo, meta.PatternSpecies, filepath.Join(outDir, "kymograph.png")); err != nil {
		return err
	}

	// Spot detection on the final pattern species.
	spots, scale, err := pattern.AnalyzeField(final, cfg.GetWindowRadius(), final.Grid.Area())
	switch {
	case err == nil:
		log.Printf("detected %d spots, length scale %.4g", len(spots), scale)
		if err := render.SpotOverlayPNG(final, spots, meta.PatternSpecies, filepath.Join(outDir, "spots.png")); err != nil {
			return err
		}
	case errors.Is(err, pattern.ErrNoPattern):
		log.Printf("no pattern detected in final %s field", meta.PatternSpecies)
	default:
		return err
	}

	// Final field as CSV for downstream analysis (e.g. the estimate command).
	csvFile, err := os.Create(filepath.Join(outDir, "final_"+meta.PatternSpecies+".csv"))
	if err != nil {
		return err
	}
	if err := final.WriteCSV(csvFile); err != nil {
		csvFile.Close()
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}

	if wantMovie {
		if err := writeMovie(cfg, res, patternIdx, filepath.Join(outDir, "movie.avi")); err != nil {
			return err
		}
	}
	return nil
}

func writeProfile(res *rd.Result, meta models.Meta, species int, path string) error {
	xs, cs, err := diag.MeanProfileX(res, species, len(res.Snapshots)-1)
	if err != nil {
		return err
	}

	curves := map[string]plotter.XYs{
		meta.PatternSpecies: render.XY(xs, cs),
	}

	if meta.GradientLength > 0 {
		// The profile decays away from the source on both sides of the
		// periodic domain; fit the first half only.
		half := len(xs) / 2
		fit, err := diag.FitExpDecay(xs[:half], cs[:half])
		if err != nil {
			log.Printf("gradient fit failed: %v", err)
		} else {
			log.Printf("gradient length: fitted %.4g, analytic %.4g (R2=%.4f)", fit.Length, meta.GradientLength, fit.R2)
			fitted := make([]float64, half)
			for i, x := range xs[:half] {
				fitted[i] = fit.Amplitude * math.Exp(-x/fit.Length)
			}
			curves["fit"] = render.XY(xs[:half], fitted)
		}
	}

	return render.ProfilePNG(meta.PatternSpecies+" profile", "x", "mean concentration", path, curves)
}

func writeMassCSV(path string, res *rd.Result, masses map[string][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"time"}, res.Species...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, t := range res.Times {
		row := make([]string, 0, len(header))
		row = append(row, fmt.Sprintf("%g", t))
		for _, name := range res.Species {
			row = append(row, fmt.Sprintf("%.9g", masses[name][i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeMovie(cfg *config.SimConfig, res *rd.Result, species int, path string) error {
	// Fixed color range across all frames so brightness is comparable.
	lo, hi := res.Snapshots[0][species].MinMax()
	for _, frame := range res.Snapshots {
		flo, fhi := frame[species].MinMax()
		if flo < lo {
			lo = flo
		}
		if fhi > hi {
			hi = fhi
		}
	}
	if hi <= lo {
		hi = lo + 1
	}

	mw, err := render.NewMovieWriter(path, res.Snapshots[0][species].Grid, cfg.GetMovieScale(), int32(cfg.GetMovieFPS()), lo, hi)
	if err != nil {
		return err
	}
	for i, frame := range res.Snapshots {
		if err := mw.AddFrame(frame[species], res.Times[i]); err != nil {
			mw.Close()
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}
	log.Printf("wrote %d-frame movie to %s", len(res.Snapshots), path)
	return nil
}
