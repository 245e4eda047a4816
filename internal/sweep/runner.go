package sweep

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/diag"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd/models"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/store"
)

// Status represents the state of a sweep run.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Param defines one swept parameter dimension.
type Param struct {
	Name   string
	Values []float64
}

// Request defines a sweep: a model, the parameter grid, and how to simulate
// and measure each combination. Zero-valued simulation fields fall back to
// the model's defaults.
type Request struct {
	Model  string
	Params []Param

	Grid             field.Grid // zero value: model default grid
	TEnd             float64
	SnapshotInterval float64
	WindowRadius     int
	Notes            string
}

// ComboResult is the measurement for one parameter combination. A NoPattern
// result is a valid zero-pattern data point (e.g. the homogeneous state was
// stable at those parameters), not a failure.
type ComboResult struct {
	Params      map[string]float64
	SpotCount   int
	LengthScale float64
	NoPattern   bool
	MassDrift   float64
}

// Summary is the outcome of a completed sweep.
type Summary struct {
	RunID   string
	Model   string
	Status  Status
	Results []ComboResult
}

// Runner executes sweeps. DB is optional; without it results are only
// returned in memory.
type Runner struct {
	DB *store.DB
}

// Run executes every parameter combination sequentially. Simulation or
// input errors abort the sweep (they indicate a misconfiguration, unlike a
// pattern-free field). Cancelling the context stops between combos.
func (r *Runner) Run(ctx context.Context, req Request) (*Summary, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("sweep: no model given")
	}
	if len(req.Params) == 0 {
		return nil, fmt.Errorf("sweep: no parameters to sweep")
	}
	for _, p := range req.Params {
		if len(p.Values) == 0 {
			return nil, fmt.Errorf("sweep: parameter %q has no values", p.Name)
		}
	}

	// Resolve model defaults once up front; also validates the model name.
	_, _, meta, err := models.Build(req.Model, field.MustGrid(4, 4, 1, 1), nil)
	if err != nil {
		return nil, err
	}

	grid := req.Grid
	if grid == (field.Grid{}) {
		grid = meta.DefaultGrid
	}
	tEnd := req.TEnd
	if tEnd == 0 {
		tEnd = meta.DefaultTEnd
	}
	interval := req.SnapshotInterval
	if interval == 0 {
		interval = tEnd / 10
	}
	radius := req.WindowRadius
	if radius == 0 {
		radius = 2
	}

	combos := expandCombos(req.Params)
	summary := &Summary{
		RunID:  uuid.New().String(),
		Model:  req.Model,
		Status: StatusRunning,
	}
	log.Printf("sweep %s: model=%s combos=%d grid=%dx%d t_end=%g", summary.RunID, req.Model, len(combos), grid.Nx, grid.Ny, tEnd)

	if r.DB != nil {
		if err := r.DB.InsertRun(&store.SweepRun{RunID: summary.RunID, Model: req.Model, Notes: req.Notes}); err != nil {
			return nil, err
		}
	}

	for i, combo := range combos {
		if err := ctx.Err(); err != nil {
			summary.Status = StatusError
			return summary, err
		}

		result, err := r.runCombo(ctx, req.Model, grid, combo, tEnd, interval, radius, meta)
		if err != nil {
			summary.Status = StatusError
			return summary, fmt.Errorf("combo %v: %w", combo, err)
		}

		summary.Results = append(summary.Results, result)
		if r.DB != nil {
			sample := &store.SweepSample{
				RunID:       summary.RunID,
				Params:      combo,
				SpotCount:   result.SpotCount,
				LengthScale: result.LengthScale,
				NoPattern:   result.NoPattern,
				MassDrift:   result.MassDrift,
			}
			if err := r.DB.InsertSample(sample); err != nil {
				summary.Status = StatusError
				return summary, err
			}
		}
		log.Printf("sweep %s: combo %d/%d %v -> spots=%d scale=%g", summary.RunID, i+1, len(combos), combo, result.SpotCount, result.LengthScale)
	}

	summary.Status = StatusComplete
	return summary, nil
}

func (r *Runner) runCombo(ctx context.Context, model string, grid field.Grid, combo map[string]float64, tEnd, interval float64, radius int, meta models.Meta) (ComboResult, error) {
	sys, init, _, err := models.Build(model, grid, combo)
	if err != nil {
		return ComboResult{}, err
	}

	res, err := rd.Run(ctx, sys, init, rd.Config{TEnd: tEnd, SnapshotInterval: interval})
	if err != nil {
		return ComboResult{}, err
	}

	final := res.Final(res.SpeciesIndex(meta.PatternSpecies))
	sample, err := diag.MeasurePattern(final, radius)
	if err != nil {
		return ComboResult{}, err
	}

	drift, err := massDrift(res, meta)
	if err != nil {
		return ComboResult{}, err
	}

	return ComboResult{
		Params:      combo,
		SpotCount:   sample.SpotCount,
		LengthScale: sample.LengthScale,
		NoPattern:   sample.NoPattern,
		MassDrift:   drift,
	}, nil
}

// massDrift measures conservation of the model's first conserved group, or
// of the pattern species itself for models without one.
func massDrift(res *rd.Result, meta models.Meta) (float64, error) {
	if len(meta.Conserved) > 0 {
		series, err := diag.GroupMassSeries(res, meta.Conserved[0])
		if err != nil {
			return 0, err
		}
		return diag.MaxRelativeDrift(series), nil
	}
	idx := res.SpeciesIndex(meta.PatternSpecies)
	return diag.MaxRelativeDrift(diag.MassSeries(res, idx)), nil
}

// expandCombos builds the cartesian product of all parameter values, in
// deterministic order (parameters sorted by name, values in given order).
func expandCombos(params []Param) []map[string]float64 {
	sorted := append([]Param(nil), params...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	combos := []map[string]float64{{}}
	for _, p := range sorted {
		var next []map[string]float64
		for _, base := range combos {
			for _, v := range p.Values {
				combo := make(map[string]float64, len(base)+1)
				for k, bv := range base {
					combo[k] = bv
				}
				combo[p.Name] = v
				next = append(next, combo)
			}
		}
		combos = next
	}
	return combos
}
