package rd

import (
	"context"
	"math"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
)

// Result is the recorded time series of a run: one snapshot set (a clone of
// every species field) per recorded time.
type Result struct {
	Species   []string
	Times     []float64
	Snapshots [][]*field.Field
}

// Final returns the last recorded snapshot of the given species.
func (r *Result) Final(species int) *field.Field {
	return r.Snapshots[len(r.Snapshots)-1][species]
}

// SpeciesIndex returns the index of the named species in the result, or -1.
func (r *Result) SpeciesIndex(name string) int {
	for i, s := range r.Species {
		if s == name {
			return i
		}
	}
	return -1
}

// Run integrates the system from the given initial fields to cfg.TEnd,
// recording snapshots every cfg.SnapshotInterval of simulated time. The
// initial fields are not modified. Cancellation is checked between steps;
// a cancelled run returns the context error.
func Run(ctx context.Context, sys *System, init []*field.Field, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := sys.validate(init); err != nil {
		return nil, err
	}

	dt := cfg.Dt
	if dt == 0 {
		dt = stableStep(sys, cfg.SafetyFactor)
	}
	if dt > cfg.TEnd {
		dt = cfg.TEnd
	}

	nSpecies := len(sys.Species)
	cells := sys.Grid.Cells()

	cur := make([]*field.Field, nSpecies)
	next := make([]*field.Field, nSpecies)
	lap := make([][]float64, nSpecies)
	for i, f := range init {
		cur[i] = f.Clone()
		next[i] = field.New(sys.Grid)
		lap[i] = make([]float64, cells)
	}

	res := &Result{}
	for _, sp := range sys.Species {
		res.Species = append(res.Species, sp.Name)
	}
	record := func(t float64) {
		snap := make([]*field.Field, nSpecies)
		for i := range cur {
			snap[i] = cur[i].Clone()
		}
		res.Times = append(res.Times, t)
		res.Snapshots = append(res.Snapshots, snap)
	}
	record(0)

	conc := make([]float64, nSpecies)
	rate := make([]float64, nSpecies)

	t := 0.0
	nextSnap := cfg.SnapshotInterval
	for step := 1; t < cfg.TEnd; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		h := dt
		if t+h > cfg.TEnd {
			h = cfg.TEnd - t
		}

		for i := range cur {
			laplacian(cur[i], lap[i])
		}

		for c := 0; c < cells; c++ {
			for i := range cur {
				conc[i] = cur[i].Values[c]
				rate[i] = 0
			}
			if sys.Reaction != nil {
				sys.Reaction(t, conc, rate)
			}
			for i := range cur {
				next[i].Values[c] = conc[i] + h*(sys.Species[i].Diffusivity*lap[i][c]+rate[i])
			}
		}

		for _, src := range sys.Sources {
			vals := next[src.Species].Values
			for c, inside := range src.Mask.Cells {
				if inside {
					vals[c] += h * src.Rate
				}
			}
		}

		cur, next = next, cur
		t += h

		for i := range cur {
			if !cur[i].Finite() {
				return nil, &StepError{Time: t, Step: step, Wrapped: ErrUnstable}
			}
		}

		if t >= nextSnap-h/2 && t < cfg.TEnd {
			record(t)
			nextSnap += cfg.SnapshotInterval
		}
	}
	record(cfg.TEnd)

	return res, nil
}

// stableStep returns a forward-Euler step below the 2D diffusive stability
// limit dt <= min(dx,dy)^2 / (4 D). Reaction-only systems (maxD == 0) fall
// back to the same formula with D = 1 as a conservative default.
func stableStep(sys *System, safety float64) float64 {
	if safety == 0 {
		safety = 0.2
	}
	maxD := sys.maxDiffusivity()
	if maxD == 0 {
		maxD = 1
	}
	h := math.Min(sys.Grid.Dx(), sys.Grid.Dy())
	return safety * h * h / (4 * maxD)
}
