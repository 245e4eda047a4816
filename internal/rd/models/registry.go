package models

import (
	"fmt"
	"sort"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
)

// Meta describes how the analysis tooling should treat a model's output.
type Meta struct {
	// PatternSpecies is the species the estimator and renderers look at.
	PatternSpecies string

	// DefaultGrid is a grid on which the model shows its patterns at the
	// default parameters.
	DefaultGrid field.Grid

	// DefaultTEnd is a simulated time long enough to reach the patterned
	// (or steady) state at the default parameters.
	DefaultTEnd float64

	// Conserved lists species groups whose summed mass should stay constant,
	// used by the mass-conservation diagnostic.
	Conserved [][]string

	// GradientLength is the analytic decay length of the steady profile,
	// or 0 for models without one. The gradient-fitting exercise compares
	// the fitted length against it.
	GradientLength float64
}

// Build constructs a named model on the given grid, applying parameter
// overrides by name. Unknown model or parameter names are errors; the sweep
// runner relies on that to catch typos before burning simulation time.
func Build(name string, g field.Grid, overrides map[string]float64) (*rd.System, []*field.Field, Meta, error) {
	switch name {
	case "sourcedeg":
		p := DefaultSourceDegParams()
		if err := applyOverrides(overrides, map[string]*float64{
			"d":           &p.D,
			"k":           &p.K,
			"source_rate": &p.SourceRate,
		}); err != nil {
			return nil, nil, Meta{}, err
		}
		sys, init, err := NewSourceDegradation(g, p)
		if err != nil {
			return nil, nil, Meta{}, err
		}
		return sys, init, Meta{
			PatternSpecies: "c",
			DefaultGrid:    field.MustGrid(64, 64, 20, 20),
			DefaultTEnd:    40,
			GradientLength: p.GradientLength(),
		}, nil

	case "min":
		p := DefaultMinParams()
		if err := applyOverrides(overrides, map[string]*float64{
			"d_cyt_d":  &p.DCytD,
			"d_cyt_e":  &p.DCytE,
			"d_mem":    &p.DMem,
			"omega_d":  &p.OmegaD,
			"omega_dd": &p.OmegaDD,
			"omega_e":  &p.OmegaE,
			"omega_de": &p.OmegaDE,
			"total_d":  &p.TotalD,
			"total_e":  &p.TotalE,
		}); err != nil {
			return nil, nil, Meta{}, err
		}
		sys, init, err := NewMinSystem(g, p)
		if err != nil {
			return nil, nil, Meta{}, err
		}
		return sys, init, Meta{
			PatternSpecies: "md",
			DefaultGrid:    field.MustGrid(64, 64, 50, 50),
			DefaultTEnd:    200,
			Conserved:      [][]string{{"cD", "md", "mde"}, {"cE", "mde"}},
		}, nil

	case "fhn":
		p := DefaultFHNParams()
		if err := applyOverrides(overrides, map[string]*float64{
			"du":  &p.Du,
			"dv":  &p.Dv,
			"eps": &p.Eps,
			"a":   &p.A,
			"b":   &p.B,
		}); err != nil {
			return nil, nil, Meta{}, err
		}
		sys, init, err := NewFHN(g, p)
		if err != nil {
			return nil, nil, Meta{}, err
		}
		return sys, init, Meta{
			PatternSpecies: "u",
			DefaultGrid:    field.MustGrid(96, 96, 100, 100),
			DefaultTEnd:    50,
		}, nil

	default:
		return nil, nil, Meta{}, fmt.Errorf("unknown model %q (available: %v)", name, Names())
	}
}

// Names lists the registered model names.
func Names() []string {
	names := []string{"fhn", "min", "sourcedeg"}
	sort.Strings(names)
	return names
}

func applyOverrides(overrides map[string]float64, params map[string]*float64) error {
	for name, v := range overrides {
		dst, ok := params[name]
		if !ok {
			known := make([]string, 0, len(params))
			for k := range params {
				known = append(known, k)
			}
			sort.Strings(known)
			return fmt.Errorf("unknown parameter %q (available: %v)", name, known)
		}
		*dst = v
	}
	return nil
}
