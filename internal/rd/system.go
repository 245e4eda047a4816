// Package rd integrates reaction-diffusion systems on periodic grids.
//
// A System names its species, assigns each a diffusivity, and supplies the
// local reaction kinetics as a Go closure evaluated pointwise. The stepper
// is a plain forward-Euler scheme with a diffusive stability clamp; it is
// deliberately minimal, just enough to drive the teaching models, and makes
// no attempt at symbolic right-hand sides or adaptive error control.
package rd

import (
	"fmt"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
)

// ReactionFunc computes the local reaction rates at one cell. conc holds the
// species concentrations at that cell in declaration order; the function
// writes d(conc)/dt into rate. Both slices have one entry per species and
// rate is pre-zeroed.
type ReactionFunc func(t float64, conc, rate []float64)

// Species declares one chemical species of a system.
type Species struct {
	Name        string
	Diffusivity float64
}

// Source is a constant production term restricted to a masked region,
// e.g. protein influx across a membrane band.
type Source struct {
	Species int
	Rate    float64
	Mask    *field.Mask
}

// System is a complete reaction-diffusion problem definition on a grid.
type System struct {
	Grid     field.Grid
	Species  []Species
	Reaction ReactionFunc
	Sources  []Source
}

// SpeciesIndex returns the index of the named species, or -1.
func (s *System) SpeciesIndex(name string) int {
	for i, sp := range s.Species {
		if sp.Name == name {
			return i
		}
	}
	return -1
}

func (s *System) validate(init []*field.Field) error {
	if len(s.Species) == 0 {
		return fmt.Errorf("%w: no species", ErrInvalidSystem)
	}
	for _, sp := range s.Species {
		if sp.Diffusivity < 0 {
			return fmt.Errorf("%w: species %q has negative diffusivity %g", ErrInvalidSystem, sp.Name, sp.Diffusivity)
		}
	}
	if len(init) != len(s.Species) {
		return fmt.Errorf("%w: %d initial fields for %d species", ErrInvalidSystem, len(init), len(s.Species))
	}
	for i, f := range init {
		if f == nil || f.Grid != s.Grid {
			return fmt.Errorf("%w: initial field %d not on the system grid", ErrInvalidSystem, i)
		}
	}
	for _, src := range s.Sources {
		if src.Species < 0 || src.Species >= len(s.Species) {
			return fmt.Errorf("%w: source references species %d", ErrInvalidSystem, src.Species)
		}
		if src.Mask == nil || src.Mask.Grid != s.Grid {
			return fmt.Errorf("%w: source mask not on the system grid", ErrInvalidSystem)
		}
	}
	return nil
}

// maxDiffusivity returns the largest diffusivity, used for the stability clamp.
func (s *System) maxDiffusivity() float64 {
	max := 0.0
	for _, sp := range s.Species {
		if sp.Diffusivity > max {
			max = sp.Diffusivity
		}
	}
	return max
}
