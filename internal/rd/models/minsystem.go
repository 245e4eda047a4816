package models

import (
	"fmt"
	"math/rand"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
)

// MinParams parameterizes the in-vitro Min protein system with four species:
// cytosolic MinD-ATP (cD) and MinE (cE) diffusing fast, membrane-bound MinD
// (md) and MinDE complexes (mde) diffusing slowly. The kinetics follow the
// standard skeleton model: spontaneous and cooperative MinD attachment,
// MinE recruitment into MinDE complexes, and complex-driven detachment that
// releases both proteins back into the cytosol. All reactions move protein
// between pools, so the total MinD mass (cD+md+mde) and MinE mass (cE+mde)
// are conserved.
type MinParams struct {
	DCytD float64 // cytosolic MinD diffusivity
	DCytE float64 // cytosolic MinE diffusivity
	DMem  float64 // membrane diffusivity (both bound species)

	OmegaD  float64 // spontaneous MinD attachment rate
	OmegaDD float64 // cooperative MinD recruitment rate
	OmegaE  float64 // MinE recruitment rate
	OmegaDE float64 // MinDE detachment rate

	TotalD float64 // mean MinD concentration
	TotalE float64 // mean MinE concentration

	NoiseAmplitude float64 // initial perturbation amplitude
	Seed           int64   // RNG seed for the initial perturbation
}

// DefaultMinParams returns a parameter set in the oscillatory regime used in
// the exercises. Rates are in 1/s, diffusivities in length^2/s with the
// domain measured in micrometres.
func DefaultMinParams() MinParams {
	return MinParams{
		DCytD:          12.5,
		DCytE:          12.5,
		DMem:           0.013,
		OmegaD:         0.1,
		OmegaDD:        0.9,
		OmegaE:         0.4,
		OmegaDE:        0.7,
		TotalD:         1.0,
		TotalE:         0.35,
		NoiseAmplitude: 0.01,
		Seed:           1,
	}
}

func (p MinParams) validate() error {
	if p.DCytD <= 0 || p.DCytE <= 0 || p.DMem < 0 {
		return fmt.Errorf("min-system diffusivities invalid: DcD=%g DcE=%g Dm=%g", p.DCytD, p.DCytE, p.DMem)
	}
	if p.OmegaD < 0 || p.OmegaDD < 0 || p.OmegaE < 0 || p.OmegaDE <= 0 {
		return fmt.Errorf("min-system rates invalid: wD=%g wdD=%g wE=%g wde=%g", p.OmegaD, p.OmegaDD, p.OmegaE, p.OmegaDE)
	}
	if p.TotalD <= 0 || p.TotalE <= 0 {
		return fmt.Errorf("min-system total concentrations must be positive: D=%g E=%g", p.TotalD, p.TotalE)
	}
	return nil
}

// NewMinSystem builds the Min system on the given grid. Initial conditions
// are the homogeneous pools plus a small seeded random perturbation of the
// membrane species; without the perturbation the homogeneous state never
// destabilizes into a pattern.
func NewMinSystem(g field.Grid, p MinParams) (*rd.System, []*field.Field, error) {
	if err := p.validate(); err != nil {
		return nil, nil, err
	}

	wD, wdD, wE, wde := p.OmegaD, p.OmegaDD, p.OmegaE, p.OmegaDE
	sys := &rd.System{
		Grid: g,
		Species: []rd.Species{
			{Name: "cD", Diffusivity: p.DCytD},
			{Name: "cE", Diffusivity: p.DCytE},
			{Name: "md", Diffusivity: p.DMem},
			{Name: "mde", Diffusivity: p.DMem},
		},
		Reaction: func(t float64, conc, rate []float64) {
			cD, cE, md, mde := conc[0], conc[1], conc[2], conc[3]

			attach := (wD + wdD*md) * cD // cD -> md
			recruit := wE * md * cE      // md + cE -> mde
			detach := wde * mde          // mde -> cD + cE

			rate[0] = -attach + detach
			rate[1] = -recruit + detach
			rate[2] = attach - recruit
			rate[3] = recruit - detach
		},
	}

	rng := rand.New(rand.NewSource(p.Seed))
	noise := func() float64 { return rng.Float64() - 0.5 }

	cD := field.NewUniform(g, p.TotalD)
	cE := field.NewUniform(g, p.TotalE)
	md := field.NewUniform(g, 0)
	mde := field.NewUniform(g, 0)
	if p.NoiseAmplitude > 0 {
		cD.AddNoise(p.NoiseAmplitude, noise)
		cE.AddNoise(p.NoiseAmplitude, noise)
	}

	return sys, []*field.Field{cD, cE, md, mde}, nil
}
