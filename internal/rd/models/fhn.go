package models

import (
	"fmt"
	"math/rand"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
)

// FHNParams parameterizes the FitzHugh-Nagumo activator-inhibitor model
//
//	du/dt = Du lap(u) + u - u^3 - v
//	dv/dt = Dv lap(v) + eps (u - a v - b)
//
// With Dv much larger than Du and suitable kinetics the homogeneous state is
// Turing-unstable and the system forms stationary spots whose spacing is the
// target of the length-scale exercises.
type FHNParams struct {
	Du  float64
	Dv  float64
	Eps float64
	A   float64
	B   float64

	NoiseAmplitude float64
	Seed           int64
}

// DefaultFHNParams returns a spot-forming parameter set.
func DefaultFHNParams() FHNParams {
	return FHNParams{
		Du:             1.0,
		Dv:             20.0,
		Eps:            1.0,
		A:              1.0,
		B:              -0.1,
		NoiseAmplitude: 0.1,
		Seed:           1,
	}
}

func (p FHNParams) validate() error {
	if p.Du <= 0 || p.Dv <= 0 {
		return fmt.Errorf("fhn diffusivities must be positive: Du=%g Dv=%g", p.Du, p.Dv)
	}
	if p.Eps <= 0 {
		return fmt.Errorf("fhn eps %g must be positive", p.Eps)
	}
	return nil
}

// NewFHN builds the FitzHugh-Nagumo system on the given grid, starting from
// the rest state plus a seeded random perturbation of the activator.
func NewFHN(g field.Grid, p FHNParams) (*rd.System, []*field.Field, error) {
	if err := p.validate(); err != nil {
		return nil, nil, err
	}

	eps, a, b := p.Eps, p.A, p.B
	sys := &rd.System{
		Grid: g,
		Species: []rd.Species{
			{Name: "u", Diffusivity: p.Du},
			{Name: "v", Diffusivity: p.Dv},
		},
		Reaction: func(t float64, conc, rate []float64) {
			u, v := conc[0], conc[1]
			rate[0] = u - u*u*u - v
			rate[1] = eps * (u - a*v - b)
		},
	}

	rng := rand.New(rand.NewSource(p.Seed))
	noise := func() float64 { return rng.Float64() - 0.5 }

	u := field.New(g)
	v := field.New(g)
	if p.NoiseAmplitude > 0 {
		u.AddNoise(p.NoiseAmplitude, noise)
	}

	return sys, []*field.Field{u, v}, nil
}
