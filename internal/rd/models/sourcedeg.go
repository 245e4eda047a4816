// Package models bundles the reaction-diffusion systems used in the course:
// a membrane source-degradation process, the Min protein oscillation system,
// and the FitzHugh-Nagumo model. Each constructor returns a ready-to-run
// rd.System plus initial fields; parameters can be overridden by name for
// sweeps.
package models

import (
	"fmt"
	"math"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
)

// SourceDegParams parameterizes the source-degradation process
//
//	dc/dt = D lap(c) - k c + s * membrane
//
// where the source s acts only on a membrane stripe. The steady-state
// profile decays away from the membrane with the gradient length sqrt(D/k).
type SourceDegParams struct {
	D           float64 // diffusivity
	K           float64 // degradation rate
	SourceRate  float64 // production rate on the membrane band
	StripeWidth int     // membrane band width in cells
}

// DefaultSourceDegParams returns the parameter set used in the exercises.
func DefaultSourceDegParams() SourceDegParams {
	return SourceDegParams{
		D:           1.0,
		K:           0.25,
		SourceRate:  1.0,
		StripeWidth: 2,
	}
}

// GradientLength returns the analytic decay length sqrt(D/k) of the
// steady-state concentration profile, the quantity students recover by
// fitting an exponential to the simulated profile.
func (p SourceDegParams) GradientLength() float64 {
	return math.Sqrt(p.D / p.K)
}

func (p SourceDegParams) validate() error {
	if p.D <= 0 || p.K <= 0 || p.SourceRate <= 0 {
		return fmt.Errorf("source-degradation parameters must be positive: D=%g k=%g s=%g", p.D, p.K, p.SourceRate)
	}
	if p.StripeWidth <= 0 {
		return fmt.Errorf("membrane stripe width %d must be positive", p.StripeWidth)
	}
	return nil
}

// NewSourceDegradation builds the system on the given grid with the membrane
// band at x=0. The single species "c" starts from zero everywhere.
func NewSourceDegradation(g field.Grid, p SourceDegParams) (*rd.System, []*field.Field, error) {
	if err := p.validate(); err != nil {
		return nil, nil, err
	}

	k := p.K
	sys := &rd.System{
		Grid:    g,
		Species: []rd.Species{{Name: "c", Diffusivity: p.D}},
		Reaction: func(t float64, conc, rate []float64) {
			rate[0] = -k * conc[0]
		},
		Sources: []rd.Source{{Species: 0, Rate: p.SourceRate, Mask: field.StripeX(g, 0, p.StripeWidth)}},
	}
	return sys, []*field.Field{field.New(g)}, nil
}
