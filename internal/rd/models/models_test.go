package models

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
)

func TestSourceDegGradientLength(t *testing.T) {
	testCases := []struct {
		d, k float64
		want float64
	}{
		{1, 1, 1},
		{1, 0.25, 2},
		{4, 1, 2},
		{0.5, 2, 0.5},
	}
	for _, tc := range testCases {
		p := DefaultSourceDegParams()
		p.D, p.K = tc.d, tc.k
		if got := p.GradientLength(); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("GradientLength(D=%g, k=%g) = %g, want %g", tc.d, tc.k, got, tc.want)
		}
	}
}

func TestSourceDegApproachesSteadyMass(t *testing.T) {
	// At steady state production balances degradation:
	// total mass -> s * membraneArea / k.
	g := field.MustGrid(32, 8, 16, 4)
	p := DefaultSourceDegParams()
	sys, init, err := NewSourceDegradation(g, p)
	if err != nil {
		t.Fatalf("NewSourceDegradation: %v", err)
	}

	res, err := rd.Run(context.Background(), sys, init, rd.Config{
		TEnd:             60,
		SnapshotInterval: 20,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	membraneArea := float64(p.StripeWidth) * g.Dx() * g.Ly
	want := p.SourceRate * membraneArea / p.K
	got := res.Final(0).Total()
	if rel := math.Abs(got-want) / want; rel > 0.05 {
		t.Errorf("steady mass = %g, want %g (relative error %g)", got, want, rel)
	}
}

func TestMinSystemConservesProtein(t *testing.T) {
	g := field.MustGrid(16, 16, 10, 10)
	p := DefaultMinParams()
	sys, init, err := NewMinSystem(g, p)
	if err != nil {
		t.Fatalf("NewMinSystem: %v", err)
	}

	res, err := rd.Run(context.Background(), sys, init, rd.Config{
		TEnd:             2,
		SnapshotInterval: 1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	massOf := func(snap int, names ...string) float64 {
		total := 0.0
		for _, n := range names {
			i := res.SpeciesIndex(n)
			if i < 0 {
				t.Fatalf("species %q missing from result", n)
			}
			total += res.Snapshots[snap][i].Total()
		}
		return total
	}

	last := len(res.Snapshots) - 1
	for _, group := range [][]string{{"cD", "md", "mde"}, {"cE", "mde"}} {
		before := massOf(0, group...)
		after := massOf(last, group...)
		if rel := math.Abs(after-before) / before; rel > 1e-9 {
			t.Errorf("group %v mass drifted by %g relative", group, rel)
		}
	}
}

func TestMinSystemDeterministicInit(t *testing.T) {
	g := field.MustGrid(8, 8, 5, 5)
	p := DefaultMinParams()

	_, init1, err := NewMinSystem(g, p)
	if err != nil {
		t.Fatalf("NewMinSystem: %v", err)
	}
	_, init2, err := NewMinSystem(g, p)
	if err != nil {
		t.Fatalf("NewMinSystem: %v", err)
	}

	for s := range init1 {
		for i := range init1[s].Values {
			if init1[s].Values[i] != init2[s].Values[i] {
				t.Fatalf("species %d cell %d differs between seeded runs", s, i)
			}
		}
	}
}

func TestFHNRestStateStaysFinite(t *testing.T) {
	g := field.MustGrid(16, 16, 20, 20)
	p := DefaultFHNParams()
	sys, init, err := NewFHN(g, p)
	if err != nil {
		t.Fatalf("NewFHN: %v", err)
	}

	res, err := rd.Run(context.Background(), sys, init, rd.Config{
		TEnd:             1,
		SnapshotInterval: 0.5,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Final(0).Finite() || !res.Final(1).Finite() {
		t.Fatal("FHN fields picked up non-finite values")
	}
}

func TestBuildRegistry(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			sys, init, meta, err := Build(name, field.MustGrid(8, 8, 4, 4), nil)
			if err != nil {
				t.Fatalf("Build(%q): %v", name, err)
			}
			if sys.SpeciesIndex(meta.PatternSpecies) < 0 {
				t.Errorf("pattern species %q not in system", meta.PatternSpecies)
			}
			if len(init) != len(sys.Species) {
				t.Errorf("%d initial fields for %d species", len(init), len(sys.Species))
			}
			if meta.DefaultTEnd <= 0 {
				t.Errorf("DefaultTEnd = %g", meta.DefaultTEnd)
			}
		})
	}

	t.Run("override_applied", func(t *testing.T) {
		sys, _, meta, err := Build("sourcedeg", field.MustGrid(8, 8, 4, 4), map[string]float64{"d": 4, "k": 0.25})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if got := sys.Species[0].Diffusivity; got != 4 {
			t.Errorf("override not applied: D = %g", got)
		}
		// Meta reflects the overridden parameters: sqrt(4/0.25) = 4.
		if meta.GradientLength != 4 {
			t.Errorf("GradientLength = %g, want 4", meta.GradientLength)
		}
	})

	t.Run("unknown_model", func(t *testing.T) {
		_, _, _, err := Build("gray-scott", field.MustGrid(8, 8, 4, 4), nil)
		if err == nil || !strings.Contains(err.Error(), "unknown model") {
			t.Errorf("err = %v, want unknown model error", err)
		}
	})

	t.Run("unknown_parameter", func(t *testing.T) {
		_, _, _, err := Build("fhn", field.MustGrid(8, 8, 4, 4), map[string]float64{"gamma": 1})
		if err == nil || !strings.Contains(err.Error(), "unknown parameter") {
			t.Errorf("err = %v, want unknown parameter error", err)
		}
	})

	t.Run("invalid_override_value", func(t *testing.T) {
		_, _, _, err := Build("min", field.MustGrid(8, 8, 4, 4), map[string]float64{"total_d": -1})
		if err == nil {
			t.Error("negative total_d accepted")
		}
	})
}
