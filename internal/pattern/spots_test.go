package pattern

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
)

// peakField builds an nx x ny field that is zero everywhere except for
// single-cell peaks of the given height at the listed coordinates.
func peakField(t *testing.T, nx, ny int, height float64, peaks [][2]int) *field.Field {
	t.Helper()
	f := field.New(field.MustGrid(nx, ny, float64(nx), float64(ny)))
	for _, p := range peaks {
		f.Set(p[0], p[1], height)
	}
	return f
}

func TestFindSpotsSinglePeak(t *testing.T) {
	testCases := []struct {
		name   string
		nx, ny int
		peak   [2]int
	}{
		{"centre", 16, 16, [2]int{8, 8}},
		{"origin", 16, 16, [2]int{0, 0}},
		{"last_index_x", 16, 16, [2]int{15, 7}},
		{"last_index_y", 16, 16, [2]int{7, 15}},
		{"corner_wrap", 16, 16, [2]int{15, 15}},
		{"rectangular_grid", 24, 12, [2]int{23, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := peakField(t, tc.nx, tc.ny, 1.0, [][2]int{tc.peak})
			spots, err := FindSpots(f, 1)
			if err != nil {
				t.Fatalf("FindSpots: %v", err)
			}
			want := []Spot{{X: tc.peak[0], Y: tc.peak[1]}}
			if diff := cmp.Diff(want, spots); diff != "" {
				t.Errorf("spot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEstimateSingleMaximumEqualsSqrtArea(t *testing.T) {
	f := field.New(field.MustGrid(20, 20, 5, 5))
	// A smooth bump with one strict global maximum and no ties.
	f.AddGaussian(11, 7, 1.0, 3.0)

	area := f.Grid.Area()
	scale, err := EstimateLengthScale(f, 1, area)
	if err != nil {
		t.Fatalf("EstimateLengthScale: %v", err)
	}
	if want := math.Sqrt(area); math.Abs(scale-want) > 1e-12 {
		t.Errorf("scale = %g, want sqrt(area) = %g", scale, want)
	}
}

func TestEstimateEvenTiling(t *testing.T) {
	// 4x4 = 16 sharp peaks evenly spaced on a 32x32 grid.
	var peaks [][2]int
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			peaks = append(peaks, [2]int{4 + 8*px, 4 + 8*py})
		}
	}
	f := peakField(t, 32, 32, 2.0, peaks)

	const area = 64.0
	spots, scale, err := AnalyzeField(f, 1, area)
	if err != nil {
		t.Fatalf("AnalyzeField: %v", err)
	}
	if len(spots) != len(peaks) {
		t.Fatalf("spot count = %d, want %d", len(spots), len(peaks))
	}
	if want := math.Sqrt(area / float64(len(peaks))); math.Abs(scale-want) > 1e-12 {
		t.Errorf("scale = %g, want %g", scale, want)
	}
}

func TestFindSpotsIdempotent(t *testing.T) {
	f := field.New(field.MustGrid(24, 24, 10, 10))
	f.AddGaussian(3, 20, 0.8, 1.0)
	f.AddGaussian(15, 6, 0.8, 1.5)

	first, err := FindSpots(f, 2)
	if err != nil {
		t.Fatalf("first FindSpots: %v", err)
	}
	second, err := FindSpots(f, 2)
	if err != nil {
		t.Fatalf("second FindSpots: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated calls disagree (-first +second):\n%s", diff)
	}

	s1, err := EstimateLengthScale(f, 2, f.Grid.Area())
	if err != nil {
		t.Fatalf("first estimate: %v", err)
	}
	s2, err := EstimateLengthScale(f, 2, f.Grid.Area())
	if err != nil {
		t.Fatalf("second estimate: %v", err)
	}
	if s1 != s2 {
		t.Errorf("estimates differ: %g vs %g", s1, s2)
	}
}

func TestFlatFieldNoPattern(t *testing.T) {
	for _, v := range []float64{0, 1, -3.5} {
		f := field.NewUniform(field.MustGrid(10, 10, 1, 1), v)

		spots, err := FindSpots(f, 1)
		if err != nil {
			t.Fatalf("FindSpots on flat field: %v", err)
		}
		if len(spots) != 0 {
			t.Errorf("flat field at %g produced %d spots", v, len(spots))
		}

		scale, err := EstimateLengthScale(f, 1, 1.0)
		if !errors.Is(err, ErrNoPattern) {
			t.Errorf("flat field at %g: err = %v, want ErrNoPattern", v, err)
		}
		// The zero value, never NaN or a division-by-zero artifact.
		if scale != 0 || math.IsNaN(scale) {
			t.Errorf("flat field at %g: scale = %g, want 0", v, scale)
		}
	}
}

// naiveFindSpots is a deliberately broken reference that clips the window at
// the array edges instead of wrapping. It documents the failure mode the
// periodic scan exists to avoid.
func naiveFindSpots(f *field.Field, r int) []Spot {
	g := f.Grid
	var spots []Spot
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			v := f.At(x, y)
			max := true
			for dy := -r; dy <= r && max; dy++ {
				for dx := -r; dx <= r; dx++ {
					nx, ny := x+dx, y+dy
					if dx == 0 && dy == 0 {
						continue
					}
					if nx < 0 || nx >= g.Nx || ny < 0 || ny >= g.Ny {
						continue
					}
					if f.At(nx, ny) >= v {
						max = false
						break
					}
				}
			}
			if max {
				spots = append(spots, Spot{X: x, Y: y})
			}
		}
	}
	return spots
}

func TestEdgePeakWrapsAcrossBoundary(t *testing.T) {
	// A cone descending away from a single peak sitting on the boundary at
	// (0, 8). The cell (15, 8) just across the boundary slopes down towards
	// the far edge, so a clipped scan sees it as a second maximum; the
	// periodic scan compares it against its true wrapped neighbour (0, 8)
	// and rejects it.
	g := field.MustGrid(16, 16, 4, 4)
	f := field.New(g)
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			f.Set(x, y, -g.MinImageDistance(0, 8, x, y))
		}
	}

	spots, err := FindSpots(f, 1)
	if err != nil {
		t.Fatalf("FindSpots: %v", err)
	}
	want := []Spot{{X: 0, Y: 8}}
	if diff := cmp.Diff(want, spots); diff != "" {
		t.Errorf("periodic scan (-want +got):\n%s", diff)
	}

	// The clipped scan must actually miss the wraparound here, otherwise
	// this test would not be exercising the boundary at all.
	naive := naiveFindSpots(f, 1)
	if len(naive) != 2 {
		t.Fatalf("naive scan found %d spots, expected 2 (the peak plus a spurious edge maximum)", len(naive))
	}
	spurious := Spot{X: 15, Y: 8}
	if naive[0] != spurious && naive[1] != spurious {
		t.Errorf("naive scan %v does not contain the spurious edge spot %v", naive, spurious)
	}
}

func TestLargerWindowSuppressesCloseGaussianPeaks(t *testing.T) {
	// Two Gaussian bumps four cells apart: each is a strict local maximum in
	// a radius-1 window, but with radius >= 4 the taller bump shadows the
	// smaller one.
	g := field.MustGrid(32, 32, 8, 8)
	f := field.New(g)
	f.AddGaussian(14, 16, 0.3, 1.0)
	f.AddGaussian(18, 16, 0.3, 0.9)

	var prev int
	for r := 1; r <= 6; r++ {
		spots, err := FindSpots(f, r)
		if err != nil {
			t.Fatalf("radius %d: %v", r, err)
		}
		if r > 1 && len(spots) > prev {
			t.Errorf("radius %d found %d spots, more than %d at radius %d", r, len(spots), prev, r-1)
		}
		prev = len(spots)
	}

	small, err := FindSpots(f, 1)
	if err != nil {
		t.Fatalf("radius 1: %v", err)
	}
	large, err := FindSpots(f, 6)
	if err != nil {
		t.Fatalf("radius 6: %v", err)
	}
	if len(small) != 2 || len(large) != 1 {
		t.Errorf("spot counts = %d (r=1), %d (r=6); want 2 and 1", len(small), len(large))
	}
}

func TestPlateauIsNotASpot(t *testing.T) {
	f := field.New(field.MustGrid(12, 12, 1, 1))
	// A 2x2 plateau above the background: every plateau cell ties with a
	// neighbour, so none qualifies under strict inequality.
	for _, p := range [][2]int{{5, 5}, {6, 5}, {5, 6}, {6, 6}} {
		f.Set(p[0], p[1], 1.0)
	}

	spots, err := FindSpots(f, 1)
	if err != nil {
		t.Fatalf("FindSpots: %v", err)
	}
	if len(spots) != 0 {
		t.Errorf("plateau produced %d spots, want 0", len(spots))
	}
}

func TestValidationErrors(t *testing.T) {
	valid := field.NewUniform(field.MustGrid(4, 4, 1, 1), 0)

	testCases := []struct {
		name    string
		field   *field.Field
		radius  int
		area    float64
		wantErr error
	}{
		{"nil_field", nil, 1, 1, ErrInvalidField},
		{"zero_radius", valid, 0, 1, ErrInvalidConfig},
		{"negative_radius", valid, -2, 1, ErrInvalidConfig},
		{"zero_area", valid, 1, 0, ErrInvalidConfig},
		{"negative_area", valid, 1, -4, ErrInvalidConfig},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EstimateLengthScale(tc.field, tc.radius, tc.area)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}

	t.Run("mismatched_values", func(t *testing.T) {
		bad := &field.Field{Grid: field.MustGrid(4, 4, 1, 1), Values: make([]float64, 3)}
		_, err := FindSpots(bad, 1)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("err = %v, want ErrInvalidField", err)
		}
	})
}

func TestNearestNeighborSpacing(t *testing.T) {
	g := field.MustGrid(16, 16, 16, 16)

	t.Run("square_lattice", func(t *testing.T) {
		spots := []Spot{{4, 4}, {12, 4}, {4, 12}, {12, 12}}
		d, err := NearestNeighborSpacing(g, spots)
		if err != nil {
			t.Fatalf("NearestNeighborSpacing: %v", err)
		}
		// Every spot's nearest neighbour is 8 cells = 8 units away (also
		// through the periodic boundary).
		if math.Abs(d-8) > 1e-12 {
			t.Errorf("spacing = %g, want 8", d)
		}
	})

	t.Run("wraps_boundary", func(t *testing.T) {
		spots := []Spot{{1, 8}, {15, 8}}
		d, err := NearestNeighborSpacing(g, spots)
		if err != nil {
			t.Fatalf("NearestNeighborSpacing: %v", err)
		}
		// 2 cells apart through the boundary, not 14 across the interior.
		if math.Abs(d-2) > 1e-12 {
			t.Errorf("spacing = %g, want 2", d)
		}
	})

	t.Run("too_few_spots", func(t *testing.T) {
		_, err := NearestNeighborSpacing(g, []Spot{{3, 3}})
		if !errors.Is(err, ErrNoPattern) {
			t.Errorf("err = %v, want ErrNoPattern", err)
		}
	})
}
