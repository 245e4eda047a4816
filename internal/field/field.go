package field

import (
	"fmt"
	"math"
)

// Field holds scalar concentration values on a periodic grid. Values are
// stored row-major: index = y*Nx + x (same layout the integrator and the
// estimator iterate over).
type Field struct {
	Grid   Grid
	Values []float64
}

// New returns a zero-valued field on the given grid.
func New(g Grid) *Field {
	return &Field{Grid: g, Values: make([]float64, g.Cells())}
}

// NewUniform returns a field with every cell set to v.
func NewUniform(g Grid, v float64) *Field {
	f := New(g)
	for i := range f.Values {
		f.Values[i] = v
	}
	return f
}

// FromValues wraps an existing value slice. The slice length must match the
// grid; the field takes ownership of the slice.
func FromValues(g Grid, values []float64) (*Field, error) {
	if len(values) != g.Cells() {
		return nil, fmt.Errorf("value count %d does not match %dx%d grid", len(values), g.Nx, g.Ny)
	}
	return &Field{Grid: g, Values: values}, nil
}

// At returns the value at (x, y) with periodic wraparound.
func (f *Field) At(x, y int) float64 {
	return f.Values[f.Grid.Index(x, y)]
}

// Set stores v at (x, y) with periodic wraparound.
func (f *Field) Set(x, y int, v float64) {
	f.Values[f.Grid.Index(x, y)] = v
}

// Add accumulates v at (x, y) with periodic wraparound.
func (f *Field) Add(x, y int, v float64) {
	f.Values[f.Grid.Index(x, y)] += v
}

// Clone returns an independent copy of the field. Snapshots recorded during
// a run are clones, so each captured state is immutable afterwards.
func (f *Field) Clone() *Field {
	c := New(f.Grid)
	copy(c.Values, f.Values)
	return c
}

// Total returns the integrated mass: the value sum weighted by cell area.
func (f *Field) Total() float64 {
	sum := 0.0
	for _, v := range f.Values {
		sum += v
	}
	return sum * f.Grid.CellArea()
}

// MinMax returns the smallest and largest cell values.
func (f *Field) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Finite reports whether every cell value is a finite number.
func (f *Field) Finite() bool {
	for _, v := range f.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AddGaussian deposits a Gaussian bump of the given amplitude and width
// (sigma, in physical units) centred on cell (cx, cy). Distances use the
// minimum-image convention so bumps placed near a boundary wrap correctly.
func (f *Field) AddGaussian(cx, cy int, sigma, amplitude float64) {
	g := f.Grid
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			r := g.MinImageDistance(cx, cy, x, y)
			f.Values[g.Index(x, y)] += amplitude * math.Exp(-r*r/(2*sigma*sigma))
		}
	}
}

// AddNoise perturbs every cell by amplitude*rnd() where rnd is supplied by
// the caller (typically rand.Float64 shifted to [-0.5, 0.5)). Keeping the
// random source outside the package keeps runs reproducible from a seed.
func (f *Field) AddNoise(amplitude float64, rnd func() float64) {
	for i := range f.Values {
		f.Values[i] += amplitude * rnd()
	}
}
