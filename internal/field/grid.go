// Package field provides periodic rectangular grids, scalar concentration
// fields on those grids, and region masks. Fields are stored as flat
// row-major slices; all index arithmetic wraps at the boundaries, modelling
// a domain without edges.
package field

import (
	"fmt"
	"math"
)

// Grid describes a rectangular periodic grid: Nx by Ny cells covering a
// physical domain of extent Lx by Ly.
type Grid struct {
	Nx, Ny int
	Lx, Ly float64
}

// NewGrid validates the dimensions and returns the grid.
func NewGrid(nx, ny int, lx, ly float64) (Grid, error) {
	if nx <= 0 || ny <= 0 {
		return Grid{}, fmt.Errorf("grid dimensions must be positive, got %dx%d", nx, ny)
	}
	if lx <= 0 || ly <= 0 {
		return Grid{}, fmt.Errorf("grid extent must be positive, got %gx%g", lx, ly)
	}
	return Grid{Nx: nx, Ny: ny, Lx: lx, Ly: ly}, nil
}

// MustGrid is NewGrid for fixed dimensions known to be valid. Panics on
// invalid input; intended for test setup and model defaults.
func MustGrid(nx, ny int, lx, ly float64) Grid {
	g, err := NewGrid(nx, ny, lx, ly)
	if err != nil {
		panic(err)
	}
	return g
}

// Dx returns the cell size along x.
func (g Grid) Dx() float64 { return g.Lx / float64(g.Nx) }

// Dy returns the cell size along y.
func (g Grid) Dy() float64 { return g.Ly / float64(g.Ny) }

// Area returns the physical area of the domain.
func (g Grid) Area() float64 { return g.Lx * g.Ly }

// CellArea returns the physical area of a single cell.
func (g Grid) CellArea() float64 { return g.Dx() * g.Dy() }

// Cells returns the total cell count.
func (g Grid) Cells() int { return g.Nx * g.Ny }

// WrapX maps an x index onto [0, Nx) with periodic wraparound.
func (g Grid) WrapX(x int) int {
	x %= g.Nx
	if x < 0 {
		x += g.Nx
	}
	return x
}

// WrapY maps a y index onto [0, Ny) with periodic wraparound.
func (g Grid) WrapY(y int) int {
	y %= g.Ny
	if y < 0 {
		y += g.Ny
	}
	return y
}

// Index returns the flat row-major index of the (wrapped) cell (x, y).
func (g Grid) Index(x, y int) int {
	return g.WrapY(y)*g.Nx + g.WrapX(x)
}

// MinImageDistance returns the shortest physical distance between two cell
// centres on the periodic domain (minimum-image convention).
func (g Grid) MinImageDistance(x0, y0, x1, y1 int) float64 {
	dx := wrapDelta(float64(x1-x0)*g.Dx(), g.Lx)
	dy := wrapDelta(float64(y1-y0)*g.Dy(), g.Ly)
	return math.Hypot(dx, dy)
}

func wrapDelta(d, l float64) float64 {
	for d > l/2 {
		d -= l
	}
	for d < -l/2 {
		d += l
	}
	return d
}
