// Package pattern locates local-maximum "spots" in a 2D concentration field
// on a periodic grid and derives a characteristic length scale from the spot
// density. Detection and estimation are pure functions of their inputs;
// rendering the results is the caller's concern (see internal/render).
package pattern

import (
	"fmt"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
)

// Spot is a grid cell identified as a strict local maximum, the candidate
// centre of one pattern feature. Spots carry no identity across snapshots;
// they are recomputed fresh for every field queried.
type Spot struct {
	X, Y int
}

// FindSpots returns every cell whose value is strictly greater than all
// neighbours within the square window of the given radius, using periodic
// wraparound indexing. Plateaus of equal value are deliberately not spots:
// reaction-diffusion steady states can have flat regions, and a tie must not
// produce a forest of spurious maxima.
//
// Results are in row-major scan order, so repeated calls on the same field
// yield identical output.
func FindSpots(f *field.Field, windowRadius int) ([]Spot, error) {
	if err := validateField(f); err != nil {
		return nil, err
	}
	if windowRadius <= 0 {
		return nil, fmt.Errorf("%w: window radius %d must be positive", ErrInvalidConfig, windowRadius)
	}

	g := f.Grid
	var spots []Spot
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			if isLocalMax(f, x, y, windowRadius) {
				spots = append(spots, Spot{X: x, Y: y})
			}
		}
	}
	return spots, nil
}

// isLocalMax reports whether (x, y) strictly exceeds every distinct cell in
// its periodic window. On grids smaller than the window an offset can wrap
// back onto the centre cell itself; those offsets are skipped rather than
// letting a cell tie with its own wrapped image.
func isLocalMax(f *field.Field, x, y, r int) bool {
	g := f.Grid
	centre := g.Index(x, y)
	v := f.Values[centre]
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			idx := g.Index(x+dx, y+dy)
			if idx == centre {
				continue
			}
			if f.Values[idx] >= v {
				return false
			}
		}
	}
	return true
}

func validateField(f *field.Field) error {
	if f == nil {
		return fmt.Errorf("%w: nil field", ErrInvalidField)
	}
	if f.Grid.Nx <= 0 || f.Grid.Ny <= 0 {
		return fmt.Errorf("%w: empty %dx%d grid", ErrInvalidField, f.Grid.Nx, f.Grid.Ny)
	}
	if len(f.Values) != f.Grid.Cells() {
		return fmt.Errorf("%w: %d values on a %dx%d grid", ErrInvalidField, len(f.Values), f.Grid.Nx, f.Grid.Ny)
	}
	return nil
}
