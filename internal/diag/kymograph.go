package diag

import (
	"fmt"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
)

// Kymograph is a space-time matrix: one spatial cut of the field per
// recorded snapshot. Rows[i][x] is the value at position x and time Times[i].
type Kymograph struct {
	Times []float64
	Xs    []float64 // physical positions along the cut
	Rows  [][]float64
}

// RowKymograph assembles a kymograph from the grid row y of every snapshot
// of the given species. The classic way to show travelling Min waves.
func RowKymograph(res *rd.Result, species, y int) (*Kymograph, error) {
	if len(res.Snapshots) == 0 {
		return nil, fmt.Errorf("result has no snapshots")
	}
	if species < 0 || species >= len(res.Species) {
		return nil, fmt.Errorf("species index %d out of range", species)
	}
	g := res.Snapshots[0][species].Grid
	if y < 0 || y >= g.Ny {
		return nil, fmt.Errorf("row %d outside grid of height %d", y, g.Ny)
	}

	k := &Kymograph{Times: append([]float64(nil), res.Times...)}
	for x := 0; x < g.Nx; x++ {
		k.Xs = append(k.Xs, (float64(x)+0.5)*g.Dx())
	}
	for _, snap := range res.Snapshots {
		row := make([]float64, g.Nx)
		for x := 0; x < g.Nx; x++ {
			row[x] = snap[species].At(x, y)
		}
		k.Rows = append(k.Rows, row)
	}
	return k, nil
}

// MeanProfileX averages a species field over y for every x, producing the
// 1D concentration profile used in the gradient-fitting exercise.
func MeanProfileX(res *rd.Result, species, snapshot int) (xs, cs []float64, err error) {
	if snapshot < 0 || snapshot >= len(res.Snapshots) {
		return nil, nil, fmt.Errorf("snapshot index %d out of range", snapshot)
	}
	if species < 0 || species >= len(res.Species) {
		return nil, nil, fmt.Errorf("species index %d out of range", species)
	}
	f := res.Snapshots[snapshot][species]
	g := f.Grid

	xs = make([]float64, g.Nx)
	cs = make([]float64, g.Nx)
	for x := 0; x < g.Nx; x++ {
		sum := 0.0
		for y := 0; y < g.Ny; y++ {
			sum += f.At(x, y)
		}
		xs[x] = (float64(x) + 0.5) * g.Dx()
		cs[x] = sum / float64(g.Ny)
	}
	return xs, cs, nil
}
