// Package diag computes the post-processing summaries the exercises ask
// for: mass-conservation bookkeeping, kymographs, exponential profile fits
// and spot counts. Everything here consumes rd.Result snapshots and returns
// plain numbers or matrices; rendering lives in internal/render.
package diag

import (
	"fmt"
	"math"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd"
)

// MassSeries returns the total integrated mass of one species at every
// recorded snapshot.
func MassSeries(res *rd.Result, species int) []float64 {
	out := make([]float64, len(res.Snapshots))
	for i, snap := range res.Snapshots {
		out[i] = snap[species].Total()
	}
	return out
}

// GroupMassSeries sums the masses of several species per snapshot, e.g. all
// MinD-containing pools.
func GroupMassSeries(res *rd.Result, names []string) ([]float64, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j := res.SpeciesIndex(n)
		if j < 0 {
			return nil, fmt.Errorf("species %q not in result", n)
		}
		idx[i] = j
	}

	out := make([]float64, len(res.Snapshots))
	for i, snap := range res.Snapshots {
		for _, j := range idx {
			out[i] += snap[j].Total()
		}
	}
	return out, nil
}

// MaxRelativeDrift returns the largest relative deviation of the series from
// its initial value. Zero initial mass yields the largest absolute value
// instead, so a leak from an empty pool is still visible.
func MaxRelativeDrift(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	ref := series[0]
	drift := 0.0
	for _, v := range series[1:] {
		d := math.Abs(v - ref)
		if ref != 0 {
			d /= math.Abs(ref)
		}
		if d > drift {
			drift = d
		}
	}
	return drift
}
