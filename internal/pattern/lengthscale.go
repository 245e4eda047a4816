package pattern

import (
	"fmt"
	"math"
	"sort"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
)

// EstimateLengthScale derives the characteristic spacing between pattern
// features from the spot density: sqrt(domainArea / spotCount).
//
// This is a mean-field approximation assuming the spots tile the domain
// roughly uniformly; it is not an actual nearest-neighbour statistic. For
// strongly clustered spots see NearestNeighborSpacing, which computes the
// exact (and more expensive) distance-based figure.
//
// A field with zero spots returns ErrNoPattern rather than a numeric result,
// so a homogeneous steady state never turns into a division by zero.
func EstimateLengthScale(f *field.Field, windowRadius int, domainArea float64) (float64, error) {
	_, scale, err := AnalyzeField(f, windowRadius, domainArea)
	return scale, err
}

// AnalyzeField is EstimateLengthScale returning the detected spots as well,
// for callers that want to render or post-process the coordinates.
func AnalyzeField(f *field.Field, windowRadius int, domainArea float64) ([]Spot, float64, error) {
	if domainArea <= 0 {
		return nil, 0, fmt.Errorf("%w: domain area %g must be positive", ErrInvalidConfig, domainArea)
	}

	spots, err := FindSpots(f, windowRadius)
	if err != nil {
		return nil, 0, err
	}
	if len(spots) == 0 {
		return nil, 0, ErrNoPattern
	}
	return spots, math.Sqrt(domainArea / float64(len(spots))), nil
}

// NearestNeighborSpacing returns the mean over all spots of the periodic
// distance to the closest other spot, in the grid's physical units. It needs
// at least two spots; with fewer there is no neighbour to measure against.
func NearestNeighborSpacing(g field.Grid, spots []Spot) (float64, error) {
	if len(spots) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 spots, got %d", ErrNoPattern, len(spots))
	}

	sum := 0.0
	for i, s := range spots {
		nearest := math.Inf(1)
		for j, o := range spots {
			if i == j {
				continue
			}
			if d := g.MinImageDistance(s.X, s.Y, o.X, o.Y); d < nearest {
				nearest = d
			}
		}
		sum += nearest
	}
	return sum / float64(len(spots)), nil
}

// SortSpots orders spots by (Y, X). FindSpots already emits this order;
// the helper exists for callers that merged or filtered spot lists.
func SortSpots(spots []Spot) {
	sort.Slice(spots, func(i, j int) bool {
		if spots[i].Y != spots[j].Y {
			return spots[i].Y < spots[j].Y
		}
		return spots[i].X < spots[j].X
	})
}
