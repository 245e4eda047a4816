package diag

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ExpFit is the result of fitting c(x) = Amplitude * exp(-x/Length) to a
// sampled profile.
type ExpFit struct {
	Amplitude float64
	Length    float64
	R2        float64
}

// FitExpDecay fits an exponential decay by linear regression of log(c)
// against x (gonum stat.LinearRegression). Samples with non-positive c are
// skipped; at least three positive samples are required. Fitting a growing
// profile (non-negative slope) is reported as an error rather than a
// negative length.
func FitExpDecay(xs, cs []float64) (ExpFit, error) {
	if len(xs) != len(cs) {
		return ExpFit{}, fmt.Errorf("fit: %d x values for %d samples", len(xs), len(cs))
	}

	var fx, fy []float64
	for i, c := range cs {
		if c > 0 {
			fx = append(fx, xs[i])
			fy = append(fy, math.Log(c))
		}
	}
	if len(fx) < 3 {
		return ExpFit{}, fmt.Errorf("fit: only %d positive samples, need at least 3", len(fx))
	}

	alpha, beta := stat.LinearRegression(fx, fy, nil, false)
	if beta >= 0 {
		return ExpFit{}, fmt.Errorf("fit: profile does not decay (slope %g)", beta)
	}
	r2 := stat.RSquared(fx, fy, nil, alpha, beta)

	return ExpFit{
		Amplitude: math.Exp(alpha),
		Length:    -1 / beta,
		R2:        r2,
	}, nil
}
