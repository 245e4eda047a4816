// Package sweep runs parameter sweeps over the teaching models: expand
// parameter ranges into a cartesian grid of combinations, simulate each one,
// measure the resulting pattern, and persist/report the results.
package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RangeSpec defines a floating-point parameter range.
type RangeSpec struct {
	Min  float64
	Max  float64
	Step float64
}

// ParseRangeSpec parses a "min:max:step" string into a RangeSpec.
func ParseRangeSpec(s string) (RangeSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return RangeSpec{}, fmt.Errorf("invalid range format %q: expected min:max:step", s)
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid min value %q: %w", parts[0], err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid max value %q: %w", parts[1], err)
	}
	step, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid step value %q: %w", parts[2], err)
	}
	if step <= 0 {
		return RangeSpec{}, fmt.Errorf("step must be positive, got %g", step)
	}

	return RangeSpec{Min: min, Max: max, Step: step}, nil
}

// Values generates the range values from Min to Max inclusive. The count is
// capped so a typo in the step cannot allocate an absurd grid.
func (r RangeSpec) Values() []float64 {
	if r.Step <= 0 || r.Min > r.Max {
		return nil
	}

	const maxValues = 10000
	expected := int((r.Max-r.Min)/r.Step) + 1
	if expected < 0 || expected > maxValues {
		return nil
	}

	var out []float64
	for v := r.Min; v <= r.Max+r.Step/1000; v += r.Step {
		// Round away floating point accumulation so 0.1 steps land on 0.1.
		rounded := math.Round(v*1e9) / 1e9
		if rounded <= r.Max {
			out = append(out, rounded)
		}
	}
	return out
}

// ParseCSVFloat64s parses a comma-separated list of float64 values.
// Returns nil, nil for empty input strings.
func ParseCSVFloat64s(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
