package diag

import (
	"errors"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/pattern"
)

// PatternSample is one spot-detection measurement of a field, the unit the
// parameter sweeps accumulate.
type PatternSample struct {
	SpotCount   int
	LengthScale float64 // zero when no pattern was detected
	NoPattern   bool
}

// MeasurePattern runs the estimator on a field and folds the no-pattern
// outcome into a valid zero-count sample. Only genuinely malformed inputs
// surface as errors; a homogeneous field is data, not a failure (the sweep
// has to tell those apart).
func MeasurePattern(f *field.Field, windowRadius int) (PatternSample, error) {
	if f == nil {
		return PatternSample{}, pattern.ErrInvalidField
	}
	spots, scale, err := pattern.AnalyzeField(f, windowRadius, f.Grid.Area())
	if errors.Is(err, pattern.ErrNoPattern) {
		return PatternSample{NoPattern: true}, nil
	}
	if err != nil {
		return PatternSample{}, err
	}
	return PatternSample{SpotCount: len(spots), LengthScale: scale}, nil
}
