package pattern

import "errors"

// Callers need to tell a degenerate-but-valid outcome (a homogeneous field
// with no spots) apart from a malformed call, so the two get distinct
// sentinels. Parameter-sweep code treats ErrNoPattern as a zero-pattern
// sample and anything else as a bug.
var (
	// ErrInvalidField indicates a nil, empty or malformed input field.
	ErrInvalidField = errors.New("pattern: invalid field")

	// ErrInvalidConfig indicates a non-positive window radius or domain area.
	ErrInvalidConfig = errors.New("pattern: invalid configuration")

	// ErrNoPattern indicates that no local maxima were found; the field is a
	// legitimate homogeneous or monotone state, not a programming error.
	ErrNoPattern = errors.New("pattern: no pattern detected")
)
