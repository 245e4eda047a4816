package rd

import "fmt"

// Config controls a Run. The zero value is not usable; fill in TEnd and
// SnapshotInterval at minimum.
type Config struct {
	// Dt fixes the time step. If zero, the step is chosen from the diffusive
	// stability limit: SafetyFactor * min(dx,dy)^2 / (4 * maxD).
	Dt float64

	// SafetyFactor scales the automatic step below the stability limit.
	// Defaults to 0.2 when zero.
	SafetyFactor float64

	// TEnd is the simulated time to integrate to.
	TEnd float64

	// SnapshotInterval is the simulated-time spacing between recorded
	// snapshots. The initial state and the final state are always recorded.
	SnapshotInterval float64
}

func (c Config) validate() error {
	if c.TEnd <= 0 {
		return fmt.Errorf("%w: t_end %g must be positive", ErrInvalidConfig, c.TEnd)
	}
	if c.SnapshotInterval <= 0 {
		return fmt.Errorf("%w: snapshot interval %g must be positive", ErrInvalidConfig, c.SnapshotInterval)
	}
	if c.Dt < 0 || c.SafetyFactor < 0 {
		return fmt.Errorf("%w: dt %g and safety factor %g must not be negative", ErrInvalidConfig, c.Dt, c.SafetyFactor)
	}
	return nil
}
