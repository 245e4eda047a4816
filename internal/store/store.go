// Package store persists parameter-sweep results in a sqlite database so
// sweeps can be compared across sessions and queried with plain SQL.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path and applies any pending
// schema migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SweepRun is one sweep invocation: a model plus the set of combos run.
type SweepRun struct {
	RunID     string `json:"run_id"`
	Model     string `json:"model"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// SweepSample is the measurement for one parameter combination.
type SweepSample struct {
	RunID       string             `json:"run_id"`
	Params      map[string]float64 `json:"params"`
	SpotCount   int                `json:"spot_count"`
	LengthScale float64            `json:"length_scale"`
	NoPattern   bool               `json:"no_pattern"`
	MassDrift   float64            `json:"mass_drift"`
	CreatedAt   int64              `json:"created_at"`
}

// InsertRun persists a new sweep run. A missing RunID is filled with a UUID.
func (db *DB) InsertRun(run *SweepRun) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	_, err := db.Exec(`
		INSERT INTO sweep_runs (run_id, model, notes, created_at)
		VALUES (?, ?, ?, ?)`,
		run.RunID, run.Model, run.Notes, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// InsertSample persists one combo measurement for a run.
func (db *DB) InsertSample(s *SweepSample) error {
	if s.RunID == "" {
		return fmt.Errorf("insert sample: missing run_id")
	}
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().UnixNano()
	}

	params, err := json.Marshal(s.Params)
	if err != nil {
		return fmt.Errorf("insert sample: marshal params: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO sweep_samples (run_id, params_json, spot_count, length_scale, no_pattern, mass_drift, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, string(params), s.SpotCount, s.LengthScale, boolToInt(s.NoPattern), s.MassDrift, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// ListRuns returns all sweep runs, newest first.
func (db *DB) ListRuns() ([]*SweepRun, error) {
	rows, err := db.Query(`
		SELECT run_id, model, COALESCE(notes, ''), created_at
		FROM sweep_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*SweepRun
	for rows.Next() {
		r := &SweepRun{}
		if err := rows.Scan(&r.RunID, &r.Model, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListSamples returns the samples of a run in insertion order.
func (db *DB) ListSamples(runID string) ([]*SweepSample, error) {
	rows, err := db.Query(`
		SELECT run_id, params_json, spot_count, length_scale, no_pattern, mass_drift, created_at
		FROM sweep_samples WHERE run_id = ? ORDER BY sample_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	var samples []*SweepSample
	for rows.Next() {
		s := &SweepSample{}
		var paramsJSON string
		var noPattern int
		if err := rows.Scan(&s.RunID, &paramsJSON, &s.SpotCount, &s.LengthScale, &noPattern, &s.MassDrift, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &s.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
		s.NoPattern = noPattern != 0
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
