// Package config loads simulation run configuration from JSON files. All
// fields are optional pointers so a partial config file only overrides what
// it mentions; the Get* accessors supply the defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SimConfig is the root configuration for a simulation run. The same file
// drives both the simulate and sweep commands, so sweep-only fields are
// simply ignored by simulate and vice versa.
type SimConfig struct {
	// Model selection and parameter overrides
	Model  *string            `json:"model,omitempty"`
	Params map[string]float64 `json:"params,omitempty"`

	// Grid geometry
	Nx *int     `json:"nx,omitempty"`
	Ny *int     `json:"ny,omitempty"`
	Lx *float64 `json:"lx,omitempty"`
	Ly *float64 `json:"ly,omitempty"`

	// Integration
	Dt               *float64 `json:"dt,omitempty"` // 0 or absent: stability-based auto step
	SafetyFactor     *float64 `json:"safety_factor,omitempty"`
	TEnd             *float64 `json:"t_end,omitempty"` // 0 or absent: model default
	SnapshotInterval *float64 `json:"snapshot_interval,omitempty"`

	// Pattern analysis
	WindowRadius *int `json:"window_radius,omitempty"`

	// Output
	OutDir     *string  `json:"out_dir,omitempty"`
	Movie      *bool    `json:"movie,omitempty"`
	MovieScale *int     `json:"movie_scale,omitempty"`
	MovieFPS   *float64 `json:"movie_fps,omitempty"`
	DBPath     *string  `json:"db_path,omitempty"`
}

// Load reads a SimConfig from a JSON file. The path must have a .json
// extension and the file must be under the size cap; omitted fields keep
// their defaults, so partial configs are safe.
func Load(path string) (*SimConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &SimConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set values are usable.
func (c *SimConfig) Validate() error {
	if c.Nx != nil && *c.Nx < 4 {
		return fmt.Errorf("nx must be at least 4, got %d", *c.Nx)
	}
	if c.Ny != nil && *c.Ny < 4 {
		return fmt.Errorf("ny must be at least 4, got %d", *c.Ny)
	}
	if c.Lx != nil && *c.Lx <= 0 {
		return fmt.Errorf("lx must be positive, got %g", *c.Lx)
	}
	if c.Ly != nil && *c.Ly <= 0 {
		return fmt.Errorf("ly must be positive, got %g", *c.Ly)
	}
	if c.Dt != nil && *c.Dt < 0 {
		return fmt.Errorf("dt must be non-negative, got %g", *c.Dt)
	}
	if c.SafetyFactor != nil && (*c.SafetyFactor <= 0 || *c.SafetyFactor > 1) {
		return fmt.Errorf("safety_factor must be in (0, 1], got %g", *c.SafetyFactor)
	}
	if c.TEnd != nil && *c.TEnd < 0 {
		return fmt.Errorf("t_end must be non-negative, got %g", *c.TEnd)
	}
	if c.SnapshotInterval != nil && *c.SnapshotInterval < 0 {
		return fmt.Errorf("snapshot_interval must be non-negative, got %g", *c.SnapshotInterval)
	}
	if c.WindowRadius != nil && *c.WindowRadius < 1 {
		return fmt.Errorf("window_radius must be at least 1, got %d", *c.WindowRadius)
	}
	if c.MovieScale != nil && *c.MovieScale < 1 {
		return fmt.Errorf("movie_scale must be at least 1, got %d", *c.MovieScale)
	}
	if c.MovieFPS != nil && *c.MovieFPS <= 0 {
		return fmt.Errorf("movie_fps must be positive, got %g", *c.MovieFPS)
	}
	return nil
}

// GetModel returns the model name or the default.
func (c *SimConfig) GetModel() string {
	if c.Model == nil {
		return "fhn"
	}
	return *c.Model
}

// GetNx returns the grid width in cells, or 0 for the model default.
func (c *SimConfig) GetNx() int {
	if c.Nx == nil {
		return 0
	}
	return *c.Nx
}

// GetNy returns the grid height in cells, or 0 for the model default.
func (c *SimConfig) GetNy() int {
	if c.Ny == nil {
		return 0
	}
	return *c.Ny
}

// GetLx returns the domain width, or 0 for the model default.
func (c *SimConfig) GetLx() float64 {
	if c.Lx == nil {
		return 0
	}
	return *c.Lx
}

// GetLy returns the domain height, or 0 for the model default.
func (c *SimConfig) GetLy() float64 {
	if c.Ly == nil {
		return 0
	}
	return *c.Ly
}

// GetDt returns the fixed time step, or 0 for the stability-based auto step.
func (c *SimConfig) GetDt() float64 {
	if c.Dt == nil {
		return 0
	}
	return *c.Dt
}

// GetSafetyFactor returns the auto-step safety factor, or 0 for the
// integrator default.
func (c *SimConfig) GetSafetyFactor() float64 {
	if c.SafetyFactor == nil {
		return 0
	}
	return *c.SafetyFactor
}

// GetTEnd returns the end time, or 0 for the model default.
func (c *SimConfig) GetTEnd() float64 {
	if c.TEnd == nil {
		return 0
	}
	return *c.TEnd
}

// GetSnapshotInterval returns the snapshot interval, or 0 to let the caller
// derive one from the end time.
func (c *SimConfig) GetSnapshotInterval() float64 {
	if c.SnapshotInterval == nil {
		return 0
	}
	return *c.SnapshotInterval
}

// GetWindowRadius returns the spot-detection window radius or the default.
func (c *SimConfig) GetWindowRadius() int {
	if c.WindowRadius == nil {
		return 2
	}
	return *c.WindowRadius
}

// GetOutDir returns the output directory or the default.
func (c *SimConfig) GetOutDir() string {
	if c.OutDir == nil {
		return "out"
	}
	return *c.OutDir
}

// GetMovie reports whether a movie should be written.
func (c *SimConfig) GetMovie() bool {
	if c.Movie == nil {
		return false
	}
	return *c.Movie
}

// GetMovieScale returns the movie pixel scale or the default.
func (c *SimConfig) GetMovieScale() int {
	if c.MovieScale == nil {
		return 4
	}
	return *c.MovieScale
}

// GetMovieFPS returns the movie frame rate or the default.
func (c *SimConfig) GetMovieFPS() float64 {
	if c.MovieFPS == nil {
		return 10
	}
	return *c.MovieFPS
}

// GetDBPath returns the sweep database path, or "" to skip persistence.
func (c *SimConfig) GetDBPath() string {
	if c.DBPath == nil {
		return ""
	}
	return *c.DBPath
}
