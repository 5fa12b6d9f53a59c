// Package config loads simulation tuning parameters from JSON. Fields are
// pointers so a partial file only overrides what it names; the Get* methods
// supply defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SimConfig is the root tuning document for a simulation run. All
// dimensions are physical (metres) except where the name says cells; the
// cells_per_metre scale converts between them at setup.
type SimConfig struct {
	// Pitch geometry
	PitchLengthM  *float64 `json:"pitch_length_m,omitempty"`
	PitchWidthM   *float64 `json:"pitch_width_m,omitempty"`
	CellsPerMetre *float64 `json:"cells_per_metre,omitempty"`

	// Surface generation
	NoiseAmplitudeMM  *float64 `json:"noise_amplitude_mm,omitempty"`
	DefectCount       *int     `json:"defect_count,omitempty"`
	DefectMinSize     *int     `json:"defect_min_size_cells,omitempty"`
	DefectMaxSize     *int     `json:"defect_max_size_cells,omitempty"`
	DefectMinDepthMM  *float64 `json:"defect_min_depth_mm,omitempty"`
	DefectMaxDepthMM  *float64 `json:"defect_max_depth_mm,omitempty"`
	DefectMarginCells *int     `json:"defect_margin_cells,omitempty"`

	// Path planning
	RowSpacingCells *float64 `json:"row_spacing_cells,omitempty"`
	PathMarginCells *float64 `json:"path_margin_cells,omitempty"`

	// Controller
	FootprintHalfCells *int     `json:"footprint_half_cells,omitempty"`
	DepthThresholdMM   *float64 `json:"depth_threshold_mm,omitempty"`
	EnergyMoveJ        *float64 `json:"energy_move_j,omitempty"`
	EnergyRepairJ      *float64 `json:"energy_repair_j,omitempty"`

	// Reproducibility
	Seed *int64 `json:"seed,omitempty"`
}

// Empty returns a SimConfig with every field unset.
func Empty() *SimConfig {
	return &SimConfig{}
}

// Load reads and validates a SimConfig from a JSON file. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func Load(path string) (*SimConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects parameter combinations the core would otherwise have to
// clamp its way around for the whole run. Geometry errors belong here, at
// setup, never inside the step loop.
func (c *SimConfig) Validate() error {
	if c.PitchLengthM != nil && *c.PitchLengthM <= 0 {
		return fmt.Errorf("pitch_length_m must be positive, got %f", *c.PitchLengthM)
	}
	if c.PitchWidthM != nil && *c.PitchWidthM <= 0 {
		return fmt.Errorf("pitch_width_m must be positive, got %f", *c.PitchWidthM)
	}
	if c.CellsPerMetre != nil && *c.CellsPerMetre <= 0 {
		return fmt.Errorf("cells_per_metre must be positive, got %f", *c.CellsPerMetre)
	}
	if c.NoiseAmplitudeMM != nil && *c.NoiseAmplitudeMM < 0 {
		return fmt.Errorf("noise_amplitude_mm must be non-negative, got %f", *c.NoiseAmplitudeMM)
	}
	if c.DefectCount != nil && *c.DefectCount < 0 {
		return fmt.Errorf("defect_count must be non-negative, got %d", *c.DefectCount)
	}
	if c.RowSpacingCells != nil && *c.RowSpacingCells <= 0 {
		return fmt.Errorf("row_spacing_cells must be positive, got %f", *c.RowSpacingCells)
	}
	if c.FootprintHalfCells != nil && *c.FootprintHalfCells < 1 {
		return fmt.Errorf("footprint_half_cells must be at least 1, got %d", *c.FootprintHalfCells)
	}
	if c.DepthThresholdMM != nil && *c.DepthThresholdMM >= 0 {
		return fmt.Errorf("depth_threshold_mm must be negative, got %f", *c.DepthThresholdMM)
	}
	if c.EnergyMoveJ != nil && *c.EnergyMoveJ < 0 {
		return fmt.Errorf("energy_move_j must be non-negative, got %f", *c.EnergyMoveJ)
	}
	if c.EnergyRepairJ != nil && *c.EnergyRepairJ < 0 {
		return fmt.Errorf("energy_repair_j must be non-negative, got %f", *c.EnergyRepairJ)
	}
	// Row spacing wider than the footprint diameter leaves gaps a defect
	// could hide in between sweep rows.
	if c.GetRowSpacingCells() > float64(2*c.GetFootprintHalfCells()+1) {
		return fmt.Errorf("row_spacing_cells %f exceeds footprint diameter %d cells",
			c.GetRowSpacingCells(), 2*c.GetFootprintHalfCells()+1)
	}
	return nil
}

// GetPitchLengthM returns the pitch length or the standard 22-yard strip.
func (c *SimConfig) GetPitchLengthM() float64 {
	if c.PitchLengthM == nil {
		return 20.12
	}
	return *c.PitchLengthM
}

// GetPitchWidthM returns the pitch width or the standard 10-foot strip.
func (c *SimConfig) GetPitchWidthM() float64 {
	if c.PitchWidthM == nil {
		return 3.05
	}
	return *c.PitchWidthM
}

// GetCellsPerMetre returns the grid resolution or the default.
func (c *SimConfig) GetCellsPerMetre() float64 {
	if c.CellsPerMetre == nil {
		return 4.0
	}
	return *c.CellsPerMetre
}

// GetNoiseAmplitudeMM returns the base surface noise amplitude or the default.
func (c *SimConfig) GetNoiseAmplitudeMM() float64 {
	if c.NoiseAmplitudeMM == nil {
		return 0.2
	}
	return *c.NoiseAmplitudeMM
}

// GetDefectCount returns the number of random defects or the default.
func (c *SimConfig) GetDefectCount() int {
	if c.DefectCount == nil {
		return 6
	}
	return *c.DefectCount
}

// GetDefectMinSize returns the minimum defect edge in cells or the default.
func (c *SimConfig) GetDefectMinSize() int {
	if c.DefectMinSize == nil {
		return 1
	}
	return *c.DefectMinSize
}

// GetDefectMaxSize returns the maximum defect edge in cells or the default.
func (c *SimConfig) GetDefectMaxSize() int {
	if c.DefectMaxSize == nil {
		return 2
	}
	return *c.DefectMaxSize
}

// GetDefectMinDepthMM returns the minimum defect depth or the default.
func (c *SimConfig) GetDefectMinDepthMM() float64 {
	if c.DefectMinDepthMM == nil {
		return 2.0
	}
	return *c.DefectMinDepthMM
}

// GetDefectMaxDepthMM returns the maximum defect depth or the default.
func (c *SimConfig) GetDefectMaxDepthMM() float64 {
	if c.DefectMaxDepthMM == nil {
		return 5.0
	}
	return *c.DefectMaxDepthMM
}

// GetDefectMarginCells returns the defect placement margin or the default.
func (c *SimConfig) GetDefectMarginCells() int {
	if c.DefectMarginCells == nil {
		return 2
	}
	return *c.DefectMarginCells
}

// GetRowSpacingCells returns the sweep row spacing or the default.
func (c *SimConfig) GetRowSpacingCells() float64 {
	if c.RowSpacingCells == nil {
		return 2.0
	}
	return *c.RowSpacingCells
}

// GetPathMarginCells returns the sweep edge margin or the default.
func (c *SimConfig) GetPathMarginCells() float64 {
	if c.PathMarginCells == nil {
		return 1.0
	}
	return *c.PathMarginCells
}

// GetFootprintHalfCells returns the sensor footprint half-size or the default.
func (c *SimConfig) GetFootprintHalfCells() int {
	if c.FootprintHalfCells == nil {
		return 1
	}
	return *c.FootprintHalfCells
}

// GetDepthThresholdMM returns the defect classification threshold or the default.
func (c *SimConfig) GetDepthThresholdMM() float64 {
	if c.DepthThresholdMM == nil {
		return -1.0
	}
	return *c.DepthThresholdMM
}

// GetEnergyMoveJ returns the per-step movement cost or the default.
func (c *SimConfig) GetEnergyMoveJ() float64 {
	if c.EnergyMoveJ == nil {
		return 1.0
	}
	return *c.EnergyMoveJ
}

// GetEnergyRepairJ returns the per-repair surcharge or the default.
func (c *SimConfig) GetEnergyRepairJ() float64 {
	if c.EnergyRepairJ == nil {
		return 10.0
	}
	return *c.EnergyRepairJ
}

// GetSeed returns the RNG seed or the default.
func (c *SimConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 1
	}
	return *c.Seed
}
