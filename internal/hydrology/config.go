package hydrology

import (
	"errors"
	"fmt"
)

// Config holds the runoff simulation parameters. Water is measured in
// elevation units, so a level of 1 raises the water surface by 1.
type Config struct {
	Rainfall       float64 `yaml:"rainfall"`        // water added to each land tile up front
	Iterations     int     `yaml:"iterations"`      // equalization passes per continent
	LakeThreshold  float64 `yaml:"lake_threshold"`  // final level at or above which a tile becomes Lake
	RiverThreshold float64 `yaml:"river_threshold"` // traversed water at or above which a tile carries a river
	Tolerance      float64 `yaml:"tolerance"`       // allowed mass imbalance per equalization step
	Workers        int     `yaml:"workers"`         // concurrent continents; 0 means GOMAXPROCS
}

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		Rainfall:       4,
		Iterations:     5,
		LakeThreshold:  12,
		RiverThreshold: 60,
		Tolerance:      0.001,
	}
}

// Validate rejects parameter combinations the simulator cannot run with.
func (c Config) Validate() error {
	var errs []error
	if !(c.Rainfall > 0) {
		errs = append(errs, fmt.Errorf("rainfall must be positive, got %v", c.Rainfall))
	}
	if c.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must not be negative, got %d", c.Iterations))
	}
	if c.LakeThreshold <= 0 {
		errs = append(errs, fmt.Errorf("lake threshold must be positive, got %v", c.LakeThreshold))
	}
	if c.RiverThreshold <= 0 {
		errs = append(errs, fmt.Errorf("river threshold must be positive, got %v", c.RiverThreshold))
	}
	if !(c.Tolerance > 0) {
		errs = append(errs, fmt.Errorf("tolerance must be positive, got %v", c.Tolerance))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
