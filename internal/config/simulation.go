package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"modamesh/internal/capacity"
)

// Simulation holds the scenario parameters for a full Monte-Carlo run.
// Anything that encodes business judgment (renewal odds, duration range,
// decision thresholds) is configuration here, not a constant in the engine.
type Simulation struct {
	Trials        int `yaml:"trials"`
	Years         int `yaml:"years"`
	MonthsPerYear int `yaml:"months_per_year"`

	MinUnitsPerProduct int `yaml:"min_units_per_product"`
	MaxUnitsPerProduct int `yaml:"max_units_per_product"`

	DiscountRate float64 `yaml:"discount_rate"`
	BaseSeed     int64   `yaml:"base_seed"`

	MaxShocksPerTrial int `yaml:"max_shocks_per_trial"`

	RenewalProbability float64 `yaml:"renewal_probability"`
	MinDurationYears   int     `yaml:"min_duration_years"`
	MaxDurationYears   int     `yaml:"max_duration_years"`

	// Base propensity threshold before the per-brand risk adjustment.
	BaseDecisionThreshold float64 `yaml:"base_decision_threshold"`

	Capacity capacity.Config `yaml:"capacity"`

	// Worker pool size for the driver; 0 means one worker per CPU.
	Workers int `yaml:"workers"`
}

// DefaultSimulation returns the reference scenario.
func DefaultSimulation() *Simulation {
	return &Simulation{
		Trials:                10000,
		Years:                 5,
		MonthsPerYear:         12,
		MinUnitsPerProduct:    2000,
		MaxUnitsPerProduct:    200000,
		DiscountRate:          0.08,
		BaseSeed:              42,
		MaxShocksPerTrial:     4,
		RenewalProbability:    0.5,
		MinDurationYears:      1,
		MaxDurationYears:      3,
		BaseDecisionThreshold: 0.20,
		Capacity:              capacity.DefaultConfig(),
	}
}

// LoadSimulation reads a scenario file over the defaults. A missing file is
// fine: the defaults stand.
func LoadSimulation(path string) (*Simulation, error) {
	sim := DefaultSimulation()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sim, nil
		}
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	if err := yaml.Unmarshal(raw, sim); err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
	}
	return sim, nil
}

// TotalMonths returns the length of the simulated horizon.
func (s *Simulation) TotalMonths() int {
	return s.Years * s.MonthsPerYear
}

// Validate rejects a broken scenario before any trial executes, so an
// invalid configuration never burns compute on N doomed trials.
func (s *Simulation) Validate() error {
	if s.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", s.Trials)
	}
	if s.Years <= 0 {
		return fmt.Errorf("years must be positive, got %d", s.Years)
	}
	if s.MonthsPerYear <= 0 {
		return fmt.Errorf("months per year must be positive, got %d", s.MonthsPerYear)
	}
	if s.MinUnitsPerProduct <= 0 || s.MaxUnitsPerProduct < s.MinUnitsPerProduct {
		return fmt.Errorf("unit band [%d, %d] is invalid", s.MinUnitsPerProduct, s.MaxUnitsPerProduct)
	}
	if s.DiscountRate < 0 {
		return fmt.Errorf("discount rate must be non-negative, got %g", s.DiscountRate)
	}
	if s.MaxShocksPerTrial < 0 {
		return fmt.Errorf("max shocks per trial must be non-negative, got %d", s.MaxShocksPerTrial)
	}
	if s.RenewalProbability < 0 || s.RenewalProbability > 1 {
		return fmt.Errorf("renewal probability must be in [0,1], got %g", s.RenewalProbability)
	}
	if s.MinDurationYears < 1 || s.MaxDurationYears < s.MinDurationYears {
		return fmt.Errorf("duration range [%d, %d] years is invalid", s.MinDurationYears, s.MaxDurationYears)
	}
	if s.BaseDecisionThreshold <= 0 {
		return fmt.Errorf("base decision threshold must be positive, got %g", s.BaseDecisionThreshold)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", s.Workers)
	}
	if err := s.Capacity.Validate(); err != nil {
		return fmt.Errorf("capacity config: %w", err)
	}
	return nil
}
