package capacity

import (
	"fmt"

	"modamesh/internal/product"
)

// Config describes the production budget the producer sets aside for the new
// business model. Complexity shares are independent caps on the available
// pool, not a partition of it: each product may claim up to its own share.
type Config struct {
	TotalAnnualCapacity        int                      `yaml:"total_annual_capacity"`
	NewModelAllocationFraction float64                  `yaml:"new_model_allocation_fraction"`
	ComplexityMaxShare         map[product.Tier]float64 `yaml:"complexity_max_share"`
}

// DefaultConfig returns the production budget used by the reference scenario.
func DefaultConfig() Config {
	return Config{
		TotalAnnualCapacity:        2_000_000,
		NewModelAllocationFraction: 0.5,
		ComplexityMaxShare: map[product.Tier]float64{
			product.TierLow:      0.5,
			product.TierMedium:   0.4,
			product.TierHigh:     0.3,
			product.TierVeryHigh: 0.2,
		},
	}
}

// Validate rejects broken capacity configuration before any trial executes.
func (c Config) Validate() error {
	if c.TotalAnnualCapacity <= 0 {
		return fmt.Errorf("total annual capacity must be positive, got %d", c.TotalAnnualCapacity)
	}
	if c.NewModelAllocationFraction < 0 || c.NewModelAllocationFraction > 1 {
		return fmt.Errorf("new model allocation fraction must be in [0,1], got %g", c.NewModelAllocationFraction)
	}
	if len(c.ComplexityMaxShare) == 0 {
		return fmt.Errorf("complexity max share table is empty")
	}
	for tier, share := range c.ComplexityMaxShare {
		if _, err := product.ParseTier(string(tier)); err != nil {
			return err
		}
		if share < 0 || share > 1 {
			return fmt.Errorf("complexity max share for tier %q must be in [0,1], got %g", tier, share)
		}
	}
	return nil
}

// Available returns the total capacity reserved for the new business model.
func (c Config) Available() int {
	return int(float64(c.TotalAnnualCapacity) * c.NewModelAllocationFraction)
}

// ProductCapacity returns the annual unit ceiling for one product of the
// given tier, floored to whole units.
func (c Config) ProductCapacity(tier product.Tier) int {
	share, ok := c.ComplexityMaxShare[tier]
	if !ok {
		share = 0.3
	}
	return int(float64(c.Available()) * share)
}
