package product

import "fmt"

// Tier classifies how difficult a product is to manufacture. The tier bounds
// the product's maximum share of the allocatable capacity pool.
type Tier string

const (
	TierLow      Tier = "Low"
	TierMedium   Tier = "Medium"
	TierHigh     Tier = "High"
	TierVeryHigh Tier = "Very High"
)

// ParseTier validates a tier string from an input file.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierLow, TierMedium, TierHigh, TierVeryHigh:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown complexity tier %q", s)
}

// Product categories as they appear in the cost table.
const (
	CategoryTechnical   = "Technical Inner Layers & Insulation Systems"
	CategoryStructural  = "Structural Enhancement Solutions"
	CategorySustainable = "Sustainable Performance Materials"
)

// Product is a read-only entry of the producer's portfolio: a technical
// component sold to apparel brands either co-branded or white-label.
type Product struct {
	Name         string  `json:"name"`
	VariableCost float64 `json:"variable_cost"`
	Complexity   Tier    `json:"complexity"`
	Category     string  `json:"category"`
}

// Technical reports whether the product is a technical inner-layer component.
func (p Product) Technical() bool {
	return p.Category == CategoryTechnical
}

// Sustainable reports whether the product belongs to the sustainable line.
func (p Product) Sustainable() bool {
	return p.Category == CategorySustainable
}

// HighComplexity reports whether the product sits in the upper two tiers.
func (p Product) HighComplexity() bool {
	return p.Complexity == TierHigh || p.Complexity == TierVeryHigh
}
