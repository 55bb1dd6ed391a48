// Package demand computes the units a brand would want from a partnership,
// before any capacity check. Pure function of (brand, model, rng).
package demand

import (
	"math/rand"

	"modamesh/internal/brand"
	"modamesh/internal/market"
	"modamesh/internal/partnership"
)

// Bounds clamps estimated demand to the configured per-product band.
type Bounds struct {
	MinUnits int
	MaxUnits int
}

// Luxury segments request proportionally smaller, more exclusive runs.
var segmentMultiplier = map[int]float64{
	market.SegmentCoreTechnical:    1.0,
	market.SegmentOutdoorTechnical: 1.0,
	market.SegmentAthleisure:       0.9,
	market.SegmentLuxuryActivewear: 0.7,
	market.SegmentAthluxury:        0.6,
	market.SegmentHPLuxury:         0.5,
	market.SegmentLuxuryFashion:    0.4,
}

// minPriceIndex guards the volume estimate against zero-revenue or
// zero-price-index profiles: substitute a floor, never divide by zero.
const minPriceIndex = 1.0

// Estimate computes a brand's desired annual unit count for the given model.
// The brand's total production volume is estimated from revenue over average
// price index; the partnership claims a small model-dependent fraction of it,
// scaled by segment exclusivity and ±20% jitter, clamped to the bounds.
func Estimate(b brand.Profile, params partnership.Params, bounds Bounds, rng *rand.Rand) int {
	priceIndex := b.AvgPriceIndex
	if priceIndex < minPriceIndex {
		priceIndex = minPriceIndex
	}
	estimatedAnnualUnits := b.AnnualRevenueMillions * 1_000_000 / priceIndex

	baseUnits := estimatedAnnualUnits * params.DemandFraction

	multiplier, ok := segmentMultiplier[b.PrimarySegment()]
	if !ok {
		multiplier = 0.8
	}

	jitter := 0.8 + rng.Float64()*0.4
	units := int(baseUnits * multiplier * jitter)

	if units < bounds.MinUnits {
		units = bounds.MinUnits
	}
	if units > bounds.MaxUnits {
		units = bounds.MaxUnits
	}
	return units
}
