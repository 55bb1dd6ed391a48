// Package pricing computes model-dependent unit prices. Both variants are
// pure functions of their inputs; the final price never drops below the
// product's variable cost.
package pricing

import (
	"modamesh/internal/brand"
	"modamesh/internal/partnership"
	"modamesh/internal/product"
)

// UnitPrice prices one product line of a deal.
//
// Co-branded: variable cost marked up by base margin, a brand premium scaling
// with market leadership, a per-segment premium, and a marketing factor, with
// a volume discount on the total markup above fixed unit thresholds.
//
// White-label: variable cost marked up by base margin plus a volume
// adjustment that grows more negative as volume grows.
func UnitPrice(prod product.Product, units int, model partnership.Model, params partnership.Params, b brand.Profile) float64 {
	cost := prod.VariableCost
	var price float64

	switch model {
	case partnership.CoBranded:
		brandPremium := params.BrandPremiumWeight * b.MarketLeaderScore
		segmentPremium, ok := params.SegmentPremium[b.PrimarySegment()]
		if !ok {
			segmentPremium = 0.03
		}
		markup := 1 + params.BaseMargin + brandPremium + segmentPremium + params.MarketingFactor
		markup *= volumeMultiplier(params.VolumeTiers, units)
		price = cost * markup

	case partnership.WhiteLabel:
		margin := params.BaseMargin + marginDelta(params.VolumeTiers, units)
		price = cost * (1 + margin)
	}

	// Floor invariant: adjustments hold this by construction, the clamp
	// guards against pathological parameter tables.
	if price < cost {
		price = cost
	}
	return price
}

func volumeMultiplier(tiers []partnership.VolumeTier, units int) float64 {
	multiplier := 1.0
	for _, t := range tiers {
		if units > t.MinUnits && t.Multiplier != 0 {
			multiplier = t.Multiplier
		}
	}
	return multiplier
}

func marginDelta(tiers []partnership.VolumeTier, units int) float64 {
	delta := 0.0
	for _, t := range tiers {
		if units >= t.MinUnits {
			delta = t.MarginDelta
		}
	}
	return delta
}
