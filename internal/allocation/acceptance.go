package allocation

import (
	"math/rand"

	"modamesh/internal/brand"
	"modamesh/internal/market"
	"modamesh/internal/partnership"
)

// AcceptStrategically is the producer's final gate on a co-branded proposal:
// segment-tiered caps on simultaneously active co-branded deals, with a
// stochastic override for high-volume allocations. White-label deals pass
// unconditionally; exclusivity is a co-branded concern.
func (p *Policy) AcceptStrategically(b brand.Profile, allocatedUnits, activeCoBranded int, rng *rand.Rand) bool {
	if p.model != partnership.CoBranded {
		return true
	}

	accepts := true
	switch seg := b.PrimarySegment(); {
	case seg == market.SegmentCoreTechnical || seg == market.SegmentOutdoorTechnical || seg == market.SegmentAthleisure:
		if activeCoBranded >= p.params.TechnicalActiveCap {
			if b.AnnualRevenueMillions < p.params.TechnicalRevenueFloor || rng.Float64() > p.params.TechnicalOverrideOdds {
				accepts = false
			}
		}
	case seg == market.SegmentLuxuryActivewear || seg == market.SegmentAthluxury:
		if activeCoBranded >= p.params.MidLuxuryActiveCap {
			if b.MarketLeaderScore < p.params.MidLuxuryLeaderFloor || rng.Float64() > p.params.MidLuxuryOverrideOdds {
				accepts = false
			}
		}
	default:
		// Luxury segments are always welcome in a co-branded program.
		accepts = true
	}

	// High-volume proposals get reconsidered even past the caps.
	if !accepts && allocatedUnits > p.params.HighVolumeOverride {
		if rng.Float64() < p.params.HighVolumeAcceptOdds {
			accepts = true
		}
	}

	return accepts
}
