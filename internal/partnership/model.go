package partnership

import "fmt"

// Model is the go-to-market variant under evaluation. Behavior differences
// between variants live in Params tables, not in scattered conditionals, so
// adding a third model is a data change.
type Model string

const (
	CoBranded  Model = "co-branded"
	WhiteLabel Model = "white-label"
)

// Models lists the variants the driver simulates, in comparison order.
func Models() []Model {
	return []Model{CoBranded, WhiteLabel}
}

// ParseModel validates a model name from configuration or CLI input.
func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case CoBranded, WhiteLabel:
		return Model(s), nil
	}
	return "", fmt.Errorf("unknown partnership model %q", s)
}

// Params is the per-variant parameter table consumed by the demand estimator,
// the pricing engine, the allocation policy, and the strategic-acceptance
// check. Defaults reproduce the reference scenario; thresholds that encode
// business judgment are deliberately configuration, not hard-coded law.
type Params struct {
	// Demand estimation: fraction of a brand's estimated annual production
	// volume it would route into this partnership model.
	DemandFraction float64

	// Pricing.
	BaseMargin         float64
	BrandPremiumWeight float64         // co-branded: scales with market-leadership score
	MarketingFactor    float64         // co-branded only
	SegmentPremium     map[int]float64 // co-branded only, keyed by segment id
	VolumeTiers        []VolumeTier    // markup adjustment steps by unit volume

	// Proposal evaluation: markup applied to the sample product when a brand
	// sizes up an offer before any allocation happens.
	EvaluationMarkup float64

	// Allocation.
	SegmentPriority     map[int]float64
	MaxShareOfAvailable float64 // anti-monopolization cap on one brand
	AbsoluteUnitCap     int     // fixed per-model ceiling per brand
	MinViableOrder      int
	PriorityBoostAbove  float64 // priority score beyond which the grant is boosted
	PriorityBoostCap    float64 // multiplicative bound on the boost

	// Strategic acceptance (co-branded): caps on simultaneously active deals
	// by segment tier, with a stochastic override for high-volume proposals.
	TechnicalActiveCap    int
	TechnicalRevenueFloor float64 // revenue (EUR millions) that bypasses the cap
	TechnicalOverrideOdds float64
	MidLuxuryActiveCap    int
	MidLuxuryLeaderFloor  float64 // market-leadership score that bypasses the cap
	MidLuxuryOverrideOdds float64
	HighVolumeOverride    int // allocations above this many units get reconsidered
	HighVolumeAcceptOdds  float64
}

// VolumeTier adjusts the markup multiplier once units reach a threshold.
// Tiers must be ordered by ascending MinUnits; the last matching tier wins.
type VolumeTier struct {
	MinUnits    int
	Multiplier  float64 // applied to the total markup (co-branded)
	MarginDelta float64 // added to the base margin (white-label)
}

// DefaultParams returns the reference parameter table for a model variant.
func DefaultParams(model Model) Params {
	switch model {
	case CoBranded:
		return Params{
			DemandFraction:     0.01,
			BaseMargin:         0.28,
			BrandPremiumWeight: 0.06,
			MarketingFactor:    0.03,
			SegmentPremium: map[int]float64{
				1: 0.0, 2: 0.02, 3: 0.03, 4: 0.05, 5: 0.07, 6: 0.10, 7: 0.12,
			},
			VolumeTiers: []VolumeTier{
				{MinUnits: 20000, Multiplier: 0.97},
				{MinUnits: 30000, Multiplier: 0.95},
			},
			EvaluationMarkup: 1.45,
			SegmentPriority: map[int]float64{
				1: 0.8, 2: 0.9, 3: 1.0, 4: 1.2, 5: 1.5, 6: 1.8, 7: 2.0,
			},
			MaxShareOfAvailable: 0.2,
			AbsoluteUnitCap:     50000,
			MinViableOrder:      1000,
			PriorityBoostAbove:  1.5,
			PriorityBoostCap:    1.3,

			TechnicalActiveCap:    20,
			TechnicalRevenueFloor: 100,
			TechnicalOverrideOdds: 0.5,
			MidLuxuryActiveCap:    25,
			MidLuxuryLeaderFloor:  0.6,
			MidLuxuryOverrideOdds: 0.7,
			HighVolumeOverride:    20000,
			HighVolumeAcceptOdds:  0.7,
		}
	case WhiteLabel:
		return Params{
			DemandFraction: 0.015,
			BaseMargin:     0.14,
			VolumeTiers: []VolumeTier{
				{MinUnits: 5000, MarginDelta: -0.02},
				{MinUnits: 10000, MarginDelta: -0.05},
				{MinUnits: 25000, MarginDelta: -0.08},
			},
			EvaluationMarkup: 1.15,
			SegmentPriority: map[int]float64{
				1: 1.5, 2: 1.4, 3: 1.3, 4: 1.0, 5: 0.8, 6: 0.6, 7: 0.4,
			},
			MaxShareOfAvailable: 0.2,
			AbsoluteUnitCap:     100000,
			MinViableOrder:      1000,
			PriorityBoostAbove:  1.5,
			PriorityBoostCap:    1.3,
		}
	}
	return Params{}
}
