package brand

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"modamesh/internal/market"
)

// Profile is the static description of an apparel brand: financial, segment,
// and behavioral attributes consumed by the scoring functions, the demand
// estimator, and the allocation policy. Profiles are immutable shared input;
// per-trial stochastic attributes are drawn via Seeded.
type Profile struct {
	Name string `json:"brand_name"`

	// Financials.
	AnnualRevenueMillions float64 `json:"annual_revenue_millions"`
	EBITDAMargin          float64 `json:"ebitda_margin"`

	// Market position.
	Segments      []int   `json:"segment_id"`
	AvgPriceIndex float64 `json:"avg_price_index"`

	// Innovation profile.
	TechnicalCapability  float64 `json:"technical_capability"`
	SustainabilityScore  float64 `json:"sustainability_score"`
	InnovationPerception float64 `json:"innovation_perception"`

	// Partnership history.
	PartnershipSuccessRate float64 `json:"partnership_success_rate"`
	OutsourcingRatio       float64 `json:"outsourcing_ratio"`

	// Operations.
	ProductionFlexibility  float64 `json:"production_flexibility"`
	TechnicalManufacturing float64 `json:"technical_manufacturing"`
	SupplyChainComplexity  float64 `json:"supply_chain_complexity"`
	LeadTimeIndex          int     `json:"lead_time_index"`

	// Demand elasticity and influence.
	PriceElasticity          float64 `json:"price_elasticity"`
	MarketLeaderScore        float64 `json:"market_leader_score"`
	BrandDilutionSensitivity float64 `json:"brand_dilution_sensitivity"`

	// Per-trial stochastic attributes, populated by Seeded, never by input.
	RiskAppetite       float64 `json:"-"`
	DecisionSpeed      float64 `json:"-"`
	LuxuryMoveAppetite float64 `json:"-"`
}

// PrimarySegment returns the brand's leading segment, defaulting to
// Athleisure when the profile carries none.
func (p Profile) PrimarySegment() int {
	if len(p.Segments) == 0 {
		return market.SegmentAthleisure
	}
	return p.Segments[0]
}

// InSegment reports whether the brand operates in the given segment.
func (p Profile) InSegment(id int) bool {
	for _, s := range p.Segments {
		if s == id {
			return true
		}
	}
	return false
}

// DecisionFrequency derives how often (in months) the brand re-evaluates
// partnership proposals from its decision speed. Faster deciders check more
// often; the floor keeps the divisor positive.
func (p Profile) DecisionFrequency() int {
	freq := int(3 / (p.DecisionSpeed + 0.1))
	if freq < 1 {
		freq = 1
	}
	return freq
}

// Seeded returns a copy of the profile with the per-trial stochastic
// attributes drawn from the trial's rng. All randomness is routed through
// the injected source; profiles never touch process-global random state.
func (p Profile) Seeded(rng *rand.Rand) Profile {
	p.RiskAppetite = rng.Float64()
	p.DecisionSpeed = rng.Float64()
	p.LuxuryMoveAppetite = p.luxuryMoveAppetite(rng)
	return p
}

// luxuryMoveAppetite derives how strongly the brand wants to move into
// High-Performance Luxury from its fashion/function positioning. Brands
// already in that segment have no appetite; fashion-forward brands with a
// technical credibility gap have the most.
func (p Profile) luxuryMoveAppetite(rng *rand.Rand) float64 {
	if p.InSegment(market.SegmentHPLuxury) {
		return 0
	}

	var totalFashion, totalFunction float64
	for _, id := range p.Segments {
		totalFashion += market.FashionScore(id)
		totalFunction += market.FunctionScore(id)
	}
	n := float64(len(p.Segments))
	if n == 0 {
		return 0
	}
	avgFashion := totalFashion / n
	avgFunction := totalFunction / n

	// Gap ranges -0.8 (pure technical) to +0.8 (pure fashion).
	baseAppetite := (avgFashion - avgFunction + 0.8) / 1.6

	innovationGap := maxf(0, 0.7-p.InnovationPerception) / 0.7

	techGap := 0.0
	if avgFashion > 0.6 {
		techGap = maxf(0, 0.6-p.TechnicalCapability) / 0.6
	}

	segmentBonus := 0.0
	if p.InSegment(market.SegmentAthluxury) || p.InSegment(market.SegmentLuxuryFashion) {
		segmentBonus = 0.2
	}

	appetite := minf(1.0, baseAppetite*0.5+innovationGap*0.2+techGap*0.2+segmentBonus)
	appetite += rng.Float64()*0.2 - 0.1
	return clamp01(appetite)
}

// LoadProfiles reads the brand profile file: a JSON array of profiles,
// returned sorted by name so per-trial iteration order is deterministic.
func LoadProfiles(path string) ([]Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read brand profiles: %w", err)
	}

	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("parse brand profiles %s: %w", path, err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("brand profile file %s contains no brands", path)
	}

	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("brand profile file %s contains a brand without a name", path)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate brand %q in %s", p.Name, path)
		}
		seen[p.Name] = true
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
