package brand

import (
	"modamesh/internal/market"
	"modamesh/internal/partnership"
	"modamesh/internal/product"
)

// Evaluation is a brand's verdict on a partnership offer.
type Evaluation struct {
	Brand      string             `json:"brand"`
	Product    string             `json:"product"`
	Model      partnership.Model  `json:"model"`
	Decision   bool               `json:"decision"`
	Propensity float64            `json:"propensity_score"`
	Reasoning  map[string]float64 `json:"reasoning"`
}

// EvaluatePartnership scores the brand's willingness to accept a partnership
// offer for the given product at the given unit price, under the current
// market intelligence. Pure function of its inputs.
func (p Profile) EvaluatePartnership(offered product.Product, model partnership.Model, unitPrice float64, intel market.Intelligence) Evaluation {
	// 10% of EBITDA is the affordability yardstick.
	affordable := p.AnnualRevenueMillions * p.EBITDAMargin * 0.1

	technicalGap := maxf(0, 0.8-p.TechnicalCapability)

	var dilutionConcern, operationalBenefit float64
	if model == partnership.CoBranded {
		dilutionConcern = p.BrandDilutionSensitivity * (1 - p.TechnicalCapability)
		// A brand chasing technical credibility worries less about dilution.
		if p.LuxuryMoveAppetite > 0.5 {
			dilutionConcern *= 1 - p.LuxuryMoveAppetite*0.5
		}
	} else {
		dilutionConcern = 0.05
		operationalBenefit = p.operationalBenefit()
	}

	marketAdjustment := 1.0
	sustainabilityBoost := 0.0
	economicPenalty := 0.0

	if intel.Preferences.FunctionalityImportance > 0.6 && (offered.Technical() || offered.HighComplexity()) {
		marketAdjustment *= 1.2
	}

	if intel.Preferences.SustainabilityImportance > 0.5 && offered.Sustainable() {
		sustainabilityBoost = 0.15
	}

	if intel.Indicators.EconomicConfidence < 0.5 {
		economicPenalty = (0.5 - intel.Indicators.EconomicConfidence) * 0.3
		// Downturns make the low-commitment model relatively more attractive.
		if model == partnership.WhiteLabel {
			economicPenalty *= 0.5
			if operationalBenefit > 0.2 {
				economicPenalty *= 0.7
			}
		}
	}

	for _, opp := range intel.Opportunities {
		if opp.Type == "segment_expansion" && opp.Target == market.SegmentName(market.SegmentHPLuxury) && p.LuxuryMoveAppetite > 0.3 {
			marketAdjustment *= 1.1
		}
	}
	for _, threat := range intel.Threats {
		if threat.Type == "sustainability_compliance" && offered.Sustainable() {
			marketAdjustment *= 1.15
		}
	}

	var base float64
	if model == partnership.CoBranded {
		base = p.RiskAppetite*0.20 +
			technicalGap*0.20 +
			p.PartnershipSuccessRate*0.15 +
			(1-dilutionConcern)*0.20 +
			p.LuxuryMoveAppetite*0.10 +
			sustainabilityBoost
	} else {
		base = p.RiskAppetite*0.15 +
			technicalGap*0.15 +
			p.PartnershipSuccessRate*0.10 +
			operationalBenefit*0.35 +
			(1-dilutionConcern)*0.05 +
			p.OutsourcingRatio*0.10 +
			sustainabilityBoost
	}

	propensity := base * marketAdjustment * (1 - economicPenalty)

	// Price-sensitive markets temper a price-elastic brand.
	if intel.Preferences.PriceSensitivity > 0.6 && absf(p.PriceElasticity) > 1 {
		propensity *= 0.9
		if model == partnership.WhiteLabel {
			propensity *= 1.1
		}
	}

	// A thousand units is the smallest conceivable commitment.
	if unitPrice*1000 > affordable {
		propensity *= 0.5
		if model == partnership.WhiteLabel {
			propensity *= 1.2
		}
	}

	return Evaluation{
		Brand:      p.Name,
		Product:    offered.Name,
		Model:      model,
		Decision:   propensity > 0.5,
		Propensity: propensity,
		Reasoning: map[string]float64{
			"technical_gap":          technicalGap,
			"brand_dilution_concern": dilutionConcern,
			"operational_benefit":    operationalBenefit,
			"market_adjustment":      marketAdjustment,
			"sustainability_boost":   sustainabilityBoost,
			"economic_penalty":       economicPenalty,
		},
	}
}

// operationalBenefit scores how much a production-constrained brand gains
// from outsourcing manufacturing, capped at 0.5.
func (p Profile) operationalBenefit() float64 {
	benefit := 0.0

	switch {
	case p.ProductionFlexibility < 0.4:
		benefit += 0.3
	case p.ProductionFlexibility < 0.6:
		benefit += 0.15
	}

	switch {
	case p.TechnicalManufacturing < 0.5:
		benefit += 0.25
	case p.TechnicalManufacturing < 0.7:
		benefit += 0.1
	}

	switch {
	case p.SupplyChainComplexity > 0.7:
		benefit += 0.2
	case p.SupplyChainComplexity > 0.5:
		benefit += 0.1
	}

	if p.LeadTimeIndex > 3 {
		benefit += 0.15
	}

	if p.OutsourcingRatio > 0.5 {
		benefit += 0.15
	}

	return minf(benefit, 0.5)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
