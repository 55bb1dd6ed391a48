package market

// Opportunity flags a favorable market condition for a brand.
type Opportunity struct {
	Type     string  `json:"type"`
	Target   string  `json:"target,omitempty"`
	Strength float64 `json:"strength"`
}

// Threat flags an unfavorable market condition for a brand.
type Threat struct {
	Type     string  `json:"type"`
	Severity float64 `json:"severity"`
}

// Intelligence is the snapshot a brand consults before a partnership
// decision, weighted toward its own segments.
type Intelligence struct {
	Preferences    Preferences     `json:"consumer_preferences"`
	Indicators     Indicators      `json:"market_indicators"`
	GrowthRates    map[int]float64 `json:"growth_rates"`
	Saturation     map[int]float64 `json:"saturation_levels"`
	WeightedGrowth float64         `json:"weighted_growth_potential"`
	Opportunities  []Opportunity   `json:"opportunities"`
	Threats        []Threat        `json:"threats"`
	ActiveShocks   []ShockType     `json:"active_shocks"`
}

// Intelligence assembles the decision snapshot for a brand operating in the
// given segments. Less saturated segments weigh more in the growth outlook.
func (s *State) Intelligence(segments []int) Intelligence {
	weights := make(map[int]float64, len(segments))
	totalWeight := 0.0
	for _, id := range segments {
		sat, ok := s.saturation[id]
		if !ok {
			sat = 0.5
		}
		w := 1.0 - sat
		weights[id] = w
		totalWeight += w
	}

	growth := make(map[int]float64, len(segments))
	saturation := make(map[int]float64, len(segments))
	weightedGrowth := 0.0
	for _, id := range segments {
		growth[id] = s.growth[id]
		saturation[id] = s.saturation[id]
		if totalWeight > 0 {
			weightedGrowth += s.growth[id] * (weights[id] / totalWeight)
		}
	}

	var opportunities []Opportunity
	var threats []Threat

	if !containsSegment(segments, SegmentHPLuxury) && s.indicators.LuxuryTechConvergence > 0.5 {
		opportunities = append(opportunities, Opportunity{
			Type:     "segment_expansion",
			Target:   SegmentName(SegmentHPLuxury),
			Strength: s.indicators.LuxuryTechConvergence,
		})
	}

	if s.prefs.SustainabilityImportance > 0.5 {
		if s.indicators.SustainabilityPressure > 0.6 {
			threats = append(threats, Threat{
				Type:     "sustainability_compliance",
				Severity: s.indicators.SustainabilityPressure,
			})
		} else {
			opportunities = append(opportunities, Opportunity{
				Type:     "sustainability_leadership",
				Strength: s.prefs.SustainabilityImportance,
			})
		}
	}

	if s.indicators.EconomicConfidence < 0.5 {
		threats = append(threats, Threat{
			Type:     "economic_downturn",
			Severity: 1.0 - s.indicators.EconomicConfidence,
		})
	}

	return Intelligence{
		Preferences:    s.prefs,
		Indicators:     s.indicators,
		GrowthRates:    growth,
		Saturation:     saturation,
		WeightedGrowth: weightedGrowth,
		Opportunities:  opportunities,
		Threats:        threats,
		ActiveShocks:   s.ActiveShocks(),
	}
}

func containsSegment(segments []int, id int) bool {
	for _, s := range segments {
		if s == id {
			return true
		}
	}
	return false
}
