package market

import "math"

// ShockType identifies a market shock from the catalog.
type ShockType string

const (
	ShockRecession             ShockType = "recession"
	ShockSustainabilityPush    ShockType = "sustainability_push"
	ShockTechBoom              ShockType = "tech_boom"
	ShockLuxuryCrisis          ShockType = "luxury_crisis"
	ShockLuxuryTechConvergence ShockType = "luxury_tech_convergence"
	ShockAthleisureSurge       ShockType = "athleisure_surge"
	ShockSupplyChainCrisis     ShockType = "supply_chain_crisis"
	ShockDigitalTransformation ShockType = "digital_transformation"
	ShockGenZTakeover          ShockType = "gen_z_takeover"
	ShockPerformanceFashion    ShockType = "performance_fashion"
)

// ShockCatalog lists every shock type a trial may draw from.
func ShockCatalog() []ShockType {
	return []ShockType{
		ShockRecession,
		ShockSustainabilityPush,
		ShockTechBoom,
		ShockLuxuryCrisis,
		ShockLuxuryTechConvergence,
		ShockAthleisureSurge,
		ShockSupplyChainCrisis,
		ShockDigitalTransformation,
		ShockGenZTakeover,
		ShockPerformanceFashion,
	}
}

type activeShock struct {
	typ       ShockType
	duration  int
	remaining int
	intensity float64
}

// ApplyShock starts a shock: immediate effects now, diminishing ongoing
// effects on subsequent quarters until the duration runs out.
func (s *State) ApplyShock(typ ShockType, durationQuarters int, intensity float64) {
	shock := &activeShock{typ: typ, duration: durationQuarters, remaining: durationQuarters, intensity: intensity}
	s.activeShocks = append(s.activeShocks, shock)
	s.applyShockEffects(typ, intensity)
}

// ActiveShocks returns the types of shocks still in effect.
func (s *State) ActiveShocks() []ShockType {
	types := make([]ShockType, 0, len(s.activeShocks))
	for _, sh := range s.activeShocks {
		types = append(types, sh.typ)
	}
	return types
}

func (s *State) processShocks() {
	ongoing := s.activeShocks[:0]
	for _, sh := range s.activeShocks {
		sh.remaining--
		if sh.remaining > 0 {
			// Diminishing aftershock at half strength.
			diminished := sh.intensity * (float64(sh.remaining) / float64(sh.duration)) * 0.5
			s.applyShockEffects(sh.typ, diminished)
			ongoing = append(ongoing, sh)
		}
	}
	s.activeShocks = ongoing
}

func (s *State) applyShockEffects(typ ShockType, intensity float64) {
	p := &s.prefs
	ind := &s.indicators

	switch typ {
	case ShockRecession:
		ind.EconomicConfidence *= 1 - intensity*0.5
		p.PriceSensitivity = math.Min(0.9, p.PriceSensitivity+intensity*0.3)
		p.BrandStatusImportance *= 1 - intensity*0.2
		for id := range s.growth {
			s.growth[id] *= 1 - intensity*0.3
		}

	case ShockSustainabilityPush:
		ind.SustainabilityPressure = math.Min(1.0, ind.SustainabilityPressure+intensity*0.3)
		p.SustainabilityImportance = math.Min(1.0, p.SustainabilityImportance+intensity*0.2)

	case ShockTechBoom:
		ind.TechnicalInnovationHeat = math.Min(1.0, ind.TechnicalInnovationHeat+intensity*0.3)
		p.FunctionalityImportance = math.Min(1.0, p.FunctionalityImportance+intensity*0.2)
		s.growth[SegmentCoreTechnical] *= 1 + intensity*0.2
		s.growth[SegmentOutdoorTechnical] *= 1 + intensity*0.3
		s.growth[SegmentHPLuxury] *= 1 + intensity*0.4

	case ShockLuxuryCrisis:
		p.BrandStatusImportance *= 1 - intensity*0.3
		s.growth[SegmentLuxuryFashion] *= 1 - intensity*0.5
		s.growth[SegmentLuxuryActivewear] *= 1 - intensity*0.3

	case ShockLuxuryTechConvergence:
		ind.LuxuryTechConvergence = math.Min(0.95, ind.LuxuryTechConvergence+intensity*0.4)
		p.FunctionalityImportance = math.Min(0.9, p.FunctionalityImportance+intensity*0.15)
		p.BrandStatusImportance = math.Max(0.6, p.BrandStatusImportance)
		s.growth[SegmentHPLuxury] *= 1 + intensity*0.6
		s.growth[SegmentAthluxury] *= 1 + intensity*0.3
		s.growth[SegmentLuxuryFashion] *= 1 - intensity*0.2
		ind.TechnicalInnovationHeat = math.Min(0.9, ind.TechnicalInnovationHeat+intensity*0.25)

	case ShockAthleisureSurge:
		s.growth[SegmentAthleisure] *= 1 + intensity*0.5
		s.growth[SegmentAthluxury] *= 1 + intensity*0.3
		p.FunctionalityImportance = math.Min(0.8, p.FunctionalityImportance+intensity*0.2)
		s.growth[SegmentLuxuryFashion] *= 1 - intensity*0.3
		p.PriceSensitivity = math.Min(0.7, p.PriceSensitivity+intensity*0.1)

	case ShockSupplyChainCrisis:
		for _, id := range []int{SegmentCoreTechnical, SegmentOutdoorTechnical, SegmentAthleisure} {
			s.growth[id] *= 1 - intensity*0.4
		}
		for _, id := range []int{SegmentLuxuryActivewear, SegmentAthluxury, SegmentHPLuxury} {
			s.growth[id] *= 1 - intensity*0.2
		}
		s.growth[SegmentLuxuryFashion] *= 1 - intensity*0.1
		ind.EconomicConfidence *= 1 - intensity*0.3
		ind.TechnicalInnovationHeat *= 1 - intensity*0.2

	case ShockDigitalTransformation:
		s.growth[SegmentCoreTechnical] *= 1 + intensity*0.2
		s.growth[SegmentAthleisure] *= 1 + intensity*0.3
		s.growth[SegmentHPLuxury] *= 1 + intensity*0.25
		s.growth[SegmentLuxuryFashion] *= 1 - intensity*0.15
		p.PriceSensitivity = math.Min(0.8, p.PriceSensitivity+intensity*0.15)
		ind.TechnicalInnovationHeat = math.Min(0.8, ind.TechnicalInnovationHeat+intensity*0.2)

	case ShockGenZTakeover:
		p.SustainabilityImportance = math.Min(0.9, p.SustainabilityImportance+intensity*0.3)
		p.BrandStatusImportance *= 1 - intensity*0.25
		p.FunctionalityImportance = math.Min(0.8, p.FunctionalityImportance+intensity*0.2)
		s.growth[SegmentAthleisure] *= 1 + intensity*0.3
		s.growth[SegmentAthluxury] *= 1 + intensity*0.4
		s.growth[SegmentHPLuxury] *= 1 + intensity*0.35
		s.growth[SegmentLuxuryFashion] *= 1 - intensity*0.4
		p.PriceSensitivity = math.Min(0.75, p.PriceSensitivity+intensity*0.2)

	case ShockPerformanceFashion:
		p.FunctionalityImportance = math.Min(0.9, p.FunctionalityImportance+intensity*0.25)
		ind.TechnicalInnovationHeat = math.Min(0.95, ind.TechnicalInnovationHeat+intensity*0.3)
		s.growth[SegmentCoreTechnical] *= 1 + intensity*0.3
		s.growth[SegmentOutdoorTechnical] *= 1 + intensity*0.35
		s.growth[SegmentHPLuxury] *= 1 + intensity*0.5
		s.growth[SegmentLuxuryActivewear] *= 1 + intensity*0.25
		s.growth[SegmentLuxuryFashion] *= 1 - intensity*0.1
		ind.LuxuryTechConvergence = math.Min(0.9, ind.LuxuryTechConvergence+intensity*0.3)
	}
}
