package market

import (
	"math"
	"math/rand"
)

// Preferences tracks what consumers value in the market, each in [0,1].
type Preferences struct {
	FunctionalityImportance  float64 `json:"functionality_importance"`
	SustainabilityImportance float64 `json:"sustainability_importance"`
	BrandStatusImportance    float64 `json:"brand_status_importance"`
	PriceSensitivity         float64 `json:"price_sensitivity"`
}

// Indicators tracks broader market trends and pressures, each in [0,1].
type Indicators struct {
	TechnicalInnovationHeat float64 `json:"technical_innovation_heat"`
	LuxuryTechConvergence   float64 `json:"luxury_technical_convergence"`
	SustainabilityPressure  float64 `json:"sustainability_pressure"`
	EconomicConfidence      float64 `json:"economic_confidence"`
}

// State evolves market conditions quarterly and serves intelligence snapshots
// to brand decision-makers. Each trial owns its own State; all randomness
// flows through the injected rng so trials stay reproducible.
type State struct {
	prefs      Preferences
	indicators Indicators
	growth     map[int]float64
	saturation map[int]float64

	step         int
	activeShocks []*activeShock
	rng          *rand.Rand
}

// NewState creates the initial market conditions for a trial.
func NewState(rng *rand.Rand) *State {
	return &State{
		prefs: Preferences{
			FunctionalityImportance:  0.5,
			SustainabilityImportance: 0.3,
			BrandStatusImportance:    0.7,
			PriceSensitivity:         0.4,
		},
		indicators: Indicators{
			TechnicalInnovationHeat: 0.5,
			LuxuryTechConvergence:   0.3,
			SustainabilityPressure:  0.4,
			EconomicConfidence:      0.7,
		},
		growth: map[int]float64{
			SegmentCoreTechnical:    0.02,
			SegmentOutdoorTechnical: 0.05,
			SegmentAthleisure:       0.04,
			SegmentLuxuryActivewear: 0.08,
			SegmentAthluxury:        0.06,
			SegmentHPLuxury:         0.10,
			SegmentLuxuryFashion:    0.01,
		},
		saturation: map[int]float64{
			SegmentCoreTechnical:    0.8,
			SegmentOutdoorTechnical: 0.6,
			SegmentAthleisure:       0.7,
			SegmentLuxuryActivewear: 0.4,
			SegmentAthluxury:        0.3,
			SegmentHPLuxury:         0.2,
			SegmentLuxuryFashion:    0.9,
		},
		rng: rng,
	}
}

// Preferences returns the current consumer preferences.
func (s *State) Preferences() Preferences { return s.prefs }

// Indicators returns the current market indicators.
func (s *State) Indicators() Indicators { return s.indicators }

// GrowthRate returns the current growth rate of a segment.
func (s *State) GrowthRate(id int) float64 { return s.growth[id] }

// Quarter returns the 1-based quarter within the current year.
func (s *State) Quarter() int { return (s.step-1)%4 + 1 }

// Year returns the 1-based simulated year.
func (s *State) Year() int { return (s.step-1)/4 + 1 }

// Advance moves the market one quarter forward: natural evolution of
// preferences, indicators, and segment dynamics, then ongoing shock effects.
func (s *State) Advance() {
	s.step++
	s.evolvePreferences()
	s.evolveIndicators()
	s.evolveSegments()
	s.processShocks()
}

func (s *State) evolvePreferences() {
	if s.indicators.TechnicalInnovationHeat > 0.6 {
		s.prefs.FunctionalityImportance = clamp(s.prefs.FunctionalityImportance+0.01, 0, 1)
	}

	// Sustainability is a long-term secular trend.
	s.prefs.SustainabilityImportance = clamp(s.prefs.SustainabilityImportance+0.005, 0, 1)

	if s.indicators.EconomicConfidence > 0.7 {
		s.prefs.BrandStatusImportance = clamp(s.prefs.BrandStatusImportance+0.005, 0, 1)
	} else {
		s.prefs.BrandStatusImportance = clamp(s.prefs.BrandStatusImportance-0.01, 0.3, 1)
	}

	// Price sensitivity moves inversely with economic confidence.
	s.prefs.PriceSensitivity = math.Max(0.2, 1.0-s.indicators.EconomicConfidence*0.8)

	s.prefs.FunctionalityImportance = s.jitter(s.prefs.FunctionalityImportance)
	s.prefs.SustainabilityImportance = s.jitter(s.prefs.SustainabilityImportance)
	s.prefs.BrandStatusImportance = s.jitter(s.prefs.BrandStatusImportance)
	s.prefs.PriceSensitivity = s.jitter(s.prefs.PriceSensitivity)
}

func (s *State) jitter(v float64) float64 {
	return clamp(v+s.rng.NormFloat64()*0.01, 0, 1)
}

func (s *State) evolveIndicators() {
	// Innovation heat follows an innovation cycle.
	innovationCycle := math.Sin(float64(s.step)*0.2) * 0.1
	s.indicators.TechnicalInnovationHeat = clamp(s.indicators.TechnicalInnovationHeat+innovationCycle*0.1, 0, 1)

	// Luxury-technical convergence is the major secular trend.
	s.indicators.LuxuryTechConvergence = math.Min(0.8, s.indicators.LuxuryTechConvergence+0.01)

	s.indicators.SustainabilityPressure = math.Min(0.9, s.indicators.SustainabilityPressure+0.008)

	// Economic confidence follows a business cycle.
	economicCycle := math.Sin(float64(s.step)*0.15) * 0.05
	s.indicators.EconomicConfidence = clamp(s.indicators.EconomicConfidence+economicCycle, 0.2, 1)
}

func (s *State) evolveSegments() {
	// HP Luxury growth rides the luxury-tech convergence trend.
	s.growth[SegmentHPLuxury] = 0.10 + s.indicators.LuxuryTechConvergence*0.05

	techEffect := (s.prefs.FunctionalityImportance - 0.5) * 0.02
	s.growth[SegmentCoreTechnical] += techEffect
	s.growth[SegmentOutdoorTechnical] += techEffect

	luxuryEffect := (s.prefs.BrandStatusImportance - 0.7) * 0.01
	s.growth[SegmentLuxuryFashion] += luxuryEffect

	// Growth feeds saturation.
	for id, rate := range s.growth {
		cur := s.saturation[id]
		s.saturation[id] = math.Min(0.95, cur+rate*0.5*(1-cur))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
