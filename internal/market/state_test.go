package market

import (
	"math/rand"
	"testing"
)

func TestQuarterAndYear(t *testing.T) {
	s := NewState(rand.New(rand.NewSource(1)))

	tests := []struct {
		advances int
		quarter  int
		year     int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{4, 4, 1},
		{5, 1, 2},
		{9, 1, 3},
	}

	for _, tt := range tests {
		s = NewState(rand.New(rand.NewSource(1)))
		for i := 0; i < tt.advances; i++ {
			s.Advance()
		}
		if s.Quarter() != tt.quarter || s.Year() != tt.year {
			t.Errorf("after %d advances: quarter %d year %d, want %d/%d",
				tt.advances, s.Quarter(), s.Year(), tt.quarter, tt.year)
		}
	}
}

func TestAdvanceKeepsValuesBounded(t *testing.T) {
	s := NewState(rand.New(rand.NewSource(7)))

	for i := 0; i < 40; i++ {
		s.Advance()
		p := s.Preferences()
		for name, v := range map[string]float64{
			"functionality":  p.FunctionalityImportance,
			"sustainability": p.SustainabilityImportance,
			"brand_status":   p.BrandStatusImportance,
			"price":          p.PriceSensitivity,
		} {
			if v < 0 || v > 1 {
				t.Fatalf("quarter %d: preference %s = %v out of [0,1]", i+1, name, v)
			}
		}
		ind := s.Indicators()
		if ind.EconomicConfidence < 0.2 || ind.EconomicConfidence > 1 {
			t.Fatalf("quarter %d: economic confidence %v out of [0.2,1]", i+1, ind.EconomicConfidence)
		}
	}
}

func TestSecularTrends(t *testing.T) {
	s := NewState(rand.New(rand.NewSource(3)))
	start := s.Indicators()

	for i := 0; i < 20; i++ {
		s.Advance()
	}

	end := s.Indicators()
	if end.LuxuryTechConvergence <= start.LuxuryTechConvergence {
		t.Errorf("luxury-tech convergence should rise: %v -> %v", start.LuxuryTechConvergence, end.LuxuryTechConvergence)
	}
	if end.SustainabilityPressure <= start.SustainabilityPressure {
		t.Errorf("sustainability pressure should rise: %v -> %v", start.SustainabilityPressure, end.SustainabilityPressure)
	}
	if end.LuxuryTechConvergence > 0.8 {
		t.Errorf("luxury-tech convergence %v exceeds its 0.8 ceiling", end.LuxuryTechConvergence)
	}
}

func TestDeterministicEvolution(t *testing.T) {
	a := NewState(rand.New(rand.NewSource(11)))
	b := NewState(rand.New(rand.NewSource(11)))

	for i := 0; i < 12; i++ {
		a.Advance()
		b.Advance()
	}

	if a.Preferences() != b.Preferences() || a.Indicators() != b.Indicators() {
		t.Error("identically seeded states diverged")
	}
}

func TestRecessionShock(t *testing.T) {
	s := NewState(rand.New(rand.NewSource(5)))
	before := s.Indicators().EconomicConfidence
	growthBefore := s.GrowthRate(SegmentAthleisure)

	s.ApplyShock(ShockRecession, 4, 0.6)

	if got := s.Indicators().EconomicConfidence; got >= before {
		t.Errorf("recession should cut economic confidence: %v -> %v", before, got)
	}
	if got := s.GrowthRate(SegmentAthleisure); got >= growthBefore {
		t.Errorf("recession should cut segment growth: %v -> %v", growthBefore, got)
	}
	if got := s.Preferences().PriceSensitivity; got <= 0.4 {
		t.Errorf("recession should raise price sensitivity, got %v", got)
	}
}

func TestShockExpires(t *testing.T) {
	s := NewState(rand.New(rand.NewSource(5)))
	s.ApplyShock(ShockTechBoom, 3, 0.5)

	if got := len(s.ActiveShocks()); got != 1 {
		t.Fatalf("ActiveShocks() = %d, want 1", got)
	}

	// remaining: 3 -> 2 -> 1 -> dropped.
	s.Advance()
	s.Advance()
	if got := len(s.ActiveShocks()); got != 1 {
		t.Fatalf("ActiveShocks() after 2 quarters = %d, want 1", got)
	}
	s.Advance()
	if got := len(s.ActiveShocks()); got != 0 {
		t.Errorf("ActiveShocks() after duration = %d, want 0", got)
	}
}

func TestLuxuryTechConvergenceShockBoostsHPLuxury(t *testing.T) {
	s := NewState(rand.New(rand.NewSource(5)))
	before := s.GrowthRate(SegmentHPLuxury)

	s.ApplyShock(ShockLuxuryTechConvergence, 4, 0.7)

	if got := s.GrowthRate(SegmentHPLuxury); got <= before {
		t.Errorf("convergence shock should boost High-Performance Luxury growth: %v -> %v", before, got)
	}
	if got := s.Indicators().LuxuryTechConvergence; got <= 0.3 {
		t.Errorf("convergence indicator should jump, got %v", got)
	}
}

func TestIntelligenceWeightsUnsaturatedSegments(t *testing.T) {
	s := NewState(rand.New(rand.NewSource(5)))

	// HP Luxury (saturation 0.2, growth 0.10) vs Luxury Fashion (0.9, 0.01).
	intel := s.Intelligence([]int{SegmentHPLuxury, SegmentLuxuryFashion})

	// Weighted growth must land far closer to the unsaturated segment's rate.
	if intel.WeightedGrowth < 0.08 {
		t.Errorf("WeightedGrowth = %v, want dominated by the unsaturated segment", intel.WeightedGrowth)
	}
	if len(intel.GrowthRates) != 2 {
		t.Errorf("GrowthRates has %d entries, want 2", len(intel.GrowthRates))
	}
}

func TestIntelligenceEconomicThreat(t *testing.T) {
	s := NewState(rand.New(rand.NewSource(5)))
	s.ApplyShock(ShockRecession, 6, 0.9)

	intel := s.Intelligence([]int{SegmentAthleisure})
	found := false
	for _, threat := range intel.Threats {
		if threat.Type == "economic_downturn" {
			found = true
		}
	}
	if !found {
		t.Error("deep recession should surface an economic_downturn threat")
	}
}
