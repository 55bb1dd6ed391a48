package simulation

import (
	"context"
	"testing"

	"modamesh/internal/brand"
	"modamesh/internal/config"
	"modamesh/internal/partnership"
	"modamesh/internal/product"
)

func testInputs(t *testing.T) Inputs {
	t.Helper()
	catalog, err := product.NewCatalog([]product.Product{
		{Name: "Thermo Liner", VariableCost: 24.6, Complexity: product.TierVeryHigh, Category: product.CategoryTechnical},
		{Name: "Mesh Panel", VariableCost: 11.8, Complexity: product.TierHigh, Category: product.CategoryTechnical},
		{Name: "Bonding Strip", VariableCost: 7.4, Complexity: product.TierHigh, Category: product.CategoryStructural},
		{Name: "Magnetic Closure", VariableCost: 5.2, Complexity: product.TierMedium, Category: product.CategoryStructural},
		{Name: "Recycled Jacquard", VariableCost: 16.5, Complexity: product.TierVeryHigh, Category: product.CategorySustainable},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	brands := []brand.Profile{
		{
			Name: "Aurora Alpina", AnnualRevenueMillions: 85, EBITDAMargin: 0.12,
			Segments: []int{1, 2}, AvgPriceIndex: 220,
			TechnicalCapability: 0.78, SustainabilityScore: 0.45, InnovationPerception: 0.7,
			PartnershipSuccessRate: 0.75, OutsourcingRatio: 0.55,
			ProductionFlexibility: 0.6, TechnicalManufacturing: 0.72, SupplyChainComplexity: 0.5,
			LeadTimeIndex: 2, PriceElasticity: 0.65, MarketLeaderScore: 0.4, BrandDilutionSensitivity: 0.25,
		},
		{
			Name: "Velluto Sport", AnnualRevenueMillions: 60, EBITDAMargin: 0.1,
			Segments: []int{3}, AvgPriceIndex: 150,
			TechnicalCapability: 0.35, SustainabilityScore: 0.4, InnovationPerception: 0.45,
			PartnershipSuccessRate: 0.65, OutsourcingRatio: 0.7,
			ProductionFlexibility: 0.3, TechnicalManufacturing: 0.3, SupplyChainComplexity: 0.8,
			LeadTimeIndex: 4, PriceElasticity: 0.8, MarketLeaderScore: 0.25, BrandDilutionSensitivity: 0.35,
		},
		{
			Name: "Serafino Milano", AnnualRevenueMillions: 480, EBITDAMargin: 0.2,
			Segments: []int{5}, AvgPriceIndex: 780,
			TechnicalCapability: 0.3, SustainabilityScore: 0.52, InnovationPerception: 0.68,
			PartnershipSuccessRate: 0.82, OutsourcingRatio: 0.4,
			ProductionFlexibility: 0.45, TechnicalManufacturing: 0.28, SupplyChainComplexity: 0.7,
			LeadTimeIndex: 4, PriceElasticity: 0.35, MarketLeaderScore: 0.7, BrandDilutionSensitivity: 0.65,
		},
		{
			Name: "Maison Lucerna", AnnualRevenueMillions: 2400, EBITDAMargin: 0.26,
			Segments: []int{7}, AvgPriceIndex: 2100,
			TechnicalCapability: 0.22, SustainabilityScore: 0.58, InnovationPerception: 0.82,
			PartnershipSuccessRate: 0.9, OutsourcingRatio: 0.2,
			ProductionFlexibility: 0.3, TechnicalManufacturing: 0.25, SupplyChainComplexity: 0.82,
			LeadTimeIndex: 5, PriceElasticity: 0.15, MarketLeaderScore: 0.92, BrandDilutionSensitivity: 0.9,
		},
	}
	return Inputs{Catalog: catalog, Brands: brands}
}

func testConfig() *config.Simulation {
	sim := config.DefaultSimulation()
	sim.Trials = 3
	sim.Years = 2
	sim.Workers = 2
	return sim
}

func TestTrialIsDeterministic(t *testing.T) {
	cfg := testConfig()
	in := testInputs(t)

	a, err := NewTrial(5, partnership.CoBranded, cfg, in).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	b, err := NewTrial(5, partnership.CoBranded, cfg, in).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if a.TotalRevenue != b.TotalRevenue || a.NPVProfit != b.NPVProfit {
		t.Errorf("identical trials diverged: revenue %v vs %v, npv %v vs %v",
			a.TotalRevenue, b.TotalRevenue, a.NPVProfit, b.NPVProfit)
	}
	if a.PartnershipsFormed != b.PartnershipsFormed {
		t.Errorf("partnerships diverged: %d vs %d", a.PartnershipsFormed, b.PartnershipsFormed)
	}
	if a.Seed != cfg.BaseSeed+5 {
		t.Errorf("Seed = %d, want %d", a.Seed, cfg.BaseSeed+5)
	}
}

func TestTrialOutcomeInvariants(t *testing.T) {
	cfg := testConfig()
	in := testInputs(t)

	for _, model := range partnership.Models() {
		out, err := NewTrial(0, model, cfg, in).Run()
		if err != nil {
			t.Fatalf("Run(%s) error = %v", model, err)
		}

		if out.TotalProfit > out.TotalRevenue {
			t.Errorf("%s: profit %v exceeds revenue %v", model, out.TotalProfit, out.TotalRevenue)
		}
		if out.TotalRevenue > 0 && out.NPVRevenue >= out.TotalRevenue {
			t.Errorf("%s: discounting should shrink revenue: npv %v vs total %v", model, out.NPVRevenue, out.TotalRevenue)
		}
		if out.MaxUtilization < 0 || out.MaxUtilization > 100 {
			t.Errorf("%s: MaxUtilization = %v out of [0,100]", model, out.MaxUtilization)
		}
		if len(out.RevenueByYear) != cfg.Years {
			t.Errorf("%s: RevenueByYear has %d entries, want %d", model, len(out.RevenueByYear), cfg.Years)
		}

		var yearSum float64
		for _, v := range out.RevenueByYear {
			yearSum += v
		}
		if diff := yearSum - out.TotalRevenue; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("%s: yearly revenue %v does not sum to total %v", model, yearSum, out.TotalRevenue)
		}
	}
}

func TestShockScheduleBounds(t *testing.T) {
	cfg := testConfig()
	cfg.Years = 5
	in := testInputs(t)

	for id := 0; id < 20; id++ {
		tr := NewTrial(id, partnership.WhiteLabel, cfg, in)
		lastMonth := 0
		for _, s := range tr.shocks {
			if s.Month < 6 || s.Month > cfg.TotalMonths()-12 {
				t.Fatalf("trial %d: shock month %d outside [6, %d]", id, s.Month, cfg.TotalMonths()-12)
			}
			if s.Month < lastMonth {
				t.Fatalf("trial %d: shocks not sorted by month", id)
			}
			lastMonth = s.Month
			if s.DurationQuarters < 3 || s.DurationQuarters > 8 {
				t.Fatalf("trial %d: shock duration %d outside [3,8]", id, s.DurationQuarters)
			}
			if s.Intensity < 0.4 || s.Intensity > 0.8 {
				t.Fatalf("trial %d: shock intensity %v outside [0.4,0.8]", id, s.Intensity)
			}
		}
		if len(tr.shocks) > cfg.MaxShocksPerTrial {
			t.Fatalf("trial %d: %d shocks exceed maximum %d", id, len(tr.shocks), cfg.MaxShocksPerTrial)
		}
	}
}

func TestShortHorizonDisablesShocks(t *testing.T) {
	cfg := testConfig()
	cfg.Years = 1
	in := testInputs(t)

	tr := NewTrial(0, partnership.WhiteLabel, cfg, in)
	if len(tr.shocks) != 0 {
		t.Errorf("one-year horizon produced %d shocks, want none", len(tr.shocks))
	}
}

func TestDriverRun(t *testing.T) {
	cfg := testConfig()
	in := testInputs(t)

	report, err := NewDriver(cfg, in).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(report.Aggregates) != 2 {
		t.Fatalf("Aggregates has %d models, want 2", len(report.Aggregates))
	}
	for _, model := range partnership.Models() {
		agg, ok := report.Aggregates[model]
		if !ok {
			t.Fatalf("missing aggregate for %s", model)
		}
		if agg.Trials != cfg.Trials {
			t.Errorf("%s: Trials = %d, want %d", model, agg.Trials, cfg.Trials)
		}
	}
	if _, err := partnership.ParseModel(string(report.Recommended)); err != nil {
		t.Errorf("Recommended = %q is not a model", report.Recommended)
	}
}

func TestDriverRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = 0

	if _, err := NewDriver(cfg, testInputs(t)).Run(context.Background()); err == nil {
		t.Error("Run() with zero trials expected error, got nil")
	}
}

func TestDriverIsReproducible(t *testing.T) {
	cfg := testConfig()
	in := testInputs(t)

	a, err := NewDriver(cfg, in).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	b, err := NewDriver(cfg, in).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, model := range partnership.Models() {
		if a.Aggregates[model].NPVProfit.Mean != b.Aggregates[model].NPVProfit.Mean {
			t.Errorf("%s: mean NPV profit diverged between identical runs", model)
		}
	}
}

func TestDealReleasesAtExactBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.RenewalProbability = 0
	in := testInputs(t)

	tr := NewTrial(0, partnership.WhiteLabel, cfg, in)

	// A 12-month deal formed in month 1 holds its capacity through month 12
	// and releases it at the month-13 check.
	if err := tr.tracker.Commit("Thermo Liner", 8000); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	tr.active = append(tr.active, partnership.NewDeal(
		"Aurora Alpina", partnership.WhiteLabel, 1, 1, 13,
		map[string]partnership.Line{"Thermo Liner": {Units: 8000, UnitPrice: 28, VariableCost: 24.6}}))

	if err := tr.processExpiries(12); err != nil {
		t.Fatalf("processExpiries(12) error = %v", err)
	}
	if got := tr.tracker.Committed("Thermo Liner"); got != 8000 {
		t.Errorf("capacity released before the boundary: committed = %d, want 8000", got)
	}

	if err := tr.processExpiries(13); err != nil {
		t.Fatalf("processExpiries(13) error = %v", err)
	}
	if got := tr.tracker.Committed("Thermo Liner"); got != 0 {
		t.Errorf("capacity not released at the boundary: committed = %d, want 0", got)
	}
}

func TestExpiryReleasesCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.RenewalProbability = 0 // force every deal to lapse
	in := testInputs(t)

	tr := NewTrial(1, partnership.WhiteLabel, cfg, in)
	for month := 1; month <= cfg.TotalMonths(); month++ {
		if err := tr.runMonth(month); err != nil {
			t.Fatalf("month %d: %v", month, err)
		}
	}

	// Every remaining active deal's capacity is still committed; everything
	// else must have been released.
	committed := 0
	for _, deal := range tr.active {
		committed += deal.AnnualUnits
	}
	total := 0
	for _, name := range in.Catalog.Names() {
		total += tr.tracker.Committed(name)
	}
	if total != committed {
		t.Errorf("tracker holds %d committed units, active deals account for %d", total, committed)
	}

	// Lapsed brands are blocked from re-engagement.
	for name := range tr.blocked {
		if tr.hasActiveDeal(name, cfg.TotalMonths()) {
			t.Errorf("blocked brand %q still has an active deal", name)
		}
	}
}
