package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"modamesh/internal/allocation"
	"modamesh/internal/brand"
	"modamesh/internal/capacity"
	"modamesh/internal/config"
	"modamesh/internal/demand"
	"modamesh/internal/market"
	"modamesh/internal/partnership"
	"modamesh/internal/pricing"
	"modamesh/internal/product"
)

// Inputs is the read-only static input shared by all trials. Trials never
// mutate it, so it is safe to share across the worker pool unsynchronized.
type Inputs struct {
	Catalog *product.Catalog
	Brands  []brand.Profile
}

// Trial is one complete, independently seeded run of the monthly clock over
// the full horizon. It owns its Capacity Tracker, rng stream, and market
// state; nothing is shared with other trials.
type Trial struct {
	id     int
	model  partnership.Model
	cfg    *config.Simulation
	params partnership.Params

	catalog *product.Catalog
	brands  []brand.Profile

	seed    int64
	rng     *rand.Rand
	tracker *capacity.Tracker
	market  *market.State
	policy  *allocation.Policy

	shocks     []ShockEvent
	shockIndex int

	active  []partnership.Deal
	blocked map[string]bool

	monthlyRevenue []float64
	monthlyProfit  []float64
	utilization    []float64

	formed           int
	rejectedCapacity int
	revenueByProduct map[string]float64
	profitByProduct  map[string]float64
	partnerBrands    map[string]bool

	activeCoBranded int
}

// NewTrial wires up the per-trial state. The seed is base_seed + trial index
// so every trial is independently reproducible.
func NewTrial(id int, model partnership.Model, cfg *config.Simulation, in Inputs) *Trial {
	seed := cfg.BaseSeed + int64(id)
	rng := rand.New(rand.NewSource(seed))
	params := partnership.DefaultParams(model)

	// Seeded copies: the per-trial stochastic brand attributes are drawn
	// here, in stable name order, from the trial's own stream.
	brands := make([]brand.Profile, len(in.Brands))
	for i, p := range in.Brands {
		brands[i] = p.Seeded(rng)
	}

	t := &Trial{
		id:               id,
		model:            model,
		cfg:              cfg,
		params:           params,
		catalog:          in.Catalog,
		brands:           brands,
		seed:             seed,
		rng:              rng,
		tracker:          capacity.NewTracker(in.Catalog, cfg.Capacity),
		market:           market.NewState(rng),
		policy:           allocation.NewPolicy(model, params, in.Catalog),
		blocked:          make(map[string]bool),
		monthlyRevenue:   make([]float64, cfg.TotalMonths()),
		monthlyProfit:    make([]float64, cfg.TotalMonths()),
		revenueByProduct: make(map[string]float64),
		profitByProduct:  make(map[string]float64),
		partnerBrands:    make(map[string]bool),
	}
	for _, name := range in.Catalog.Names() {
		t.revenueByProduct[name] = 0
		t.profitByProduct[name] = 0
	}
	t.shocks = t.generateShocks()
	return t
}

// generateShocks draws this trial's shock schedule: up to the configured
// number of shocks, landing between month 6 and a year before the horizon.
func (t *Trial) generateShocks() []ShockEvent {
	total := t.cfg.TotalMonths()
	latest := total - t.cfg.MonthsPerYear
	if latest < 6 || t.cfg.MaxShocksPerTrial == 0 {
		return nil
	}

	catalog := market.ShockCatalog()
	n := t.rng.Intn(t.cfg.MaxShocksPerTrial + 1)
	shocks := make([]ShockEvent, 0, n)
	for i := 0; i < n; i++ {
		shocks = append(shocks, ShockEvent{
			Month:            6 + t.rng.Intn(latest-6+1),
			Type:             catalog[t.rng.Intn(len(catalog))],
			DurationQuarters: 3 + t.rng.Intn(6),
			Intensity:        0.4 + t.rng.Float64()*0.4,
		})
	}
	sort.SliceStable(shocks, func(i, j int) bool { return shocks[i].Month < shocks[j].Month })
	return shocks
}

// Run steps the clock over the full horizon and produces the trial outcome.
func (t *Trial) Run() (Outcome, error) {
	for month := 1; month <= t.cfg.TotalMonths(); month++ {
		if err := t.runMonth(month); err != nil {
			return Outcome{}, fmt.Errorf("trial %d (%s), month %d: %w", t.id, t.model, month, err)
		}
	}
	return t.outcome(), nil
}

// runMonth executes one tick in the fixed order the ledger requires:
// market update, expiries and renewals (capacity released before any
// re-commit), new proposals, then revenue accrual.
func (t *Trial) runMonth(month int) error {
	if (month-1)%3 == 0 {
		t.market.Advance()
		for t.shockIndex < len(t.shocks) && t.shocks[t.shockIndex].Month <= month {
			s := t.shocks[t.shockIndex]
			t.market.ApplyShock(s.Type, s.DurationQuarters, s.Intensity)
			t.shockIndex++
		}
	}

	if err := t.processExpiries(month); err != nil {
		return err
	}

	if t.model == partnership.CoBranded {
		t.activeCoBranded = t.countActive(month)
	}

	if err := t.processProposals(month); err != nil {
		return err
	}

	for _, deal := range t.active {
		if deal.ActiveIn(month) {
			t.monthlyRevenue[month-1] += deal.MonthlyRevenue
			t.monthlyProfit[month-1] += deal.MonthlyProfit
		}
	}

	t.utilization = append(t.utilization, t.tracker.Utilization())
	return nil
}

func (t *Trial) countActive(month int) int {
	n := 0
	for _, deal := range t.active {
		if deal.ActiveIn(month) {
			n++
		}
	}
	return n
}

func (t *Trial) hasActiveDeal(brandName string, month int) bool {
	for _, deal := range t.active {
		if deal.Brand == brandName && deal.EndMonth >= month {
			return true
		}
	}
	return false
}

func (t *Trial) profileByName(name string) (brand.Profile, bool) {
	for _, p := range t.brands {
		if p.Name == name {
			return p, true
		}
	}
	return brand.Profile{}, false
}

// processExpiries retires deals whose end month has arrived, releasing their
// capacity first so renewals and new proposals in the same month see the
// freed availability.
func (t *Trial) processExpiries(month int) error {
	remaining := t.active[:0]
	var expired []partnership.Deal
	for _, deal := range t.active {
		if deal.EndMonth == month {
			for name, line := range deal.Products {
				t.tracker.Release(name, line.Units)
			}
			expired = append(expired, deal)
		} else {
			remaining = append(remaining, deal)
		}
	}
	t.active = remaining

	for _, deal := range expired {
		if t.blocked[deal.Brand] || t.rng.Float64() >= t.cfg.RenewalProbability {
			t.blocked[deal.Brand] = true
			continue
		}
		if err := t.attemptRenewal(deal, month); err != nil {
			return err
		}
	}
	return nil
}

// attemptRenewal asks the allocation policy for the same volume again. If
// capacity no longer supports it, the brand is blocked from immediate
// re-proposal so a saturated pool does not thrash.
func (t *Trial) attemptRenewal(old partnership.Deal, month int) error {
	profile, ok := t.profileByName(old.Brand)
	if !ok {
		return fmt.Errorf("renewal for unknown brand %q", old.Brand)
	}

	granted, dist := t.policy.Allocate(profile, old.AnnualUnits, t.tracker, t.rng)
	if granted == 0 {
		t.blocked[old.Brand] = true
		return nil
	}

	lines, err := t.commitAndPrice(profile, dist)
	if err != nil {
		return err
	}

	durationMonths := t.drawDurationMonths()
	endMonth := month + durationMonths
	if endMonth > t.cfg.TotalMonths() {
		endMonth = t.cfg.TotalMonths()
	}
	t.active = append(t.active, partnership.NewDeal(
		old.Brand, t.model, old.PrimarySegment, month+1, endMonth, lines))
	return nil
}

// processProposals lets every unengaged, unblocked brand whose decision
// cadence aligns with the month evaluate a fresh proposal.
func (t *Trial) processProposals(month int) error {
	sample := t.catalog.Products()[0]
	samplePrice := sample.VariableCost * t.params.EvaluationMarkup

	for _, b := range t.brands {
		if t.blocked[b.Name] || t.hasActiveDeal(b.Name, month) {
			continue
		}
		if month%b.DecisionFrequency() != 0 {
			continue
		}

		intel := t.market.Intelligence(b.Segments)
		eval := b.EvaluatePartnership(sample, t.model, samplePrice, intel)

		propensity := eval.Propensity
		if t.model == partnership.CoBranded {
			propensity *= t.exclusivityFactor(b)
		}

		threshold := t.cfg.BaseDecisionThreshold * (1.5 - b.RiskAppetite)
		if propensity <= threshold {
			continue
		}

		acceptance := propensity * (0.5 + b.DecisionSpeed*0.5)
		if t.rng.Float64() >= acceptance {
			continue
		}

		desired := demand.Estimate(b, t.params, demand.Bounds{
			MinUnits: t.cfg.MinUnitsPerProduct,
			MaxUnits: t.cfg.MaxUnitsPerProduct,
		}, t.rng)

		granted, dist := t.policy.Allocate(b, desired, t.tracker, t.rng)
		if granted == 0 {
			t.rejectedCapacity++
			continue
		}

		if !t.policy.AcceptStrategically(b, granted, t.activeCoBranded, t.rng) {
			continue
		}

		lines, err := t.commitAndPrice(b, dist)
		if err != nil {
			return err
		}

		t.formed++
		t.partnerBrands[b.Name] = true

		durationMonths := t.drawDurationMonths()
		endMonth := month + durationMonths
		if endMonth > t.cfg.TotalMonths() {
			endMonth = t.cfg.TotalMonths()
		}

		for name, line := range lines {
			annualRevenue := line.UnitPrice * float64(line.Units)
			annualProfit := annualRevenue - line.VariableCost*float64(line.Units)
			years := float64(durationMonths) / 12
			t.revenueByProduct[name] += annualRevenue * years
			t.profitByProduct[name] += annualProfit * years
		}

		t.active = append(t.active, partnership.NewDeal(
			b.Name, t.model, b.PrimarySegment(), month, endMonth, lines))
	}
	return nil
}

// exclusivityFactor damps co-branded propensity as the active co-branded
// roster grows; luxury brands insist on more exclusivity than technical ones.
func (t *Trial) exclusivityFactor(b brand.Profile) float64 {
	count := float64(t.activeCoBranded)
	switch {
	case b.InSegment(market.SegmentHPLuxury) || b.InSegment(market.SegmentLuxuryFashion):
		return math.Max(0.5, 1.0-count*0.08)
	case b.InSegment(market.SegmentLuxuryActivewear) || b.InSegment(market.SegmentAthluxury):
		return math.Max(0.6, 1.0-count*0.05)
	default:
		return math.Max(0.8, 1.0-count*0.02)
	}
}

// commitAndPrice reserves capacity for a granted distribution and prices
// each line at current-month rates.
func (t *Trial) commitAndPrice(b brand.Profile, dist map[string]int) (map[string]partnership.Line, error) {
	lines := make(map[string]partnership.Line, len(dist))
	for name, units := range dist {
		prod, ok := t.catalog.Get(name)
		if !ok {
			return nil, fmt.Errorf("allocation references unknown product %q", name)
		}
		if err := t.tracker.Commit(name, units); err != nil {
			return nil, err
		}
		lines[name] = partnership.Line{
			Units:        units,
			UnitPrice:    pricing.UnitPrice(prod, units, t.model, t.params, b),
			VariableCost: prod.VariableCost,
		}
	}
	return lines, nil
}

func (t *Trial) drawDurationMonths() int {
	span := t.cfg.MaxDurationYears - t.cfg.MinDurationYears + 1
	years := t.cfg.MinDurationYears + t.rng.Intn(span)
	return years * 12
}

// outcome folds the trial's monthly series into the immutable result record.
func (t *Trial) outcome() Outcome {
	total := t.cfg.TotalMonths()

	var totalRevenue, totalProfit float64
	for i := 0; i < total; i++ {
		totalRevenue += t.monthlyRevenue[i]
		totalProfit += t.monthlyProfit[i]
	}

	monthlyRate := math.Pow(1+t.cfg.DiscountRate, 1.0/12) - 1
	var npvRevenue, npvProfit float64
	for i := 0; i < total; i++ {
		factor := math.Pow(1+monthlyRate, -float64(i))
		npvRevenue += t.monthlyRevenue[i] * factor
		npvProfit += t.monthlyProfit[i] * factor
	}

	revenueByYear := make([]float64, t.cfg.Years)
	profitByYear := make([]float64, t.cfg.Years)
	for year := 0; year < t.cfg.Years; year++ {
		for m := year * t.cfg.MonthsPerYear; m < (year+1)*t.cfg.MonthsPerYear; m++ {
			revenueByYear[year] += t.monthlyRevenue[m]
			profitByYear[year] += t.monthlyProfit[m]
		}
	}

	partners := make([]string, 0, len(t.partnerBrands))
	for name := range t.partnerBrands {
		partners = append(partners, name)
	}
	sort.Strings(partners)

	var avgUtil, maxUtil, finalUtil float64
	if len(t.utilization) > 0 {
		sum := 0.0
		for _, u := range t.utilization {
			sum += u
			if u > maxUtil {
				maxUtil = u
			}
		}
		avgUtil = sum / float64(len(t.utilization))
		finalUtil = t.utilization[len(t.utilization)-1]
	}

	return Outcome{
		TrialID:             t.id,
		Model:               t.model,
		Seed:                t.seed,
		TotalRevenue:        totalRevenue,
		TotalProfit:         totalProfit,
		NPVRevenue:          npvRevenue,
		NPVProfit:           npvProfit,
		PartnershipsFormed:  t.formed,
		RejectedForCapacity: t.rejectedCapacity,
		RevenueByYear:       revenueByYear,
		ProfitByYear:        profitByYear,
		RevenueByProduct:    t.revenueByProduct,
		ProfitByProduct:     t.profitByProduct,
		PartnerBrands:       partners,
		Shocks:              t.shocks,
		AvgUtilization:      avgUtil,
		MaxUtilization:      maxUtil,
		FinalUtilization:    finalUtil,
	}
}
