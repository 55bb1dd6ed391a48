// Package allocation implements the producer-side rationing of scarce
// production capacity among competing partnership proposals.
package allocation

import (
	"math/rand"

	"modamesh/internal/brand"
	"modamesh/internal/capacity"
	"modamesh/internal/partnership"
	"modamesh/internal/product"
)

// Policy rations capacity for one model variant. A rejection returns
// (0, nil): the caller counts it as a capacity-rejected proposal, not an
// error.
type Policy struct {
	model   partnership.Model
	params  partnership.Params
	catalog *product.Catalog
}

// NewPolicy builds the rationing policy for a model variant.
func NewPolicy(model partnership.Model, params partnership.Params, catalog *product.Catalog) *Policy {
	return &Policy{model: model, params: params, catalog: catalog}
}

// PriorityScore ranks a brand for allocation: revenue size (capped), the
// model's segment priority table, and market leadership.
func (p *Policy) PriorityScore(b brand.Profile) float64 {
	revenueFactor := b.AnnualRevenueMillions / 1000
	if revenueFactor > 2.0 {
		revenueFactor = 2.0
	}

	segmentPriority, ok := p.params.SegmentPriority[b.PrimarySegment()]
	if !ok {
		segmentPriority = 1.0
	}

	return revenueFactor*0.3 + segmentPriority*0.4 + b.MarketLeaderScore*0.3
}

// Allocate decides how many units the producer actually grants a brand and
// how they spread across products. The grant is capped by desired units, a
// fixed share of total remaining capacity (anti-monopolization), and the
// per-model absolute cap; strategically valuable brands get a bounded boost.
func (p *Policy) Allocate(b brand.Profile, desiredUnits int, tracker *capacity.Tracker, rng *rand.Rand) (int, map[string]int) {
	totalAvailable := tracker.TotalAvailable()
	if totalAvailable == 0 {
		return 0, nil
	}

	capacityCap := int(float64(totalAvailable) * p.params.MaxShareOfAvailable)

	granted := desiredUnits
	if capacityCap < granted {
		granted = capacityCap
	}
	if p.params.AbsoluteUnitCap < granted {
		granted = p.params.AbsoluteUnitCap
	}

	if score := p.PriorityScore(b); score > p.params.PriorityBoostAbove {
		boost := score
		if boost > p.params.PriorityBoostCap {
			boost = p.params.PriorityBoostCap
		}
		granted = int(float64(granted) * boost)
	}

	if granted < p.params.MinViableOrder {
		return 0, nil
	}

	distribution := p.distribute(b, granted, rng)

	// Clip each slice to the product's own remaining capacity; drop slices
	// that shrink below a viable run.
	final := make(map[string]int, len(distribution))
	total := 0
	for name, units := range distribution {
		available := tracker.Available(name)
		if available >= units {
			final[name] = units
			total += units
		} else if available >= p.params.MinViableOrder {
			final[name] = available
			total += available
		}
	}

	if total < p.params.MinViableOrder {
		return 0, nil
	}
	return total, final
}

// distribute spreads a granted total across 1-4 products drawn by a
// brand-profile-weighted lottery: technical products go to brands lacking
// technical capability, sustainable products to sustainability-minded
// brands, high-complexity products to luxury-fashion brands.
func (p *Policy) distribute(b brand.Profile, totalUnits int, rng *rand.Rand) map[string]int {
	products := p.catalog.Products()

	weights := make([]float64, len(products))
	for i, prod := range products {
		w := 1.0
		if prod.Technical() {
			w *= 1 + (0.8 - b.TechnicalCapability)
		}
		if prod.Sustainable() {
			w *= 1 + b.SustainabilityScore
		}
		if b.InSegment(7) && prod.HighComplexity() {
			w *= 1.5
		}
		weights[i] = w
	}

	maxProducts := 4
	if len(products) < maxProducts {
		maxProducts = len(products)
	}
	n := 1 + rng.Intn(maxProducts)

	selected := weightedSample(products, weights, n, rng)

	allocation := make(map[string]int, len(selected))
	remaining := totalUnits
	for i, prod := range selected {
		if i == len(selected)-1 {
			allocation[prod.Name] = remaining
			break
		}
		units := int(float64(remaining) * (0.2 + rng.Float64()*0.3))
		allocation[prod.Name] = units
		remaining -= units
	}
	return allocation
}

// weightedSample draws n distinct products proportionally to their weights.
func weightedSample(products []product.Product, weights []float64, n int, rng *rand.Rand) []product.Product {
	remaining := make([]product.Product, len(products))
	copy(remaining, products)
	w := make([]float64, len(weights))
	copy(w, weights)

	if n > len(remaining) {
		n = len(remaining)
	}

	selected := make([]product.Product, 0, n)
	for len(selected) < n {
		sum := 0.0
		for _, v := range w {
			sum += v
		}
		if sum <= 0 {
			break
		}
		r := rng.Float64() * sum
		idx := len(remaining) - 1
		for i, v := range w {
			r -= v
			if r <= 0 {
				idx = i
				break
			}
		}
		selected = append(selected, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		w = append(w[:idx], w[idx+1:]...)
	}
	return selected
}
