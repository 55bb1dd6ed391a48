package capacity

import (
	"fmt"

	"modamesh/internal/product"
)

// Tracker is the per-trial ledger of production commitments. Annual ceilings
// are derived once from the Config and never resized mid-trial; committed
// units stay within 0..annual at all times.
type Tracker struct {
	annual    map[string]int
	committed map[string]int
	names     []string
}

// NewTracker derives the per-product annual ceilings from the catalog tiers.
func NewTracker(catalog *product.Catalog, cfg Config) *Tracker {
	t := &Tracker{
		annual:    make(map[string]int, catalog.Len()),
		committed: make(map[string]int, catalog.Len()),
		names:     catalog.Names(),
	}
	for _, p := range catalog.Products() {
		t.annual[p.Name] = cfg.ProductCapacity(p.Complexity)
		t.committed[p.Name] = 0
	}
	return t
}

// Annual returns the fixed annual ceiling for a product.
func (t *Tracker) Annual(name string) int {
	return t.annual[name]
}

// Committed returns the units currently committed for a product.
func (t *Tracker) Committed(name string) int {
	return t.committed[name]
}

// Available returns the uncommitted units for a product.
func (t *Tracker) Available(name string) int {
	return t.annual[name] - t.committed[name]
}

// TotalAvailable sums uncommitted units across all products.
func (t *Tracker) TotalAvailable() int {
	total := 0
	for _, name := range t.names {
		total += t.Available(name)
	}
	return total
}

// Commit reserves units for a product. Callers must check Available first;
// a commit that would breach the annual ceiling is refused.
func (t *Tracker) Commit(name string, units int) error {
	if units < 0 {
		return fmt.Errorf("commit %s: negative units %d", name, units)
	}
	if units > t.Available(name) {
		return fmt.Errorf("commit %s: %d units exceed available %d", name, units, t.Available(name))
	}
	t.committed[name] += units
	return nil
}

// Release frees units when a deal expires. The result clamps at zero so a
// double release cannot drive the ledger negative.
func (t *Tracker) Release(name string, units int) {
	remaining := t.committed[name] - units
	if remaining < 0 {
		remaining = 0
	}
	t.committed[name] = remaining
}

// Utilization returns overall committed capacity as a percentage.
func (t *Tracker) Utilization() float64 {
	totalAnnual := 0
	totalCommitted := 0
	for _, name := range t.names {
		totalAnnual += t.annual[name]
		totalCommitted += t.committed[name]
	}
	if totalAnnual == 0 {
		return 0
	}
	return float64(totalCommitted) / float64(totalAnnual) * 100
}
