package product

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Catalog holds the product cost table loaded once before any trial starts.
// Iteration order is stable (sorted by name) so trials stay reproducible.
type Catalog struct {
	products []Product
	byName   map[string]Product
}

// costEntry mirrors one record of the cost table file.
type costEntry struct {
	VariableCost float64 `json:"variable_cost"`
	Complexity   string  `json:"complexity"`
	Category     string  `json:"category"`
}

// NewCatalog builds a catalog from a product list, validating tiers and costs.
func NewCatalog(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("product catalog is empty")
	}

	byName := make(map[string]Product, len(products))
	for _, p := range products {
		if _, err := ParseTier(string(p.Complexity)); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}
		if p.VariableCost <= 0 {
			return nil, fmt.Errorf("product %q: variable cost must be positive, got %.2f", p.Name, p.VariableCost)
		}
		if _, dup := byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate product %q in cost table", p.Name)
		}
		byName[p.Name] = p
	}

	sorted := make([]Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	return &Catalog{products: sorted, byName: byName}, nil
}

// LoadCatalog reads the static cost table (product name -> cost entry).
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cost table: %w", err)
	}

	var entries map[string]costEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse cost table %s: %w", path, err)
	}

	products := make([]Product, 0, len(entries))
	for name, e := range entries {
		tier, err := ParseTier(e.Complexity)
		if err != nil {
			return nil, fmt.Errorf("cost table %s, product %q: %w", path, name, err)
		}
		products = append(products, Product{
			Name:         name,
			VariableCost: e.VariableCost,
			Complexity:   tier,
			Category:     e.Category,
		})
	}

	return NewCatalog(products)
}

// Products returns the catalog in stable name order.
func (c *Catalog) Products() []Product {
	return c.products
}

// Names returns the product names in stable order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// Get looks a product up by name.
func (c *Catalog) Get(name string) (Product, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
