package simulation

import (
	"modamesh/internal/market"
	"modamesh/internal/partnership"
)

// ShockEvent schedules one market shock inside a trial.
type ShockEvent struct {
	Month            int              `json:"month"`
	Type             market.ShockType `json:"type"`
	DurationQuarters int              `json:"duration"`
	Intensity        float64          `json:"intensity"`
}

// Outcome is the aggregate record one trial produces. Immutable once the
// trial finishes; consumed only by the driver's aggregation step.
type Outcome struct {
	TrialID int               `json:"trial_id"`
	Model   partnership.Model `json:"model"`
	Seed    int64             `json:"seed"`

	TotalRevenue float64 `json:"total_revenue"`
	TotalProfit  float64 `json:"total_profit"`
	NPVRevenue   float64 `json:"npv_revenue"`
	NPVProfit    float64 `json:"npv_profit"`

	PartnershipsFormed  int `json:"partnerships_formed"`
	RejectedForCapacity int `json:"partnerships_rejected_capacity"`

	RevenueByYear    []float64          `json:"revenue_by_year"`
	ProfitByYear     []float64          `json:"profit_by_year"`
	RevenueByProduct map[string]float64 `json:"revenue_by_product"`
	ProfitByProduct  map[string]float64 `json:"profit_by_product"`

	PartnerBrands []string     `json:"partner_brands"`
	Shocks        []ShockEvent `json:"market_shocks"`

	AvgUtilization   float64 `json:"avg_capacity_utilization"`
	MaxUtilization   float64 `json:"max_capacity_utilization"`
	FinalUtilization float64 `json:"final_capacity_utilization"`
}
