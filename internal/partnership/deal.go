package partnership

// Line is one product position inside a deal.
type Line struct {
	Units        int     `json:"units"`
	UnitPrice    float64 `json:"unit_price"`
	VariableCost float64 `json:"variable_cost"`
}

// Deal is an agreement between the producer and a brand for specific
// products, prices, and a validity window. Fields are immutable while the
// deal is active; at expiry the deal leaves the active set and its committed
// capacity is released.
type Deal struct {
	Brand          string          `json:"brand"`
	Model          Model           `json:"model"`
	StartMonth     int             `json:"start_month"`
	EndMonth       int             `json:"end_month"`
	Products       map[string]Line `json:"products"`
	MonthlyRevenue float64         `json:"monthly_revenue"`
	MonthlyProfit  float64         `json:"monthly_profit"`
	PrimarySegment int             `json:"primary_segment"`
	AnnualUnits    int             `json:"annual_units"`
}

// ActiveIn reports whether the deal accrues revenue in the given month.
func (d Deal) ActiveIn(month int) bool {
	return d.StartMonth <= month && month <= d.EndMonth
}

// NewDeal assembles a deal from a priced allocation. Monthly revenue and
// profit are annual figures divided over twelve months; profit never exceeds
// revenue because each line's price is floored at its variable cost.
func NewDeal(brand string, model Model, primarySegment, startMonth, endMonth int, lines map[string]Line) Deal {
	var monthlyRevenue, monthlyProfit float64
	annualUnits := 0
	for _, l := range lines {
		annualRevenue := l.UnitPrice * float64(l.Units)
		annualCOGP := l.VariableCost * float64(l.Units)
		monthlyRevenue += annualRevenue / 12
		monthlyProfit += (annualRevenue - annualCOGP) / 12
		annualUnits += l.Units
	}
	return Deal{
		Brand:          brand,
		Model:          model,
		StartMonth:     startMonth,
		EndMonth:       endMonth,
		Products:       lines,
		MonthlyRevenue: monthlyRevenue,
		MonthlyProfit:  monthlyProfit,
		PrimarySegment: primarySegment,
		AnnualUnits:    annualUnits,
	}
}
