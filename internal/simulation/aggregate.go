package simulation

import (
	"math"
	"sort"

	"modamesh/internal/partnership"
)

// Stats summarizes one metric across all trials of a model.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P5     float64 `json:"p5"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
}

// Aggregate is the cross-trial summary for a single partnership model.
type Aggregate struct {
	Model                 partnership.Model  `json:"model"`
	Trials                int                `json:"trials"`
	Revenue               Stats              `json:"revenue"`
	Profit                Stats              `json:"profit"`
	NPVRevenue            Stats              `json:"npv_revenue"`
	NPVProfit             Stats              `json:"npv_profit"`
	MeanPartnerships      float64            `json:"mean_partnerships"`
	MeanRejected          float64            `json:"mean_rejected_for_capacity"`
	MeanAvgUtilization    float64            `json:"mean_avg_utilization"`
	MeanMaxUtilization    float64            `json:"mean_max_utilization"`
	MaxCapacityReachedPct float64            `json:"max_capacity_reached_pct"`
	RevenueByProduct      map[string]float64 `json:"mean_revenue_by_product"`
	ProfitByProduct       map[string]float64 `json:"mean_profit_by_product"`
	MeanRevenueByYear     []float64          `json:"mean_revenue_by_year"`
	MeanProfitByYear      []float64          `json:"mean_profit_by_year"`
}

// Comparison holds white-label over co-branded ratios on the headline
// metrics. Ratios against a zero co-branded baseline are reported as zero.
type Comparison struct {
	RevenueRatio      float64 `json:"wl_cb_revenue_ratio"`
	ProfitRatio       float64 `json:"wl_cb_profit_ratio"`
	NPVProfitRatio    float64 `json:"wl_cb_npv_profit_ratio"`
	PartnershipsRatio float64 `json:"wl_cb_partnerships_ratio"`
}

func newStats(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{}
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	variance := 0.0
	if n > 1 {
		for _, v := range sorted {
			d := v - mean
			variance += d * d
		}
		variance /= float64(n - 1)
	}

	return Stats{
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    sorted[0],
		Max:    sorted[n-1],
		P5:     percentile(sorted, 0.05),
		P25:    percentile(sorted, 0.25),
		P50:    percentile(sorted, 0.50),
		P75:    percentile(sorted, 0.75),
		P95:    percentile(sorted, 0.95),
	}
}

func percentile(sorted []float64, p float64) float64 {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// NewAggregate folds a model's trial outcomes into summary statistics.
func NewAggregate(model partnership.Model, outcomes []Outcome) Aggregate {
	n := len(outcomes)
	agg := Aggregate{
		Model:            model,
		Trials:           n,
		RevenueByProduct: make(map[string]float64),
		ProfitByProduct:  make(map[string]float64),
	}
	if n == 0 {
		return agg
	}

	revenue := make([]float64, n)
	profit := make([]float64, n)
	npvRevenue := make([]float64, n)
	npvProfit := make([]float64, n)

	var formed, rejected, avgUtil, maxUtil float64
	saturated := 0
	years := len(outcomes[0].RevenueByYear)
	agg.MeanRevenueByYear = make([]float64, years)
	agg.MeanProfitByYear = make([]float64, years)

	for i, o := range outcomes {
		revenue[i] = o.TotalRevenue
		profit[i] = o.TotalProfit
		npvRevenue[i] = o.NPVRevenue
		npvProfit[i] = o.NPVProfit

		formed += float64(o.PartnershipsFormed)
		rejected += float64(o.RejectedForCapacity)
		avgUtil += o.AvgUtilization
		maxUtil += o.MaxUtilization
		if o.MaxUtilization >= 95 {
			saturated++
		}
		for name, v := range o.RevenueByProduct {
			agg.RevenueByProduct[name] += v
		}
		for name, v := range o.ProfitByProduct {
			agg.ProfitByProduct[name] += v
		}
		for y := 0; y < years && y < len(o.RevenueByYear); y++ {
			agg.MeanRevenueByYear[y] += o.RevenueByYear[y]
			agg.MeanProfitByYear[y] += o.ProfitByYear[y]
		}
	}

	fn := float64(n)
	agg.Revenue = newStats(revenue)
	agg.Profit = newStats(profit)
	agg.NPVRevenue = newStats(npvRevenue)
	agg.NPVProfit = newStats(npvProfit)
	agg.MeanPartnerships = formed / fn
	agg.MeanRejected = rejected / fn
	agg.MeanAvgUtilization = avgUtil / fn
	agg.MeanMaxUtilization = maxUtil / fn
	agg.MaxCapacityReachedPct = float64(saturated) / fn * 100
	for name := range agg.RevenueByProduct {
		agg.RevenueByProduct[name] /= fn
	}
	for name := range agg.ProfitByProduct {
		agg.ProfitByProduct[name] /= fn
	}
	for y := range agg.MeanRevenueByYear {
		agg.MeanRevenueByYear[y] /= fn
		agg.MeanProfitByYear[y] /= fn
	}
	return agg
}

// Compare derives white-label over co-branded ratios from the aggregates.
func Compare(aggregates map[partnership.Model]Aggregate) Comparison {
	wl := aggregates[partnership.WhiteLabel]
	cb := aggregates[partnership.CoBranded]
	return Comparison{
		RevenueRatio:      ratio(wl.Revenue.Mean, cb.Revenue.Mean),
		ProfitRatio:       ratio(wl.Profit.Mean, cb.Profit.Mean),
		NPVProfitRatio:    ratio(wl.NPVProfit.Mean, cb.NPVProfit.Mean),
		PartnershipsRatio: ratio(wl.MeanPartnerships, cb.MeanPartnerships),
	}
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Recommend picks the model with the higher mean NPV profit.
func Recommend(aggregates map[partnership.Model]Aggregate) partnership.Model {
	best := partnership.CoBranded
	bestNPV := math.Inf(-1)
	for _, model := range partnership.Models() {
		if agg, ok := aggregates[model]; ok && agg.NPVProfit.Mean > bestNPV {
			best = model
			bestNPV = agg.NPVProfit.Mean
		}
	}
	return best
}
