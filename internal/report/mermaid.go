package report

import (
	"fmt"
	"math"
	"strings"

	"modamesh/internal/partnership"
	"modamesh/internal/simulation"
)

// NPVDistributionChart creates a Mermaid xychart-beta showing the NPV profit
// percentile ladder for one partnership model.
func NPVDistributionChart(agg simulation.Aggregate) string {
	s := agg.NPVProfit
	if s.Max == 0 && s.Min == 0 {
		return ""
	}

	labels := []string{
		"\"5% (Pessimistic)\"",
		"\"25% (Cautious)\"",
		"\"50% (Median)\"",
		"\"75% (Favorable)\"",
		"\"95% (Optimistic)\"",
	}
	values := []string{
		fmt.Sprintf("%.0f", s.P5),
		fmt.Sprintf("%.0f", s.P25),
		fmt.Sprintf("%.0f", s.P50),
		fmt.Sprintf("%.0f", s.P75),
		fmt.Sprintf("%.0f", s.P95),
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"NPV Profit Distribution (%s)\"\n", agg.Model))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"NPV Profit (EUR)\" 0 --> %d\n", int(math.Ceil(s.P95*1.1))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// YearlyRevenueChart creates a Mermaid line chart comparing mean revenue per
// simulated year across both models.
func YearlyRevenueChart(aggregates map[partnership.Model]simulation.Aggregate) string {
	cb := aggregates[partnership.CoBranded]
	wl := aggregates[partnership.WhiteLabel]
	years := len(cb.MeanRevenueByYear)
	if years == 0 || len(wl.MeanRevenueByYear) != years {
		return ""
	}

	var labels []string
	var cbValues []string
	var wlValues []string
	maxY := 0.0
	for y := 0; y < years; y++ {
		labels = append(labels, fmt.Sprintf("\"Year %d\"", y+1))
		cbValues = append(cbValues, fmt.Sprintf("%.0f", cb.MeanRevenueByYear[y]))
		wlValues = append(wlValues, fmt.Sprintf("%.0f", wl.MeanRevenueByYear[y]))
		if cb.MeanRevenueByYear[y] > maxY {
			maxY = cb.MeanRevenueByYear[y]
		}
		if wl.MeanRevenueByYear[y] > maxY {
			maxY = wl.MeanRevenueByYear[y]
		}
	}
	if maxY == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Mean Revenue by Year (co-branded vs white-label)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Revenue (EUR)\" 0 --> %d\n", int(math.Ceil(maxY*1.1))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(cbValues, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(wlValues, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// UtilizationChart creates a Mermaid bar chart of mean capacity utilization
// per model, with the saturation share alongside.
func UtilizationChart(aggregates map[partnership.Model]simulation.Aggregate) string {
	var labels []string
	var values []string
	for _, model := range partnership.Models() {
		agg, ok := aggregates[model]
		if !ok {
			continue
		}
		safeName := strings.ReplaceAll(string(model), " ", "_")
		labels = append(labels, fmt.Sprintf("\"%s avg\"", safeName))
		values = append(values, fmt.Sprintf("%.1f", agg.MeanAvgUtilization))
		labels = append(labels, fmt.Sprintf("\"%s peak\"", safeName))
		values = append(values, fmt.Sprintf("%.1f", agg.MeanMaxUtilization))
	}
	if len(values) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Capacity Utilization\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Utilization (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// ProductRevenuePie creates a Mermaid pie chart of mean revenue by product
// for one model. Products with no revenue are omitted.
func ProductRevenuePie(agg simulation.Aggregate) string {
	total := 0.0
	for _, v := range agg.RevenueByProduct {
		total += v
	}
	if total == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("pie title Revenue by Product (%s)\n", agg.Model))
	for _, name := range sortedKeys(agg.RevenueByProduct) {
		v := agg.RevenueByProduct[name]
		if v <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" : %.0f\n", name, v))
	}
	sb.WriteString("```")
	return sb.String()
}
