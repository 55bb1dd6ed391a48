package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"modamesh/internal/partnership"
	"modamesh/internal/simulation"
)

func testReport() *simulation.Report {
	cbOutcomes := []simulation.Outcome{
		{
			NPVProfit: 120000, TotalRevenue: 500000, TotalProfit: 140000, NPVRevenue: 450000,
			PartnershipsFormed: 5, MaxUtilization: 96, AvgUtilization: 60,
			RevenueByYear: []float64{240000, 260000}, ProfitByYear: []float64{70000, 70000},
			RevenueByProduct: map[string]float64{"Thermo Liner": 300000, "Mesh Panel": 200000},
			ProfitByProduct:  map[string]float64{"Thermo Liner": 90000, "Mesh Panel": 50000},
		},
	}
	wlOutcomes := []simulation.Outcome{
		{
			NPVProfit: 90000, TotalRevenue: 700000, TotalProfit: 100000, NPVRevenue: 630000,
			PartnershipsFormed: 11, MaxUtilization: 80, AvgUtilization: 55,
			RevenueByYear: []float64{340000, 360000}, ProfitByYear: []float64{50000, 50000},
			RevenueByProduct: map[string]float64{"Thermo Liner": 400000, "Mesh Panel": 300000},
			ProfitByProduct:  map[string]float64{"Thermo Liner": 60000, "Mesh Panel": 40000},
		},
	}

	aggregates := map[partnership.Model]simulation.Aggregate{
		partnership.CoBranded:  simulation.NewAggregate(partnership.CoBranded, cbOutcomes),
		partnership.WhiteLabel: simulation.NewAggregate(partnership.WhiteLabel, wlOutcomes),
	}
	return &simulation.Report{
		RunID:       "test-run",
		GeneratedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Trials:      1,
		Years:       2,
		BaseSeed:    42,
		Aggregates:  aggregates,
		Comparison:  simulation.Compare(aggregates),
		Recommended: simulation.Recommend(aggregates),
	}
}

func TestWriterPersistsJSON(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, false)

	path, err := w.Write(testReport())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if filepath.Base(path) != "run-20260314-103000.json" {
		t.Errorf("report file = %s, want timestamped name", filepath.Base(path))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var decoded simulation.Report
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Recommended != partnership.CoBranded {
		t.Errorf("Recommended = %s, want co-branded", decoded.Recommended)
	}

	// No Markdown summary without the charts flag.
	if _, err := os.Stat(filepath.Join(dir, "run-20260314-103000.md")); !os.IsNotExist(err) {
		t.Error("summary file written despite disabled charts")
	}
}

func TestWriterPersistsSummaryWithCharts(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, true)

	if _, err := w.Write(testReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "run-20260314-103000.md"))
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	md := string(raw)
	if !strings.Contains(md, "Recommended model: co-branded") {
		t.Error("summary missing recommendation")
	}
	if !strings.Contains(md, "xychart-beta") {
		t.Error("summary missing Mermaid charts")
	}
}

func TestNPVDistributionChart(t *testing.T) {
	rep := testReport()
	chart := NPVDistributionChart(rep.Aggregates[partnership.CoBranded])
	if !strings.Contains(chart, "xychart-beta") || !strings.Contains(chart, "co-branded") {
		t.Errorf("chart malformed:\n%s", chart)
	}

	if got := NPVDistributionChart(simulation.Aggregate{}); got != "" {
		t.Errorf("empty aggregate should produce no chart, got %q", got)
	}
}

func TestYearlyRevenueChart(t *testing.T) {
	rep := testReport()
	chart := YearlyRevenueChart(rep.Aggregates)
	if !strings.Contains(chart, "Year 1") || !strings.Contains(chart, "Year 2") {
		t.Errorf("chart missing year labels:\n%s", chart)
	}

	if got := YearlyRevenueChart(map[partnership.Model]simulation.Aggregate{}); got != "" {
		t.Errorf("empty aggregates should produce no chart, got %q", got)
	}
}

func TestProductRevenuePie(t *testing.T) {
	rep := testReport()
	pie := ProductRevenuePie(rep.Aggregates[partnership.WhiteLabel])
	if !strings.Contains(pie, "Thermo Liner") || !strings.Contains(pie, "Mesh Panel") {
		t.Errorf("pie missing product slices:\n%s", pie)
	}
}
