package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"modamesh/internal/partnership"
	"modamesh/internal/simulation"
)

// Writer persists simulation reports under a results directory, one
// timestamped JSON file per run plus an optional Markdown summary.
type Writer struct {
	dir           string
	mermaidCharts bool
}

func NewWriter(dir string, mermaidCharts bool) *Writer {
	return &Writer{dir: dir, mermaidCharts: mermaidCharts}
}

// Write persists the run and returns the JSON file path.
func (w *Writer) Write(rep *simulation.Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating results directory %q: %w", w.dir, err)
	}

	stamp := rep.GeneratedAt.Format("20060102-150405")
	jsonPath := filepath.Join(w.dir, fmt.Sprintf("run-%s.json", stamp))

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing report %q: %w", jsonPath, err)
	}
	log.Info().Str("path", jsonPath).Msg("report written")

	if w.mermaidCharts {
		mdPath := filepath.Join(w.dir, fmt.Sprintf("run-%s.md", stamp))
		if err := os.WriteFile(mdPath, []byte(Summary(rep)), 0644); err != nil {
			return "", fmt.Errorf("writing summary %q: %w", mdPath, err)
		}
		log.Info().Str("path", mdPath).Msg("summary written")
	}
	return jsonPath, nil
}

// Summary renders a human-readable Markdown digest of the run, with
// Mermaid charts for the headline distributions.
func Summary(rep *simulation.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Partnership Simulation %s\n\n", rep.RunID)
	fmt.Fprintf(&sb, "Generated %s | %d trials x %d years | base seed %d\n\n",
		rep.GeneratedAt.Format(time.RFC3339), rep.Trials, rep.Years, rep.BaseSeed)
	fmt.Fprintf(&sb, "**Recommended model: %s**\n\n", rep.Recommended)

	fmt.Fprintf(&sb, "| Metric | co-branded | white-label | WL/CB |\n")
	fmt.Fprintf(&sb, "|---|---|---|---|\n")
	cb := rep.Aggregates[partnership.CoBranded]
	wl := rep.Aggregates[partnership.WhiteLabel]
	fmt.Fprintf(&sb, "| Mean revenue | %.0f | %.0f | %.2f |\n",
		cb.Revenue.Mean, wl.Revenue.Mean, rep.Comparison.RevenueRatio)
	fmt.Fprintf(&sb, "| Mean profit | %.0f | %.0f | %.2f |\n",
		cb.Profit.Mean, wl.Profit.Mean, rep.Comparison.ProfitRatio)
	fmt.Fprintf(&sb, "| Mean NPV profit | %.0f | %.0f | %.2f |\n",
		cb.NPVProfit.Mean, wl.NPVProfit.Mean, rep.Comparison.NPVProfitRatio)
	fmt.Fprintf(&sb, "| Mean partnerships | %.1f | %.1f | %.2f |\n",
		cb.MeanPartnerships, wl.MeanPartnerships, rep.Comparison.PartnershipsRatio)
	fmt.Fprintf(&sb, "| Capacity saturated trials | %.1f%% | %.1f%% | |\n\n",
		cb.MaxCapacityReachedPct, wl.MaxCapacityReachedPct)

	for _, model := range partnership.Models() {
		agg, ok := rep.Aggregates[model]
		if !ok {
			continue
		}
		if chart := NPVDistributionChart(agg); chart != "" {
			sb.WriteString(chart)
			sb.WriteString("\n\n")
		}
		if pie := ProductRevenuePie(agg); pie != "" {
			sb.WriteString(pie)
			sb.WriteString("\n\n")
		}
	}
	if chart := YearlyRevenueChart(rep.Aggregates); chart != "" {
		sb.WriteString(chart)
		sb.WriteString("\n\n")
	}
	if chart := UtilizationChart(rep.Aggregates); chart != "" {
		sb.WriteString(chart)
		sb.WriteString("\n")
	}
	return sb.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
