// internal/view/insights.go
package view

import (
	"fmt"

	"github.com/mwiater/losdash/internal/metrics"
)

// InsightKind selects how a callout is emphasised.
type InsightKind string

const (
	InsightSuccess InsightKind = "success"
	InsightInfo    InsightKind = "info"
	InsightWarning InsightKind = "warning"
)

// Insight is one contextual callout. Lines are Markdown.
type Insight struct {
	Kind  InsightKind `json:"kind"`
	Title string      `json:"title"`
	Lines []string    `json:"lines"`
}

// Insights returns the per-bin callouts, filled with values from the report.
func Insights(r metrics.Report) []Insight {
	longMAE := Missing[float64]()
	if es, ok := BinErrorStats(r, metrics.BinLong).Get(); ok {
		longMAE = Some(es.MAE)
	}
	shortRecall := ClassRecall(r, metrics.BinShort)

	return []Insight{
		{
			Kind:  InsightSuccess,
			Title: fmt.Sprintf("Best range (%s)", metrics.BinMedium),
			Lines: []string{
				"Strong classification metrics",
				"Low error rates across this bin",
			},
		},
		{
			Kind:  InsightInfo,
			Title: fmt.Sprintf("Long stays (%s)", metrics.BinLong),
			Lines: []string{
				"High recall & precision → well-flagged",
				fmt.Sprintf("Wider variability inflates error (MAE ≈ %s)", FormatDays(longMAE)),
			},
		},
		{
			Kind:  InsightWarning,
			Title: fmt.Sprintf("Short stays (%s)", metrics.BinShort),
			Lines: []string{
				fmt.Sprintf("Often misclassified as %s → lower recall (%s)", metrics.BinMedium, FormatPercent(shortRecall)),
				"Despite low MAE, predictions **shrink toward the center bin** (common with skewed/imbalanced targets)",
			},
		},
	}
}

// Takeaway is the one-line summary under the insights.
func Takeaway(r metrics.Report) string {
	return fmt.Sprintf("Excellent overall fit (R² ≈ %s), but calibration, class balance, and use-case thresholds still matter.",
		FormatPercent(Some(r.R2)))
}
