// internal/view/view.go
// Package view derives presentation-ready values from a resolved metrics
// report. Every function is pure: it never mutates the report and returns
// the same result for the same input. Missing sections surface as Missing
// values, never as errors.
package view

import (
	"iter"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/mwiater/losdash/internal/metrics"
)

// HeadlineMetrics feeds the summary cards at the top of the report.
type HeadlineMetrics struct {
	ModelName      string            `json:"model_name"`
	MAEDays        float64           `json:"mae_days"`
	RMSEDays       float64           `json:"rmse_days"`
	R2             float64           `json:"r2"`
	BinnedAccuracy Optional[float64] `json:"binned_accuracy"`
	ExampleData    bool              `json:"example_data"`
}

// BinSummaryScores are the classification scores over all three bins.
type BinSummaryScores struct {
	BinnedAccuracy   Optional[float64] `json:"binned_accuracy"`
	BalancedAccuracy Optional[float64] `json:"balanced_accuracy"`
	MacroF1          Optional[float64] `json:"macro_f1"`
}

// ClassScoreValues are the per-bin one-vs-rest scores.
type ClassScoreValues struct {
	Precision Optional[float64] `json:"precision"`
	Recall    Optional[float64] `json:"recall"`
	F1        Optional[float64] `json:"f1"`
}

// Headline returns the model name, regression errors and binned accuracy.
func Headline(r metrics.Report) HeadlineMetrics {
	name := strings.TrimSpace(r.ModelName)
	if name == "" {
		name = "N/A"
	}
	return HeadlineMetrics{
		ModelName:      name,
		MAEDays:        r.MAEDays,
		RMSEDays:       r.RMSEDays,
		R2:             r.R2,
		BinnedAccuracy: BinSummary(r).BinnedAccuracy,
		ExampleData:    r.IsFallback(),
	}
}

// BinSummary returns binned accuracy, balanced accuracy and macro F1.
func BinSummary(r metrics.Report) BinSummaryScores {
	if r.BinMetrics == nil {
		return BinSummaryScores{}
	}
	return BinSummaryScores{
		BinnedAccuracy:   FromPtr(r.BinMetrics.BinnedAccuracy),
		BalancedAccuracy: FromPtr(r.BinMetrics.BalancedAccuracy),
		MacroF1:          FromPtr(r.BinMetrics.MacroF1),
	}
}

// BinErrorStats returns the absolute error summary for one bin.
func BinErrorStats(r metrics.Report, bin string) Optional[metrics.ErrorStats] {
	es, ok := r.PerBinErrors[bin]
	if !ok {
		return Missing[metrics.ErrorStats]()
	}
	return Some(es)
}

// ClassScores returns precision, recall and F1 for one bin.
func ClassScores(r metrics.Report, bin string) ClassScoreValues {
	if r.BinMetrics == nil {
		return ClassScoreValues{}
	}
	scores, ok := r.BinMetrics.PerClass[bin]
	if !ok {
		return ClassScoreValues{}
	}
	return ClassScoreValues{
		Precision: FromPtr(scores.Precision),
		Recall:    FromPtr(scores.Recall),
		F1:        FromPtr(scores.F1),
	}
}

// ClassRecall walks bin_metrics.per_class[bin].recall.
func ClassRecall(r metrics.Report, bin string) Optional[float64] {
	return ClassScores(r, bin).Recall
}

// MacroRecall is the unweighted mean of the per-bin recalls. It is missing
// unless all three bins report a recall.
func MacroRecall(r metrics.Report) Optional[float64] {
	recalls := make(stats.Float64Data, 0, len(metrics.Bins()))
	for _, bin := range metrics.Bins() {
		recall, ok := ClassRecall(r, bin).Get()
		if !ok {
			return Missing[float64]()
		}
		recalls = append(recalls, recall)
	}
	mean, err := stats.Mean(recalls)
	if err != nil {
		return Missing[float64]()
	}
	return Some(mean)
}

// TopPredictors yields the predictors in artifact order. The sequence can be
// ranged over any number of times.
func TopPredictors(r metrics.Report) iter.Seq[metrics.PredictorEffect] {
	predictors := r.TopPredictors
	return func(yield func(metrics.PredictorEffect) bool) {
		for _, p := range predictors {
			if !yield(p) {
				return
			}
		}
	}
}

// DirectionArrow maps a predictor direction onto the arrow shown next to it.
// Only an explicit increase keeps its arrow; anything else reads as neutral.
func DirectionArrow(direction string) string {
	if strings.TrimSpace(direction) == "↑" {
		return "↑"
	}
	return "→"
}
