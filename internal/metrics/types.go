// internal/metrics/types.go
package metrics

// Source records where a resolved Report came from.
type Source string

const (
	// SourceArtifact marks a report decoded from the metrics artifact on disk.
	SourceArtifact Source = "artifact"
	// SourceFallback marks the built-in example report.
	SourceFallback Source = "fallback"
)

// Report is the top-level document describing one evaluated LOS model.
// It is treated as read-only once Resolve returns it.
type Report struct {
	ModelName     string                `json:"model_name" mapstructure:"model_name"`
	MAEDays       float64               `json:"MAE_days" mapstructure:"MAE_days"`
	RMSEDays      float64               `json:"RMSE_days" mapstructure:"RMSE_days"`
	R2            float64               `json:"R2" mapstructure:"R2"`
	BinMetrics    *BinMetrics           `json:"bin_metrics,omitempty" mapstructure:"-"`
	PerBinErrors  map[string]ErrorStats `json:"per_bin_errors,omitempty" mapstructure:"-"`
	TopPredictors []PredictorEffect     `json:"top_predictors,omitempty" mapstructure:"-"`

	Source     Source `json:"source" mapstructure:"-"`
	Path       string `json:"path,omitempty" mapstructure:"-"`
	Diagnostic string `json:"diagnostic,omitempty" mapstructure:"-"`
}

// IsFallback reports whether the report carries example data rather than a real run.
func (r Report) IsFallback() bool {
	return r.Source != SourceArtifact
}

// BinMetrics holds the classification view of the regression output after
// mapping predictions into the LOS bins. Summary scores are pointers because
// quick evaluation runs may omit any of them.
type BinMetrics struct {
	BinnedAccuracy   *float64               `json:"binned_accuracy,omitempty" mapstructure:"binned_accuracy"`
	BalancedAccuracy *float64               `json:"balanced_accuracy,omitempty" mapstructure:"balanced_accuracy"`
	MacroF1          *float64               `json:"macro_f1,omitempty" mapstructure:"macro_f1"`
	PerClass         map[string]ClassScores `json:"per_class,omitempty" mapstructure:"per_class"`
}

// ClassScores are the one-vs-rest scores for a single LOS bin.
type ClassScores struct {
	Precision *float64 `json:"precision,omitempty" mapstructure:"precision"`
	Recall    *float64 `json:"recall,omitempty" mapstructure:"recall"`
	F1        *float64 `json:"f1,omitempty" mapstructure:"f1"`
}

// ErrorStats summarizes absolute errors (in days) inside one LOS bin.
type ErrorStats struct {
	MAE      float64 `json:"MAE" mapstructure:"MAE"`
	MedianAE float64 `json:"MedianAE" mapstructure:"MedianAE"`
	P90AE    float64 `json:"P90AE" mapstructure:"P90AE"`
}

// PredictorEffect describes one feature from the importance ranking.
type PredictorEffect struct {
	Feature   string `json:"feature" mapstructure:"feature"`
	Direction string `json:"direction" mapstructure:"direction"`
	Effect    string `json:"effect" mapstructure:"effect"`
}
