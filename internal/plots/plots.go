// internal/plots/plots.go
// Package plots reports which pre-rendered evaluation figures are available.
// It never parses plot contents beyond the image header.
package plots

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Well-known plot files written by the evaluation pipeline.
const (
	ConfusionMatrix   = "confusion_matrix.png"
	TrueVsPredBins    = "true_vs_pred_bins.png"
	FeatureImportance = "feature_importance_visual.png"
)

// Figure pairs a plot file with the caption shown beneath it.
type Figure struct {
	Name    string `json:"name"`
	Caption string `json:"caption"`
}

// Figures lists the report's figures in page order.
func Figures() []Figure {
	return []Figure{
		{Name: ConfusionMatrix, Caption: "Confusion Matrix on Binned Regression Output"},
		{Name: TrueVsPredBins, Caption: "True vs Predicted LOS Bin Proportions"},
		{Name: FeatureImportance, Caption: "Top 10 predictors of hospital length of stay from the Random Forest model. " +
			"Department affiliation (especially gynecology), followed by patient age groups (31–40, 41–50), were the strongest drivers of LOS, " +
			"while operational and financial factors such as admission deposit and available rooms played smaller but notable roles."},
	}
}

// Status describes one plot file.
type Status struct {
	Figure
	Path     string `json:"path"`
	Loadable bool   `json:"loadable"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Hint     string `json:"hint,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Check inspects every known figure under dir.
func Check(dir string) []Status {
	figures := Figures()
	out := make([]Status, 0, len(figures))
	for _, fig := range figures {
		out = append(out, checkOne(dir, fig))
	}
	return out
}

// Lookup returns the status of a single known figure.
func Lookup(dir, name string) (Status, bool) {
	for _, fig := range Figures() {
		if fig.Name == name {
			return checkOne(dir, fig), true
		}
	}
	return Status{}, false
}

func checkOne(dir string, fig Figure) Status {
	status := Status{Figure: fig, Path: filepath.Join(dir, fig.Name)}

	file, err := os.Open(status.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			status.Hint = fmt.Sprintf("Add `%s` to the `%s/` folder to display this figure.", fig.Name, filepath.Base(dir))
			return status
		}
		slog.Warn("could not open plot", "name", fig.Name, "error", err)
		status.Error = err.Error()
		return status
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		slog.Warn("could not open plot", "name", fig.Name, "error", err)
		status.Error = fmt.Sprintf("Could not open `%s`: %v", fig.Name, err)
		return status
	}
	status.Loadable = true
	status.Width = cfg.Width
	status.Height = cfg.Height
	return status
}
