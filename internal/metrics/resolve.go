// internal/metrics/resolve.go
package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// DefaultArtifactPath is where the evaluation pipeline writes its metrics.
const DefaultArtifactPath = "artifacts/metrics.json"

var (
	// ErrArtifactMissing means no file exists at the artifact path.
	ErrArtifactMissing = errors.New("metrics artifact missing")
	// ErrArtifactMalformed means the file exists but is not a usable report.
	ErrArtifactMalformed = errors.New("metrics artifact malformed")
)

// Recorder observes resolutions. telemetry.Recorder satisfies it.
type Recorder interface {
	ObserveResolve(source string, elapsed time.Duration)
}

// Resolver loads a metrics artifact and degrades to the example report.
// The zero value logs through slog.Default and records nothing.
type Resolver struct {
	Logger   *slog.Logger
	Recorder Recorder
}

// Resolve loads the report at path using a zero Resolver.
func Resolve(path string) Report {
	return Resolver{}.Resolve(path)
}

// Load decodes and validates the report at path using a zero Resolver.
func Load(path string) (Report, error) {
	return Resolver{}.Load(path)
}

// Resolve always returns a usable report. A missing artifact yields the
// fallback silently; any other failure is logged at warning level first.
func (rv Resolver) Resolve(path string) Report {
	start := time.Now()
	report, err := rv.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, ErrArtifactMissing):
		report = Fallback()
		report.Path = path
	default:
		rv.logger().Warn("could not use metrics artifact, showing example data", "path", path, "error", err)
		report = Fallback()
		report.Path = path
		report.Diagnostic = err.Error()
	}
	if rv.Recorder != nil {
		rv.Recorder.ObserveResolve(string(report.Source), time.Since(start))
	}
	return report
}

// Load is the strict half of Resolve: it returns ErrArtifactMissing,
// ErrArtifactMalformed (possibly as *ValidationError) or a read error.
func (rv Resolver) Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return Report{}, fmt.Errorf("read metrics artifact %s: %w", path, err)
	}

	doc, err := decodeDocument(path, data)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s: %v", ErrArtifactMalformed, path, err)
	}
	doc = canonicalizeKeys(doc)

	if err := validateRequired(path, doc); err != nil {
		return Report{}, err
	}

	report, err := rv.decodeReport(doc)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s: %v", ErrArtifactMalformed, path, err)
	}
	report.Source = SourceArtifact
	report.Path = path
	return report, nil
}

func (rv Resolver) logger() *slog.Logger {
	if rv.Logger != nil {
		return rv.Logger
	}
	return slog.Default()
}

func decodeDocument(path string, data []byte) (map[string]any, error) {
	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document must be an object, got %T", raw)
	}
	return doc, nil
}

var topLevelKeys = []string{
	"model_name", "MAE_days", "RMSE_days", "R2",
	"bin_metrics", "per_bin_errors", "top_predictors",
}

// canonicalizeKeys renames top-level keys that differ from the known ones
// only by case, so "mae_days" is read as "MAE_days". An exact match always
// wins; among case variants the first in sorted order is kept.
func canonicalizeKeys(doc map[string]any) map[string]any {
	keys := slices.Sorted(maps.Keys(doc))

	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = value
	}
	for _, key := range keys {
		for _, known := range topLevelKeys {
			if key == known || !strings.EqualFold(key, known) {
				continue
			}
			if _, exists := out[known]; !exists {
				out[known] = doc[key]
			}
			delete(out, key)
		}
	}
	return out
}

func (rv Resolver) decodeReport(doc map[string]any) (Report, error) {
	var report Report
	if err := decodeInto(doc, &report); err != nil {
		return Report{}, err
	}

	if raw, ok := doc["bin_metrics"]; ok && raw != nil {
		var bm BinMetrics
		if err := decodeInto(raw, &bm); err != nil {
			rv.dropSection("bin_metrics", err)
		} else {
			report.BinMetrics = &bm
			rv.warnUnknownBins("bin_metrics.per_class", slices.Sorted(maps.Keys(bm.PerClass)))
		}
	}
	if raw, ok := doc["per_bin_errors"]; ok && raw != nil {
		var errs map[string]ErrorStats
		if err := decodeStrict(raw, &errs); err != nil {
			rv.dropSection("per_bin_errors", err)
		} else {
			report.PerBinErrors = errs
			rv.warnUnknownBins("per_bin_errors", slices.Sorted(maps.Keys(errs)))
		}
	}
	if raw, ok := doc["top_predictors"]; ok && raw != nil {
		var preds []PredictorEffect
		if err := decodeInto(raw, &preds); err != nil {
			rv.dropSection("top_predictors", err)
		} else {
			report.TopPredictors = preds
		}
	}
	return report, nil
}

func (rv Resolver) dropSection(section string, err error) {
	rv.logger().Debug("ignoring malformed optional section", "section", section, "error", err)
}

// warnUnknownBins flags labels that no view accessor will ever read, which
// usually means the pipeline changed its bin names.
func (rv Resolver) warnUnknownBins(section string, labels []string) {
	for _, label := range labels {
		if !IsBin(label) {
			rv.logger().Warn("unknown LOS bin label in metrics artifact", "section", section, "label", label)
		}
	}
}

func decodeInto(input, out any) error {
	return decode(input, out, false)
}

// decodeStrict fails when a struct field has no matching key, so a partial
// entry is never read as zeros.
func decodeStrict(input, out any) error {
	return decode(input, out, true)
}

func decode(input, out any, errorUnset bool) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		TagName:    "mapstructure",
		ErrorUnset: errorUnset,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
