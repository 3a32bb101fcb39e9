// internal/metrics/resolve_test.go
package metrics

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testResolver(buf *bytes.Buffer) Resolver {
	return Resolver{Logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

type recordedResolve struct {
	source  string
	elapsed time.Duration
}

type fakeRecorder struct {
	calls []recordedResolve
}

func (f *fakeRecorder) ObserveResolve(source string, elapsed time.Duration) {
	f.calls = append(f.calls, recordedResolve{source: source, elapsed: elapsed})
}

func TestResolveMissingArtifactUsesFallbackSilently(t *testing.T) {
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "artifacts", "metrics.json")

	got := testResolver(&logs).Resolve(path)

	if got.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %q", got.Source)
	}
	if got.ModelName != "Random Forest Regressor" || got.MAEDays != 0.89 || got.RMSEDays != 1.32 || got.R2 != 0.970 {
		t.Fatalf("unexpected fallback headline: %+v", got)
	}
	if got.Diagnostic != "" {
		t.Fatalf("missing artifact should not carry a diagnostic, got %q", got.Diagnostic)
	}
	if logs.Len() != 0 {
		t.Fatalf("missing artifact should not log, got: %s", logs.String())
	}
}

func TestResolveMalformedArtifactWarnsAndFallsBack(t *testing.T) {
	var logs bytes.Buffer
	path := writeArtifact(t, "metrics.json", `{"model_name": "RF", "MAE_days": `)

	got := testResolver(&logs).Resolve(path)

	if !got.IsFallback() {
		t.Fatalf("expected fallback, got source %q", got.Source)
	}
	if got.Diagnostic == "" {
		t.Fatal("expected diagnostic on malformed artifact")
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Fatalf("expected warning log, got: %s", logs.String())
	}
	if got.Path != path {
		t.Fatalf("expected path %q, got %q", path, got.Path)
	}
}

func TestResolveRoundTripsWellFormedArtifact(t *testing.T) {
	want := Fallback()
	want.ModelName = "Gradient Boosting"
	want.MAEDays = 1.07
	want.RMSEDays = 1.91
	want.R2 = 0.912

	payload, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	delete(doc, "source")
	doc["run_id"] = "smoke-42"
	payload, _ = json.Marshal(doc)
	path := writeArtifact(t, "metrics.json", string(payload))

	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(path)

	if got.Source != SourceArtifact {
		t.Fatalf("expected artifact source, got %q (%s)", got.Source, got.Diagnostic)
	}
	if got.ModelName != want.ModelName || got.MAEDays != want.MAEDays || got.RMSEDays != want.RMSEDays || got.R2 != want.R2 {
		t.Fatalf("scalar mismatch: got %+v", got)
	}
	if got.BinMetrics == nil || got.BinMetrics.BinnedAccuracy == nil || *got.BinMetrics.BinnedAccuracy != 0.911 {
		t.Fatalf("bin metrics not decoded: %+v", got.BinMetrics)
	}
	if recall := got.BinMetrics.PerClass[BinShort].Recall; recall == nil || *recall != 0.440 {
		t.Fatalf("per-class recall not decoded: %v", recall)
	}
	if got.PerBinErrors[BinLong] != (ErrorStats{MAE: 1.75, MedianAE: 1.35, P90AE: 3.75}) {
		t.Fatalf("per-bin errors not decoded: %+v", got.PerBinErrors)
	}
	if len(got.TopPredictors) != 3 || got.TopPredictors[2].Feature != "Department: Gynecology" {
		t.Fatalf("predictors not decoded in order: %+v", got.TopPredictors)
	}
}

func TestResolveHeadlineOnlyArtifact(t *testing.T) {
	path := writeArtifact(t, "metrics.json", `{"model_name":"Smoke","MAE_days":2.5,"RMSE_days":3,"R2":0.41}`)

	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(path)

	if got.Source != SourceArtifact {
		t.Fatalf("expected artifact source, got %q", got.Source)
	}
	if got.BinMetrics != nil || got.PerBinErrors != nil || got.TopPredictors != nil {
		t.Fatalf("expected optional sections absent, got %+v", got)
	}
	if got.RMSEDays != 3 {
		t.Fatalf("expected RMSE 3, got %v", got.RMSEDays)
	}
}

func TestResolveMissingMandatoryFieldFallsBack(t *testing.T) {
	path := writeArtifact(t, "metrics.json", `{"model_name":"RF","MAE_days":0.9,"R2":0.95}`)

	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(path)
	if !got.IsFallback() {
		t.Fatalf("expected fallback when RMSE_days is missing")
	}

	_, err := Resolver{Logger: slog.New(slog.NewTextHandler(&logs, nil))}.Load(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrArtifactMalformed) {
		t.Fatalf("expected ErrArtifactMalformed, got %v", err)
	}
	if len(verr.Problems) == 0 || !strings.Contains(strings.Join(verr.Problems, " "), "RMSE_days") {
		t.Fatalf("expected RMSE_days problem, got %v", verr.Problems)
	}
}

func TestResolveRejectsNegativeError(t *testing.T) {
	path := writeArtifact(t, "metrics.json", `{"model_name":"RF","MAE_days":-1,"RMSE_days":1,"R2":0.9}`)
	if _, err := Load(path); !errors.Is(err, ErrArtifactMalformed) {
		t.Fatalf("expected malformed error for negative MAE, got %v", err)
	}
}

func TestResolveAcceptsLowercaseKeys(t *testing.T) {
	path := writeArtifact(t, "metrics.json", `{"model_name":"RF","mae_days":0.8,"rmse_days":1.1,"r2":0.97}`)

	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(path)
	if got.Source != SourceArtifact {
		t.Fatalf("expected artifact source, got %q: %s", got.Source, got.Diagnostic)
	}
	if got.MAEDays != 0.8 || got.RMSEDays != 1.1 || got.R2 != 0.97 {
		t.Fatalf("unexpected scalars: %+v", got)
	}
}

func TestResolveYAMLArtifact(t *testing.T) {
	content := `
model_name: Ridge
MAE_days: 1
RMSE_days: 1.5
R2: 0.88
per_bin_errors:
  "8–14 days":
    MAE: 0.5
    MedianAE: 0.4
    P90AE: 1
top_predictors:
  - feature: Age 41-50
    direction: "↑"
    effect: longer LOS
`
	path := writeArtifact(t, "metrics.yaml", content)

	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(path)
	if got.Source != SourceArtifact {
		t.Fatalf("expected artifact source, got %q: %s", got.Source, got.Diagnostic)
	}
	if got.MAEDays != 1 {
		t.Fatalf("expected integer YAML value to decode, got %v", got.MAEDays)
	}
	if got.PerBinErrors[BinMedium].P90AE != 1 {
		t.Fatalf("unexpected per-bin errors: %+v", got.PerBinErrors)
	}
	if len(got.TopPredictors) != 1 || got.TopPredictors[0].Feature != "Age 41-50" {
		t.Fatalf("unexpected predictors: %+v", got.TopPredictors)
	}
}

func TestResolveDropsMalformedOptionalSection(t *testing.T) {
	path := writeArtifact(t, "metrics.json", `{"model_name":"RF","MAE_days":0.9,"RMSE_days":1.3,"R2":0.97,"top_predictors":"see plot","bin_metrics":{"binned_accuracy":0.9}}`)

	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(path)
	if got.Source != SourceArtifact {
		t.Fatalf("malformed optional section must not force fallback, got %q", got.Source)
	}
	if got.TopPredictors != nil {
		t.Fatalf("expected predictors dropped, got %+v", got.TopPredictors)
	}
	if got.BinMetrics == nil || got.BinMetrics.MacroF1 != nil {
		t.Fatalf("expected partial bin metrics, got %+v", got.BinMetrics)
	}
	if !strings.Contains(logs.String(), "section=top_predictors") {
		t.Fatalf("expected debug log for dropped section, got: %s", logs.String())
	}
}

func TestResolveDropsIncompletePerBinErrors(t *testing.T) {
	path := writeArtifact(t, "metrics.json", `{"model_name":"RF","MAE_days":0.9,"RMSE_days":1.3,"R2":0.97,"per_bin_errors":{">14 days":{"MAE":1.75}}}`)

	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(path)
	if got.Source != SourceArtifact {
		t.Fatalf("incomplete per-bin entry must not force fallback, got %q", got.Source)
	}
	if got.PerBinErrors != nil {
		t.Fatalf("expected per-bin errors dropped rather than zero-filled, got %+v", got.PerBinErrors)
	}
	if !strings.Contains(logs.String(), "section=per_bin_errors") {
		t.Fatalf("expected debug log for dropped section, got: %s", logs.String())
	}
}

func TestResolveCaseVariantsAreDeterministic(t *testing.T) {
	path := writeArtifact(t, "metrics.json", `{"model_name":"RF","mae_days":0.5,"Mae_Days":0.7,"RMSE_days":1.3,"R2":0.97}`)

	for i := 0; i < 50; i++ {
		got := Resolve(path)
		if got.Source != SourceArtifact {
			t.Fatalf("expected artifact source, got %q: %s", got.Source, got.Diagnostic)
		}
		if got.MAEDays != 0.7 {
			t.Fatalf("run %d: expected the first key in sorted order (Mae_Days) to win, got %v", i, got.MAEDays)
		}
	}

	exact := writeArtifact(t, "exact.json", `{"model_name":"RF","mae_days":0.5,"MAE_days":0.9,"RMSE_days":1.3,"R2":0.97}`)
	if got := Resolve(exact); got.MAEDays != 0.9 {
		t.Fatalf("exact key must win over case variants, got %v", got.MAEDays)
	}
}

func TestResolveWarnsOnUnknownBinLabels(t *testing.T) {
	path := writeArtifact(t, "metrics.json", `{"model_name":"RF","MAE_days":0.9,"RMSE_days":1.3,"R2":0.97,
		"per_bin_errors":{"8-14 days":{"MAE":0.5,"MedianAE":0.4,"P90AE":1.2}},
		"bin_metrics":{"per_class":{"≤7 days":{"recall":0.4}}}}`)

	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(path)
	if got.Source != SourceArtifact {
		t.Fatalf("unknown labels must not force fallback, got %q", got.Source)
	}
	out := logs.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "section=per_bin_errors") || !strings.Contains(out, `label="8-14 days"`) {
		t.Fatalf("expected warning for the hyphenated label, got: %s", out)
	}
	if strings.Contains(out, "section=bin_metrics.per_class") {
		t.Fatalf("known labels must not warn, got: %s", out)
	}
}

func TestResolveNonObjectDocument(t *testing.T) {
	for name, content := range map[string]string{
		"array":  `[1, 2, 3]`,
		"null":   `null`,
		"empty":  ``,
		"scalar": `"metrics"`,
	} {
		t.Run(name, func(t *testing.T) {
			path := writeArtifact(t, "metrics.json", content)
			var logs bytes.Buffer
			if got := testResolver(&logs).Resolve(path); !got.IsFallback() {
				t.Fatalf("expected fallback for %s document", name)
			}
		})
	}
}

func TestResolveDirectoryPathFallsBackWithWarning(t *testing.T) {
	var logs bytes.Buffer
	got := testResolver(&logs).Resolve(t.TempDir())
	if !got.IsFallback() {
		t.Fatal("expected fallback for directory path")
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Fatalf("expected warning, got: %s", logs.String())
	}
}

func TestResolveRecordsSource(t *testing.T) {
	rec := &fakeRecorder{}
	var logs bytes.Buffer
	rv := testResolver(&logs)
	rv.Recorder = rec

	rv.Resolve(filepath.Join(t.TempDir(), "missing.json"))
	rv.Resolve(writeArtifact(t, "metrics.json", `{"model_name":"RF","MAE_days":1,"RMSE_days":1,"R2":1}`))

	if len(rec.calls) != 2 {
		t.Fatalf("expected 2 recorded resolutions, got %d", len(rec.calls))
	}
	if rec.calls[0].source != "fallback" || rec.calls[1].source != "artifact" {
		t.Fatalf("unexpected recorded sources: %+v", rec.calls)
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("expected ErrArtifactMissing, got %v", err)
	}
}

func TestFallbackReturnsIndependentCopies(t *testing.T) {
	first := Fallback()
	first.PerBinErrors[BinShort] = ErrorStats{}
	*first.BinMetrics.BinnedAccuracy = 0
	first.TopPredictors[0].Feature = "changed"

	second := Fallback()
	if second.PerBinErrors[BinShort].MAE != 0.87 {
		t.Fatalf("fallback per-bin errors shared between calls")
	}
	if *second.BinMetrics.BinnedAccuracy != 0.911 {
		t.Fatalf("fallback bin metrics shared between calls")
	}
	if second.TopPredictors[0].Feature != "Available Extra Rooms in Hospital" {
		t.Fatalf("fallback predictors shared between calls")
	}
}

func TestBins(t *testing.T) {
	bins := Bins()
	if len(bins) != 3 || bins[0] != "≤7 days" || bins[1] != "8–14 days" || bins[2] != ">14 days" {
		t.Fatalf("unexpected bins: %v", bins)
	}
	if !IsBin(">14 days") || IsBin("8-14 days") {
		t.Fatal("IsBin must match the exact labels")
	}
}
