package plots

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestCheckReportsEachFigure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writePNG(t, filepath.Join(dir, ConfusionMatrix), 4, 3)
	if err := os.WriteFile(filepath.Join(dir, TrueVsPredBins), []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	statuses := Check(dir)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	cm := statuses[0]
	if !cm.Loadable || cm.Width != 4 || cm.Height != 3 {
		t.Fatalf("expected loadable 4x3 confusion matrix, got %+v", cm)
	}

	bins := statuses[1]
	if bins.Loadable || bins.Error == "" {
		t.Fatalf("expected undecodable plot error, got %+v", bins)
	}

	fi := statuses[2]
	if fi.Loadable || !strings.Contains(fi.Hint, "Add `feature_importance_visual.png` to the `plots/` folder") {
		t.Fatalf("expected hint for missing plot, got %+v", fi)
	}
}

func TestCheckMissingDirectory(t *testing.T) {
	for _, status := range Check(filepath.Join(t.TempDir(), "absent")) {
		if status.Loadable || status.Hint == "" {
			t.Fatalf("expected hint-only status, got %+v", status)
		}
	}
}

func TestLookup(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, FeatureImportance), 2, 2)

	status, ok := Lookup(dir, FeatureImportance)
	if !ok || !status.Loadable {
		t.Fatalf("expected loadable figure, got %+v ok=%v", status, ok)
	}
	if _, ok := Lookup(dir, "../secret.png"); ok {
		t.Fatal("unknown names must not resolve")
	}
}
