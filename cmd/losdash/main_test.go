package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/mwiater/losdash/internal/cli"
	"github.com/mwiater/losdash/internal/logging"
)

func TestMainWiring(t *testing.T) {
	origLoadEnv := loadEnv
	origSetVersion := setVersionInfo
	origExecute := executeCmd
	t.Cleanup(func() {
		loadEnv = origLoadEnv
		setVersionInfo = origSetVersion
		executeCmd = origExecute
	})

	calls := struct {
		env     bool
		version bool
		exec    bool
	}{}

	loadEnv = func() error {
		calls.env = true
		return errors.New("malformed .env")
	}
	setVersionInfo = func(v, c, d string) {
		calls.version = true
		if v == "" || c == "" || d == "" {
			t.Fatalf("expected version info to be set")
		}
	}
	executeCmd = func() {
		calls.exec = true
	}

	main()

	if !calls.env || !calls.version || !calls.exec {
		t.Fatalf("expected all wiring steps to run, got %+v", calls)
	}
}

func TestDotEnvReachesConfig(t *testing.T) {
	origExecute := executeCmd
	t.Cleanup(func() {
		executeCmd = origExecute
		_ = logging.Close()
	})

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LOSDASH_ARTIFACT=runs/from-dotenv.json\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("LOSDASH_ARTIFACT", "")
	os.Unsetenv("LOSDASH_ARTIFACT")

	var out bytes.Buffer
	var runErr error
	executeCmd = func() {
		root := cli.NewRootCmd()
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{"show", "config", "--logFile", filepath.Join(dir, "losdash.log")})
		runErr = root.Execute()
	}

	main()

	if runErr != nil {
		t.Fatalf("execute: %v", runErr)
	}
	if !strings.Contains(out.String(), "Artifact:        runs/from-dotenv.json") {
		t.Fatalf("expected artifact path from .env, got:\n%s", out.String())
	}
}
