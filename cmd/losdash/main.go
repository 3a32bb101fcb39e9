// cmd/losdash/main.go
package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	cmd "github.com/mwiater/losdash/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Indirections so main can be exercised without exiting the test binary.
var (
	loadEnv        = func() error { return godotenv.Load() }
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main loads an optional .env file, injects build metadata and hands over
// to the cobra root command.
func main() {
	if err := loadEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}
	setVersionInfo(version, commit, date)
	executeCmd()
}
