package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		defaults := Defaults()
		cfg = &defaults
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Artifact:        %s\n", cfg.ArtifactPath)
	fmt.Fprintf(out, "  Plots Dir:       %s\n", cfg.PlotsDir)
	fmt.Fprintf(out, "  HTML Output:     %s\n", cfg.HTMLOutput)
	fmt.Fprintf(out, "  XLSX Output:     %s\n", cfg.XLSXOutput)
	fmt.Fprintf(out, "  Listen:          %s\n", cfg.ListenAddr)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Watch Debounce:  %s\n", cfg.WatchDebounce())
}
