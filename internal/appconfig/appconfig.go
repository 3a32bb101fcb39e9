// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/mwiater/losdash/internal/metrics"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultPlotsDir holds the pre-rendered evaluation plots.
	DefaultPlotsDir = "plots"
	// DefaultHTMLOutput is where the render command writes the page.
	DefaultHTMLOutput = "reports/los-report.html"
	// DefaultXLSXOutput is where the export command writes the workbook.
	DefaultXLSXOutput = "reports/los-report.xlsx"
	// DefaultListenAddr is the address the serve command binds to.
	DefaultListenAddr = ":8501"
	// defaultWatchDebounce coalesces bursts of writes to the artifact.
	defaultWatchDebounce = 500 * time.Millisecond
)

// Config represents the top-level application configuration.
type Config struct {
	ArtifactPath    string `json:"artifact" mapstructure:"artifact"`
	PlotsDir        string `json:"plotsDir" mapstructure:"plotsDir"`
	HTMLOutput      string `json:"htmlOutput" mapstructure:"htmlOutput"`
	XLSXOutput      string `json:"xlsxOutput" mapstructure:"xlsxOutput"`
	ListenAddr      string `json:"listen" mapstructure:"listen"`
	LogFile         string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug           bool   `json:"debug" mapstructure:"debug"`
	WatchDebounceMs int    `json:"watchDebounceMs,omitempty" mapstructure:"watchDebounceMs"`
	ConfigPath      string `json:"-" mapstructure:"-"`
}

// Defaults returns a configuration with every field at its default.
func Defaults() Config {
	cfg := Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills empty fields with their defaults.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.ArtifactPath) == "" {
		c.ArtifactPath = metrics.DefaultArtifactPath
	}
	if strings.TrimSpace(c.PlotsDir) == "" {
		c.PlotsDir = DefaultPlotsDir
	}
	if strings.TrimSpace(c.HTMLOutput) == "" {
		c.HTMLOutput = DefaultHTMLOutput
	}
	if strings.TrimSpace(c.XLSXOutput) == "" {
		c.XLSXOutput = DefaultXLSXOutput
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = DefaultListenAddr
	}
}

// WatchDebounce returns the debounce window for watch mode.
func (c Config) WatchDebounce() time.Duration {
	if c.WatchDebounceMs <= 0 {
		return defaultWatchDebounce
	}
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "losdash.log"
}

// PlotPath joins a plot file name onto the plots directory.
func (c Config) PlotPath(name string) string {
	return filepath.Join(c.PlotsDir, name)
}
