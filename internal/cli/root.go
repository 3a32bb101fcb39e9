// internal/cli/root.go
package losdash

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/losdash/internal/appconfig"
	"github.com/mwiater/losdash/internal/logging"
	"github.com/mwiater/losdash/internal/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// app carries the state shared by one command tree: its own viper instance
// and the configuration materialized in PersistentPreRunE.
type app struct {
	v       *viper.Viper
	cfgFile string
	config  *appconfig.Config
}

// NewRootCmd builds the losdash command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "losdash",
		Short: "Hospital length-of-stay model report",
		Long: `losdash renders the evaluation report of a hospital length-of-stay model.

It reads artifacts/metrics.json (or the path given by --artifact) and falls
back to built-in example metrics when the file is missing or unusable.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	root.PersistentFlags().String("artifact", metrics.DefaultArtifactPath, "path to the metrics artifact (JSON or YAML)")
	root.PersistentFlags().String("plots-dir", appconfig.DefaultPlotsDir, "directory holding the evaluation plots")
	root.PersistentFlags().String("logFile", "", "path to the log file")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")

	_ = a.v.BindPFlag("artifact", root.PersistentFlags().Lookup("artifact"))
	_ = a.v.BindPFlag("plotsDir", root.PersistentFlags().Lookup("plots-dir"))
	_ = a.v.BindPFlag("logFile", root.PersistentFlags().Lookup("logFile"))
	_ = a.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))

	root.AddCommand(
		newRenderCmd(a),
		newShowCmd(a),
		newViewCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newValidateCmd(a),
		newCommandsCmd(),
	)
	return root
}

// Execute runs the command tree and exits non-zero on error.
// This is called by main.main().
func Execute() {
	defer logging.Close()
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// loadConfig merges flags > env > config file > defaults into a.config and
// initializes logging from it.
func (a *app) loadConfig(cmd *cobra.Command) error {
	defaults := appconfig.Defaults()
	a.v.SetDefault("artifact", defaults.ArtifactPath)
	a.v.SetDefault("plotsDir", defaults.PlotsDir)
	a.v.SetDefault("htmlOutput", defaults.HTMLOutput)
	a.v.SetDefault("xlsxOutput", defaults.XLSXOutput)
	a.v.SetDefault("listen", defaults.ListenAddr)
	a.v.SetDefault("logFile", "")
	a.v.SetDefault("debug", false)
	a.v.SetDefault("watchDebounceMs", 0)

	a.v.SetEnvPrefix("LOSDASH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	var cfg appconfig.Config
	if err := a.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigPath = a.v.ConfigFileUsed()
	cfg.Normalize()
	a.config = &cfg

	logging.SetConsole(cmd.ErrOrStderr())
	if err := logging.Init(cfg.LogFilePath(), cfg.Debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// configFileLoaded returns the config file that was actually read, if any.
func (a *app) configFileLoaded() string {
	if a.config == nil || a.config.ConfigPath == "" {
		return ""
	}
	if _, err := os.Stat(a.config.ConfigPath); err != nil {
		return ""
	}
	return a.config.ConfigPath
}

func (a *app) cfg() appconfig.Config {
	if a.config == nil {
		return appconfig.Defaults()
	}
	return *a.config
}
