// internal/cli/show.go
package losdash

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/mwiater/losdash/internal/appconfig"
	"github.com/mwiater/losdash/internal/metrics"
	"github.com/mwiater/losdash/internal/plots"
	"github.com/mwiater/losdash/internal/render"
	"github.com/spf13/cobra"
)

// newShowCmd implements 'show', which prints the report summary to the
// terminal, and its 'config' subcommand.
func newShowCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		dump   bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the report summary in the terminal",
		Long:  `The 'show' command prints the resolved report. Use --json for machine-readable output or --dump to pretty-print the decoded structure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			report := metrics.Resolve(cfg.ArtifactPath)
			out := cmd.OutOrStdout()

			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case dump:
				pp.ColoringEnabled = false
				_, err := pp.Fprintln(out, report)
				return err
			}

			if report.IsFallback() {
				warn := color.New(color.FgYellow, color.Bold)
				warn.Fprintf(out, "No usable artifact at %s, displaying example data.\n", cfg.ArtifactPath)
				if report.Diagnostic != "" {
					color.New(color.FgYellow).Fprintf(out, "  %s\n", report.Diagnostic)
				}
				fmt.Fprintln(out)
			}
			return render.Terminal(out, report, plots.Check(cfg.PlotsDir))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolved report as JSON")
	cmd.Flags().BoolVar(&dump, "dump", false, "pretty-print the decoded report structure")

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Show config settings",
		Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
		Run: func(cmd *cobra.Command, args []string) {
			appconfig.ShowConfig(cmd.OutOrStdout(), a.configFileLoaded(), a.config)
		},
	})
	return cmd
}
