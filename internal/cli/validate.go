// internal/cli/validate.go
package losdash

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/mwiater/losdash/internal/metrics"
	"github.com/spf13/cobra"
)

// errInvalidArtifact is returned so the process exits non-zero; the
// diagnostics have already been printed.
var errInvalidArtifact = errors.New("metrics artifact is not valid")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a metrics artifact without falling back to example data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg().ArtifactPath
			if len(args) == 1 {
				path = args[0]
			}
			out := cmd.OutOrStdout()

			report, err := metrics.Load(path)
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintf(out, "✗ %s\n", path)
				var verr *metrics.ValidationError
				if errors.As(err, &verr) {
					for _, problem := range verr.Problems {
						fmt.Fprintf(out, "  - %s\n", problem)
					}
				} else {
					fmt.Fprintf(out, "  %v\n", err)
				}
				cmd.SilenceErrors = true
				return errInvalidArtifact
			}

			color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ %s\n", path)
			fmt.Fprintf(out, "  model: %s\n", report.ModelName)
			for _, section := range missingSections(report) {
				color.New(color.FgYellow).Fprintf(out, "  optional section absent: %s\n", section)
			}
			return nil
		},
	}
}

func missingSections(r metrics.Report) []string {
	var missing []string
	if r.BinMetrics == nil {
		missing = append(missing, "bin_metrics")
	}
	if r.PerBinErrors == nil {
		missing = append(missing, "per_bin_errors")
	}
	if r.TopPredictors == nil {
		missing = append(missing, "top_predictors")
	}
	return missing
}
