// internal/cli/export.go
package losdash

import (
	"fmt"

	"github.com/mwiater/losdash/internal/export"
	"github.com/mwiater/losdash/internal/logging"
	"github.com/mwiater/losdash/internal/metrics"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report values to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			if output == "" {
				output = cfg.XLSXOutput
			}
			report := metrics.Resolve(cfg.ArtifactPath)
			if err := export.WriteFile(output, report); err != nil {
				return err
			}
			logging.LogEvent("workbook written to %s (source=%s)", output, report.Source)
			fmt.Fprintf(cmd.OutOrStdout(), "Workbook written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "workbook path (defaults to xlsxOutput from config)")
	return cmd
}
