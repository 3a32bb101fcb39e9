// internal/cli/view.go
package losdash

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/losdash/internal/metrics"
	"github.com/mwiater/losdash/internal/plots"
	"github.com/mwiater/losdash/internal/tui"
	"github.com/mwiater/losdash/internal/watch"
	"github.com/spf13/cobra"
)

func newViewCmd(a *app) *cobra.Command {
	var watchF bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the report in an interactive terminal viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			load := func() (metrics.Report, []plots.Status) {
				return metrics.Resolve(cfg.ArtifactPath), plots.Check(cfg.PlotsDir)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var updates chan tui.ReportMsg
			if watchF {
				updates = make(chan tui.ReportMsg, 1)
				w, err := watch.New(cfg.ArtifactPath, cfg.WatchDebounce(), func() {
					r, figures := load()
					select {
					case updates <- tui.ReportMsg{Report: r, Figures: figures}:
					default:
					}
				})
				if err != nil {
					return err
				}
				defer w.Stop()
				if err := w.Start(ctx); err != nil {
					return err
				}
			}

			report, figures := load()
			return tui.Run(ctx, report, figures, load, updates)
		},
	}
	cmd.Flags().BoolVarP(&watchF, "watch", "w", false, "reload when the artifact changes")
	return cmd
}
