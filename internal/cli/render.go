// internal/cli/render.go
package losdash

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwiater/losdash/internal/logging"
	"github.com/mwiater/losdash/internal/metrics"
	"github.com/mwiater/losdash/internal/plots"
	"github.com/mwiater/losdash/internal/render"
	"github.com/mwiater/losdash/internal/util"
	"github.com/mwiater/losdash/internal/watch"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output string
		title  string
		watchF bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the self-contained HTML report",
		Long: `Render resolves the metrics artifact and writes a single HTML page with the
plots embedded. With --watch it keeps running and re-renders whenever the
artifact changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			if output == "" {
				output = cfg.HTMLOutput
			}
			renderOnce := func() error {
				if err := renderHTMLFile(output, title, cfg.ArtifactPath, cfg.PlotsDir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
				return nil
			}
			if err := renderOnce(); err != nil {
				return err
			}
			if !watchF {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchArtifact(ctx, cfg.ArtifactPath, cfg.WatchDebounce(), func() {
				if err := renderOnce(); err != nil {
					slog.Error("re-render failed", "error", err)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "HTML output path (defaults to htmlOutput from config)")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	cmd.Flags().BoolVarP(&watchF, "watch", "w", false, "re-render when the artifact changes")
	return cmd
}

// renderHTMLFile resolves the artifact once and writes the page atomically.
func renderHTMLFile(output, title, artifactPath, plotsDir string) error {
	report := metrics.Resolve(artifactPath)
	var buf bytes.Buffer
	if err := render.HTML(&buf, report, plots.Check(plotsDir), render.PageOptions{Title: title, EmbedImages: true}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := util.WriteFileAtomic(output, buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write report %s: %w", output, err)
	}
	logging.LogEvent("report written to %s (source=%s)", output, report.Source)
	return nil
}

// watchArtifact blocks until ctx is done, calling onChange after each
// debounced change to the artifact.
func watchArtifact(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	w, err := watch.New(path, debounce, onChange)
	if err != nil {
		return err
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
