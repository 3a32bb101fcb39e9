// internal/cli/serve.go
package losdash

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/losdash/internal/server"
	"github.com/mwiater/losdash/internal/telemetry"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report, its JSON API and Prometheus metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			if listen != "" {
				cfg.ListenAddr = listen
			}

			reg := prom.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			srv := server.New(cfg, telemetry.NewRecorder(reg))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (defaults to listen from config)")
	return cmd
}
