// internal/telemetry/recorder.go
// Package telemetry exposes Prometheus instrumentation for report resolution
// and rendering.
package telemetry

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements metrics.Recorder on top of Prometheus collectors.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry        *prom.Registry
	resolutions     *prom.CounterVec
	resolveDuration prom.Histogram
	renders         *prom.CounterVec
	renderDuration  *prom.HistogramVec
}

// NewRecorder constructs and registers the collectors on reg, or on a fresh
// registry when reg is nil.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		registry: reg,
		resolutions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "losdash",
			Name:      "report_resolutions_total",
			Help:      "Metrics report resolutions by source (artifact or fallback)",
		}, []string{"source"}),
		resolveDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "losdash",
			Name:      "report_resolve_duration_seconds",
			Help:      "Time spent reading and validating the metrics artifact",
			Buckets:   prom.DefBuckets,
		}),
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "losdash",
			Name:      "report_renders_total",
			Help:      "Rendered reports by output format and result",
		}, []string{"format", "result"}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "losdash",
			Name:      "report_render_duration_seconds",
			Help:      "Time spent rendering a report",
			Buckets:   prom.DefBuckets,
		}, []string{"format"}),
	}
	reg.MustRegister(r.resolutions, r.resolveDuration, r.renders, r.renderDuration)
	return r
}

// ObserveResolve counts one resolution and its latency.
func (r *Recorder) ObserveResolve(source string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.resolutions.WithLabelValues(source).Inc()
	r.resolveDuration.Observe(elapsed.Seconds())
}

// ObserveRender counts one render attempt in the given format.
func (r *Recorder) ObserveRender(format string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failed"
	}
	r.renders.WithLabelValues(format, result).Inc()
	r.renderDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prom.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
