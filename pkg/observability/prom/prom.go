// Package prom implements observability hooks with Prometheus collectors.
//
// Metrics are registered on a private registry so a build step can write
// them as a node_exporter textfile without touching the global registry.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/layoutgen/pkg/buildinfo"
	"github.com/matzehuels/layoutgen/pkg/observability"
)

// Metrics collects generator and store events.
type Metrics struct {
	registry     *prometheus.Registry
	runs         *prometheus.CounterVec
	units        *prometheus.CounterVec
	unitDuration *prometheus.HistogramVec
	storeOps     *prometheus.CounterVec
	storeBytes   *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "layoutgen_runs_total",
				Help: "Total number of generation runs",
			},
			[]string{"result"},
		),
		units: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "layoutgen_units_total",
				Help: "Total number of (base, angle) units by outcome",
			},
			[]string{"angle", "status"},
		),
		unitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "layoutgen_unit_duration_seconds",
				Help:    "Duration of one (base, angle) unit",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"angle"},
		),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "layoutgen_store_ops_total",
				Help: "Layout store operations",
			},
			[]string{"backend", "op", "result"},
		),
		storeBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "layoutgen_store_written_bytes_total",
				Help: "Bytes written to the layout store",
			},
			[]string{"backend"},
		),
	}
	build := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "layoutgen_build_info",
		Help:        "Build information of the layoutgen binary",
		ConstLabels: buildinfo.Labels(),
	})
	build.Set(1)
	m.registry.MustRegister(build, m.runs, m.units, m.unitDuration, m.storeOps, m.storeBytes)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) OnRunStart(context.Context, string, int) {}

func (m *Metrics) OnUnitComplete(_ context.Context, _ string, angle int, status string, d time.Duration, err error) {
	a := strconv.Itoa(angle)
	if err != nil {
		status = "error"
	}
	m.units.WithLabelValues(a, status).Inc()
	m.unitDuration.WithLabelValues(a).Observe(d.Seconds())
}

func (m *Metrics) OnRunComplete(_ context.Context, _ string, _ time.Duration, err error) {
	m.runs.WithLabelValues(result(err == nil, "ok", "error")).Inc()
}

func (m *Metrics) OnRead(_ context.Context, backend, kind string, hit bool) {
	m.storeOps.WithLabelValues(backend, "read_"+kind, result(hit, "hit", "miss")).Inc()
}

func (m *Metrics) OnWrite(_ context.Context, backend string, size int) {
	m.storeOps.WithLabelValues(backend, "write", "ok").Inc()
	m.storeBytes.WithLabelValues(backend).Add(float64(size))
}

func (m *Metrics) OnDelete(_ context.Context, backend string) {
	m.storeOps.WithLabelValues(backend, "delete", "ok").Inc()
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

var (
	_ observability.GeneratorHooks = (*Metrics)(nil)
	_ observability.StoreHooks     = (*Metrics)(nil)
)
