// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "compdoc"

// Registry holds the Prometheus metrics of documentation generation.
type Registry struct {
	prom *prometheus.Registry

	Runs          *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	Components    prometheus.Gauge
	Rows          prometheus.Gauge
	OutputsTotal  *prometheus.CounterVec
	OutputBytes   *prometheus.GaugeVec
	LastSuccessTS prometheus.Gauge
}

// NewRegistry creates a registry with every generation metric registered.
func NewRegistry() *Registry {
	r := &Registry{
		prom: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Documentation generation runs by result.",
		}, []string{"result"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of documentation generation runs.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		Components: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "components",
			Help:      "Components documented by the last successful run.",
		}),
		Rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "configuration_rows",
			Help:      "Configuration table rows written by the last successful run.",
		}),
		OutputsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outputs_written_total",
			Help:      "Output files written by format.",
		}, []string{"format"}),
		OutputBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_bytes",
			Help:      "Size of the last written output by format.",
		}, []string{"format"}),
		LastSuccessTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	r.prom.MustRegister(
		r.Runs,
		r.RunDuration,
		r.Components,
		r.Rows,
		r.OutputsTotal,
		r.OutputBytes,
		r.LastSuccessTS,
	)
	return r
}

// Gatherer exposes the underlying registry for export.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.prom
}
