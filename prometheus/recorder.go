// Package prometheus exposes scheduler activity as Prometheus metrics.
package prometheus

import (
	"net/http"

	"github.com/fwojciec/festin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ festin.Recorder = (*Recorder)(nil)

// Recorder implements festin.Recorder with Prometheus collectors.
type Recorder struct {
	domains    *prometheus.CounterVec
	probes     *prometheus.CounterVec
	dispatches prometheus.Gauge
}

// NewRecorder registers the festin collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	r := &Recorder{
		domains: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "festin_domains_total",
				Help: "Total number of domains admitted to the scheduler, labeled by disposition.",
			},
			[]string{"disposition"},
		),
		probes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "festin_probes_total",
				Help: "Total number of probe outcomes, labeled by probe and outcome.",
			},
			[]string{"probe", "outcome"},
		),
		dispatches: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "festin_active_dispatches",
				Help: "Number of domains currently being probed.",
			},
		),
	}

	// Every disposition starts at zero.
	for _, d := range festin.Dispositions() {
		r.domains.WithLabelValues(string(d))
	}
	return r
}

// RecordDisposition increments the domain counter for d.
func (r *Recorder) RecordDisposition(d festin.Disposition) {
	r.domains.WithLabelValues(string(d)).Inc()
}

// RecordProbe increments the probe counter.
func (r *Recorder) RecordProbe(probe string, kind festin.OutcomeKind) {
	r.probes.WithLabelValues(probe, kind.String()).Inc()
}

// DispatchStarted increments the active dispatch gauge.
func (r *Recorder) DispatchStarted() {
	r.dispatches.Inc()
}

// DispatchFinished decrements the active dispatch gauge.
func (r *Recorder) DispatchFinished() {
	r.dispatches.Dec()
}

// Handler returns an http.Handler serving the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
