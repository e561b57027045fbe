// Package metrics exposes patch outcomes as Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/bronzestone/internal/patch"
)

// Patch counts Apply outcomes. It implements patch.Observer.
type Patch struct {
	runs     *prometheus.CounterVec
	rewrites prometheus.Counter
}

// NewPatch creates the patch counters and registers them on reg.
func NewPatch(reg prometheus.Registerer) (*Patch, error) {
	m := &Patch{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bronzestone_patch_runs_total",
				Help: "Number of patch runs by result.",
			},
			[]string{"result"},
		),
		rewrites: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bronzestone_patch_rewrites_total",
				Help: "Number of requirements rewritten to the target resource.",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.runs, m.rewrites} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObservePatch implements patch.Observer.
func (m *Patch) ObservePatch(res patch.Result, rewritten int) {
	m.runs.WithLabelValues(res.String()).Inc()
	if rewritten > 0 {
		m.rewrites.Add(float64(rewritten))
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
