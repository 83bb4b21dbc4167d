// Package metrics exposes inventory counters and gauges to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the Prometheus implementation of slab.Metrics.
//
// A nil *Recorder is valid and records nothing, so callers can disable
// metrics by passing nil.
type Recorder struct {
	registry *prometheus.Registry

	slabsAdded       prometheus.Counter
	slabsRemoved     prometheus.Counter
	slabsImported    prometheus.Counter
	validationErrors *prometheus.CounterVec
	persistFailures  *prometheus.CounterVec
	slabsStored      prometheus.Gauge
	blockNumbers     prometheus.Gauge
}

// New registers the inventory metrics on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		slabsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_slabs_added_total",
			Help: "Total number of slabs added through the form",
		}),
		slabsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_slabs_removed_total",
			Help: "Total number of slabs removed",
		}),
		slabsImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_slabs_imported_total",
			Help: "Total number of slabs added by JSON import",
		}),
		validationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slabstock_validation_failures_total",
				Help: "Total number of rejected inputs by kind",
			},
			[]string{"kind"},
		),
		persistFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slabstock_persist_failures_total",
				Help: "Total number of failed storage writes by key",
			},
			[]string{"key"},
		),
		slabsStored: factory.NewGauge(prometheus.GaugeOpts{
			Name: "slabstock_slabs",
			Help: "Number of slabs currently in stock",
		}),
		blockNumbers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "slabstock_block_numbers",
			Help: "Number of remembered block numbers",
		}),
	}
}

// Registry returns the registry the recorder writes to.
func (m *Recorder) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Recorder) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Recorder) SlabAdded() {
	if m == nil {
		return
	}
	m.slabsAdded.Inc()
}

func (m *Recorder) SlabsRemoved(n int) {
	if m == nil {
		return
	}
	m.slabsRemoved.Add(float64(n))
}

func (m *Recorder) SlabsImported(n int) {
	if m == nil {
		return
	}
	m.slabsImported.Add(float64(n))
}

func (m *Recorder) ValidationFailed(kind string) {
	if m == nil {
		return
	}
	m.validationErrors.WithLabelValues(kind).Inc()
}

func (m *Recorder) PersistFailed(key string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(key).Inc()
}

// Inventory sets the stock gauges.
func (m *Recorder) Inventory(slabs, blockNumbers int) {
	if m == nil {
		return
	}
	m.slabsStored.Set(float64(slabs))
	m.blockNumbers.Set(float64(blockNumbers))
}
