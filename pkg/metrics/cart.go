package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart events and storage round-trips.
type CartMetrics struct {
	events          *prometheus.CounterVec
	storageDuration *prometheus.HistogramVec
	storageFailure  *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_events_total",
		Help: "Cart events emitted by kind.",
	}, []string{"kind"})
	storageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_storage_duration_seconds",
		Help:    "Duration of cart storage operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "op"})
	storageFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_storage_failures_total",
		Help: "Failed cart storage operations.",
	}, []string{"backend", "op"})
	reg.MustRegister(events, storageDuration, storageFailure)
	return &CartMetrics{
		events:          events,
		storageDuration: storageDuration,
		storageFailure:  storageFailure,
	}
}

// IncEvent counts one cart event.
func (c *CartMetrics) IncEvent(kind string) {
	if c == nil || c.events == nil {
		return
	}
	c.events.WithLabelValues(normalizeLabel(kind)).Inc()
}

// ObserveStorage records the duration of a storage call and counts failures.
func (c *CartMetrics) ObserveStorage(backend, op string, duration time.Duration, err error) {
	if c == nil || c.storageDuration == nil {
		return
	}
	backend = normalizeLabel(backend)
	op = normalizeLabel(op)
	c.storageDuration.WithLabelValues(backend, op).Observe(duration.Seconds())
	if err != nil && c.storageFailure != nil {
		c.storageFailure.WithLabelValues(backend, op).Inc()
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
