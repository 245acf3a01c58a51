// Package metrics exposes Prometheus collectors for transports.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess  = "success"
	OutcomeStatus   = "status_error"
	OutcomeNetwork  = "network_error"
	OutcomeRejected = "rejected"
)

// Metrics contains transport collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	Requests        *prometheus.CounterVec
	QueueDepth      *prometheus.GaugeVec
}

// New creates and registers collectors with registry, or the default registerer when nil
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "baseclient_request_duration_seconds",
			Help:    "Duration of transport network calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"transport", "method"}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "baseclient_requests_total",
			Help: "The total number of transport requests by outcome",
		}, []string{"transport", "outcome"}),
		QueueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "baseclient_queue_depth",
			Help: "Pending transactions of synced transports",
		}, []string{"transport"}),
	}
}

// Observe records one finished request
func (m *Metrics) Observe(transport, method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(transport, method).Observe(elapsed.Seconds())
	m.Requests.WithLabelValues(transport, outcome).Inc()
}

// Reject records a request rejected before dispatch
func (m *Metrics) Reject(transport string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(transport, OutcomeRejected).Inc()
}

// SetQueueDepth records current queue length
func (m *Metrics) SetQueueDepth(transport string, depth int) {
	if m == nil {
		return
	}
	m.QueueDepth.WithLabelValues(transport).Set(float64(depth))
}
