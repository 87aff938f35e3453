package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Bid outcome label values.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeClosed   = "auction_closed"
	OutcomeInvalid  = "invalid_amount"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the marketplace Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry       *prometheus.Registry
	ListingsSeeded prometheus.Counter
	Bids           *prometheus.CounterVec
	AuctionsClosed prometheus.Counter
	HTTPRequests   *prometheus.CounterVec
	HTTPLatency    *prometheus.HistogramVec
}

// New initializes and registers the collectors on a private registry.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		ListingsSeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_seeded_total",
			Help:      "Total number of listings created with their seed bid.",
		}),
		Bids: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_total",
			Help:      "Total number of bid attempts by outcome.",
		}, []string{"outcome"}),
		AuctionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auctions_closed_total",
			Help:      "Total number of active to closed transitions.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.ListingsSeeded,
		m.Bids,
		m.AuctionsClosed,
		m.HTTPRequests,
		m.HTTPLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveSeed() {
	if m == nil {
		return
	}
	m.ListingsSeeded.Inc()
}

func (m *Metrics) ObserveBid(outcome string) {
	if m == nil {
		return
	}
	m.Bids.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveClose() {
	if m == nil {
		return
	}
	m.AuctionsClosed.Inc()
}
