// Package metrics exposes Prometheus instruments for lookups and comparisons.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipcheck_provider_requests_total",
		Help: "Provider lookups by outcome",
	}, []string{"outcome"})
	ProviderDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ipcheck_provider_duration_ms",
		Help:    "Provider lookup duration in milliseconds",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	ReverseDNSTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipcheck_reverse_dns_total",
		Help: "Reverse DNS lookups by result",
	}, []string{"result"})
	ComparisonsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipcheck_comparisons_total",
		Help: "Comparisons by outcome",
	}, []string{"outcome"})
	HistoryEntriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ipcheck_history_entries_total",
		Help: "Entries appended to session histories",
	})
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderDurationMs)
	prometheus.MustRegister(ReverseDNSTotal)
	prometheus.MustRegister(ComparisonsTotal)
	prometheus.MustRegister(HistoryEntriesTotal)
}

// Handler serves the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
