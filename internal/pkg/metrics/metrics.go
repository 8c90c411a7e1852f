package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portfolio_tracker"

// Fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeStale   = "stale"
)

var (
	PortfolioFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "portfolio_fetches_total",
		Help:      "Portfolio fetches by outcome.",
	}, []string{"outcome"})

	PortfolioFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "portfolio_fetch_duration_seconds",
		Help:      "Time spent loading a portfolio.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 3, 5, 10},
	})

	PortfolioTotalValue = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "portfolio_total_value_usd",
		Help:      "Total USD value of the displayed portfolio.",
	})

	PortfolioTokenCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "portfolio_token_count",
		Help:      "Number of tokens in the displayed portfolio.",
	})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry. Safe to call
// more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			PortfolioFetches,
			PortfolioFetchDuration,
			PortfolioTotalValue,
			PortfolioTokenCount,
			HTTPRequests,
		)
	})
}
