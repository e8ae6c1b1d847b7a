package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CallbacksReceived tracks OAuth callbacks received by result
	CallbacksReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapnote_relay_callbacks_received_total",
			Help: "Total number of OAuth callbacks received by result",
		},
		[]string{"result"},
	)

	// TokenExchanges tracks code-for-token exchanges by result
	TokenExchanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapnote_relay_token_exchanges_total",
			Help: "Total number of token exchange attempts by result",
		},
		[]string{"result"},
	)

	// TokenExchangeDuration tracks token exchange duration
	TokenExchangeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapnote_relay_token_exchange_duration_seconds",
			Help:    "Duration of token exchange requests",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// RedirectTargets tracks which redirect transport was chosen
	RedirectTargets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapnote_relay_redirects_total",
			Help: "Total number of successful redirects by target (deep_link/web)",
		},
		[]string{"target"},
	)

	// RateLimitHits tracks rate limit hits
	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapnote_relay_rate_limit_hits_total",
			Help: "Total number of requests that hit rate limits",
		},
	)
)

// RecordCallback records a callback outcome.
func RecordCallback(result string) {
	CallbacksReceived.WithLabelValues(result).Inc()
}

// RecordExchange records a token exchange outcome.
func RecordExchange(result string) {
	TokenExchanges.WithLabelValues(result).Inc()
}
