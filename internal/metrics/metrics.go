package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeCommitted     = "committed"
	OutcomeEmptyCart     = "empty_cart"
	OutcomeStock         = "insufficient_stock"
	OutcomeInvalid       = "invalid_request"
	OutcomeCommitFailed  = "commit_failed"
	OutcomeLookupFailure = "lookup_failed"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	checkoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	checkoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_duration_seconds",
			Help:    "Time spent placing an order, including the commit transaction",
			Buckets: prometheus.DefBuckets,
		},
	)

	orderValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_order_value",
			Help:    "Grand total of committed orders in store currency",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
	)
)

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveCheckout records one checkout attempt. value is only recorded for
// committed orders.
func ObserveCheckout(outcome string, elapsed time.Duration, value float64) {
	checkoutsTotal.WithLabelValues(outcome).Inc()
	checkoutDuration.Observe(elapsed.Seconds())
	if outcome == OutcomeCommitted {
		orderValue.Observe(value)
	}
}
