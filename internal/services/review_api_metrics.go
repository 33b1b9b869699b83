// internal/services/review_api_metrics.go
package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

var (
	reviewAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_api_requests_total",
			Help: "Total number of requests sent to the review API",
		},
		[]string{"operation", "outcome"},
	)

	reviewAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_api_request_duration_seconds",
			Help:    "Review API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	reviewAPIBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "review_api_circuit_breaker_state",
			Help: "Current state of the review API circuit breaker (0=closed, 1=half-open, 2=open)",
		},
	)
)

// outcome classifies an error for the requests counter.
func outcome(err error) string {
	var apiErr *APIError
	var unavailableErr *UnavailableError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.As(err, &unavailableErr):
		return "unavailable"
	case errors.As(err, &apiErr) && apiErr.IsClientError():
		return "client_error"
	case errors.As(err, &apiErr):
		return "server_error"
	default:
		return "error"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
