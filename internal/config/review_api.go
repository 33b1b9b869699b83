// internal/config/review_api.go
package config

import (
	"strings"
	"time"
)

// ReviewsURL is the collection endpoint of the external review API.
func (r *ReviewAPIConfig) ReviewsURL() string {
	return strings.TrimRight(r.BaseURL, "/") + "/api/reviews"
}

func (r *ReviewAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(r.Timeout) * time.Second
}

func (r *ReviewAPIConfig) BreakerTimeoutDuration() time.Duration {
	return time.Duration(r.BreakerTimeout) * time.Second
}
