// internal/services/review_api_errors.go
package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"
)

// ErrMalformedResponse is returned when the review API answers 2xx with a
// body that is not a JSON array of valid reviews.
var ErrMalformedResponse = errors.New("malformed review API response")

// APIError is a non-2xx answer from the review API.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("review API %s returned status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("review API %s returned status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Unavailable reports gateway-style failures that say nothing about the request itself.
func (e *APIError) Unavailable() bool {
	switch e.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsClientError returns true if the review API rejected the request with a 4xx.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// UnavailableError wraps transport failures and open-breaker rejections.
type UnavailableError struct {
	Operation string
	Err       error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("review API %s unavailable: %v", e.Operation, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Unavailable() bool { return true }

// ErrCircuitOpen is wrapped by UnavailableError when the breaker rejects a call.
var ErrCircuitOpen = gobreaker.ErrOpenState
