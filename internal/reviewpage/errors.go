package reviewpage

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while an earlier
	// submission has not completed yet.
	ErrSubmitInFlight = errors.New("reviewpage: submission already in flight")

	// ErrStaleResponse is returned by Load when a newer load or a product
	// change superseded the request; its result was discarded.
	ErrStaleResponse = errors.New("reviewpage: stale response discarded")
)

// Op names the page operation that failed.
type Op string

const (
	OpLoad   Op = "load"
	OpSubmit Op = "submit"
)

// OperationError is the page's visible error state.
type OperationError struct {
	Op        Op
	ProductID string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s reviews for product %q: %v", e.Op, e.ProductID, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// unavailable is implemented by source errors that mean the review API is
// down rather than rejecting this particular request.
type unavailable interface {
	Unavailable() bool
}

// IsUnavailable reports whether err signals that the review API is unavailable.
func IsUnavailable(err error) bool {
	var u unavailable
	return errors.As(err, &u) && u.Unavailable()
}
