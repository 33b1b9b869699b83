// internal/services/review_api_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/javajoker/review-page/internal/config"
	"github.com/javajoker/review-page/internal/models"
	"github.com/javajoker/review-page/internal/utils"
)

const (
	opListReviews  = "list_reviews"
	opCreateReview = "create_review"

	maxResponseBytes = 4 << 20
	maxErrorBody     = 512
)

// ReviewAPIClient talks to the external review API. It never retries; an
// open circuit breaker fails calls fast while the API is down.
type ReviewAPIClient struct {
	httpClient *http.Client
	reviewsURL string
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        logrus.FieldLogger
}

type ClientOption func(*ReviewAPIClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *ReviewAPIClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithClientLogger(logger logrus.FieldLogger) ClientOption {
	return func(c *ReviewAPIClient) {
		if logger != nil {
			c.log = logger
		}
	}
}

func NewReviewAPIClient(cfg config.ReviewAPIConfig, opts ...ClientOption) *ReviewAPIClient {
	c := &ReviewAPIClient{
		httpClient: &http.Client{Timeout: cfg.TimeoutDuration()},
		reviewsURL: cfg.ReviewsURL(),
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.BreakerEnabled {
		c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "review-api",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     cfg.BreakerTimeoutDuration(),
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < cfg.BreakerMinRequests {
					return false
				}
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return failureRatio >= cfg.BreakerFailureRatio
			},
			IsSuccessful: breakerSuccess,
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				c.log.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("Circuit breaker state change")
				reviewAPIBreakerState.Set(stateToFloat(to))
			},
		})
		reviewAPIBreakerState.Set(0)
	}

	return c
}

// ListReviews performs GET /api/reviews?productId=<id>.
func (c *ReviewAPIClient) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	u := c.reviewsURL + "?" + url.Values{"productId": {productID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create list reviews request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var reviews []models.Review
	body, err := c.do(req, opListReviews)
	if err == nil {
		reviews, err = decodeReviews(body)
		if err != nil {
			c.log.WithError(err).WithField("product_id", productID).Warn("Review API returned an invalid review list")
		}
	}
	reviewAPIRequestsTotal.WithLabelValues(opListReviews, outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview performs POST /api/reviews. The response body is ignored.
func (c *ReviewAPIClient) CreateReview(ctx context.Context, in models.CreateReviewRequest) error {
	if err := utils.ValidateStruct(&in); err != nil {
		return fmt.Errorf("invalid create review request: %w", err)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode create review request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.reviewsURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create review request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req, opCreateReview)
	reviewAPIRequestsTotal.WithLabelValues(opCreateReview, outcome(err)).Inc()
	return err
}

func (c *ReviewAPIClient) do(req *http.Request, op string) ([]byte, error) {
	start := time.Now()
	defer func() {
		reviewAPIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	roundTrip := func() ([]byte, error) { return c.roundTrip(req, op) }

	var (
		body []byte
		err  error
	)
	if c.breaker != nil {
		body, err = c.breaker.Execute(roundTrip)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &UnavailableError{Operation: op, Err: err}
		}
	} else {
		body, err = roundTrip()
	}

	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"operation": op,
			"method":    req.Method,
			"url":       req.URL.Redacted(),
		}).Debug("Review API request failed")
		return nil, err
	}
	return body, nil
}

func (c *ReviewAPIClient) roundTrip(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &UnavailableError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read review API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &APIError{Operation: op, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	return body, nil
}

func decodeReviews(body []byte) ([]models.Review, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedResponse)
	}

	var reviews []models.Review
	if err := json.Unmarshal(trimmed, &reviews); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for i := range reviews {
		if err := utils.ValidateStruct(&reviews[i]); err != nil {
			return nil, fmt.Errorf("%w: review %d: %v", ErrMalformedResponse, i, err)
		}
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// breakerSuccess keeps request-level rejections and caller cancellations
// from tripping the breaker.
func breakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsClientError()
	}
	return false
}
