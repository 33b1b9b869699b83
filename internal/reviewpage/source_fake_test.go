package reviewpage

import (
	"context"
	"sync"
	"time"

	"github.com/javajoker/review-page/internal/models"
)

// fakeSource records calls and serves canned reviews per product.
type fakeSource struct {
	mu        sync.Mutex
	reviews   map[string][]models.Review
	listErr   error
	createErr error

	listCalls   []string
	createCalls []models.CreateReviewRequest

	// when set, ListReviews for that product blocks until the channel is closed
	block map[string]chan struct{}
	// when set, CreateReview blocks until the channel is closed
	createGate chan struct{}
	started    chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		reviews: make(map[string][]models.Review),
		block:   make(map[string]chan struct{}),
	}
}

func (f *fakeSource) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, productID)
	gate := f.block[productID]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Review(nil), f.reviews[productID]...), nil
}

func (f *fakeSource) CreateReview(ctx context.Context, req models.CreateReviewRequest) error {
	f.mu.Lock()
	f.createCalls = append(f.createCalls, req)
	gate := f.createGate
	started := f.started
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.reviews[req.ProductID] = append(f.reviews[req.ProductID], models.Review{
		ID:          "new",
		ProductID:   req.ProductID,
		Rating:      req.Rating,
		Description: req.Description,
	})
	return nil
}

func (f *fakeSource) lists() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listCalls...)
}

func (f *fakeSource) creates() []models.CreateReviewRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CreateReviewRequest(nil), f.createCalls...)
}

func rating(v float64) *float64 { return &v }

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)
