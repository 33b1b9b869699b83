// Package reviewpage holds the state and operations of a single product's
// review page, independent of how it is rendered.
package reviewpage

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/review-page/internal/models"
)

// ReviewSource is the external review API as seen by the page.
type ReviewSource interface {
	ListReviews(ctx context.Context, productID string) ([]models.Review, error)
	CreateReview(ctx context.Context, req models.CreateReviewRequest) error
}

// Option customizes Page construction.
type Option func(*Page)

// WithLogger replaces the standard logrus logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Page) {
		if logger != nil {
			p.log = logger
		}
	}
}

// Page is one instance of the review page for one product at a time.
// It is safe for concurrent use; the lock is never held across calls to the
// ReviewSource.
type Page struct {
	source ReviewSource
	log    logrus.FieldLogger

	mu          sync.Mutex
	productID   string
	reviews     []models.Review
	loaded      bool
	userRating  *float64
	description string
	err         *OperationError
	submitting  bool
	loadSeq     uint64
}

// New creates a page for productID. Nothing is fetched until Load is called.
func New(productID string, source ReviewSource, opts ...Option) *Page {
	p := &Page{
		source:    source,
		log:       logrus.StandardLogger(),
		productID: productID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Page) ProductID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.productID
}

// Load fetches the reviews of the current product and replaces the list.
// A response that arrives after a newer Load or a product change is dropped
// and ErrStaleResponse is returned.
func (p *Page) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loadSeq++
	seq := p.loadSeq
	productID := p.productID
	p.mu.Unlock()

	reviews, err := p.source.ListReviews(ctx, productID)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.loadSeq || productID != p.productID {
		p.log.WithFields(logrus.Fields{
			"product_id": productID,
			"seq":        seq,
			"latest":     p.loadSeq,
		}).Debug("Discarding stale review load")
		return ErrStaleResponse
	}

	if err != nil {
		p.err = &OperationError{Op: OpLoad, ProductID: productID, Err: err}
		p.log.WithError(err).WithField("product_id", productID).Warn("Failed to load reviews")
		return p.err
	}

	p.reviews = append(make([]models.Review, 0, len(reviews)), reviews...)
	p.loaded = true
	p.err = nil
	return nil
}

// SetProduct switches the page to another product and loads its reviews.
// Setting the current product again does nothing.
func (p *Page) SetProduct(ctx context.Context, productID string) error {
	p.mu.Lock()
	if productID == p.productID {
		p.mu.Unlock()
		return nil
	}
	p.productID = productID
	p.reviews = nil
	p.loaded = false
	p.err = nil
	p.mu.Unlock()

	return p.Load(ctx)
}

// SetRating selects a rating; nil clears the selection.
func (p *Page) SetRating(rating *float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if rating == nil {
		p.userRating = nil
		return
	}
	v := *rating
	p.userRating = &v
}

func (p *Page) SetDescription(description string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.description = description
}

// Submit posts the form as a new review. Without a selected rating it does
// nothing and reports false. After a successful post the form is cleared and
// the list is reloaded once; the returned error is then the reload's error.
// A failed post keeps the form and sets the page error.
func (p *Page) Submit(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.userRating == nil {
		p.mu.Unlock()
		return false, nil
	}
	if p.submitting {
		p.mu.Unlock()
		return false, ErrSubmitInFlight
	}
	p.submitting = true
	req := models.CreateReviewRequest{
		ProductID:   p.productID,
		Rating:      *p.userRating,
		Description: p.description,
	}
	p.mu.Unlock()

	err := p.source.CreateReview(ctx, req)

	p.mu.Lock()
	p.submitting = false
	if err != nil {
		p.err = &OperationError{Op: OpSubmit, ProductID: req.ProductID, Err: err}
		opErr := p.err
		p.mu.Unlock()
		p.log.WithError(err).WithField("product_id", req.ProductID).Warn("Failed to submit review")
		return false, opErr
	}
	p.userRating = nil
	p.description = ""
	p.err = nil
	p.mu.Unlock()

	p.log.WithFields(logrus.Fields{
		"product_id": req.ProductID,
		"rating":     req.Rating,
	}).Info("Review submitted")

	if err := p.Load(ctx); err != nil && !errors.Is(err, ErrStaleResponse) {
		return true, err
	}
	return true, nil
}

// View returns a snapshot of the page for rendering.
func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	reviews := make([]ReviewView, 0, len(p.reviews))
	for _, r := range p.reviews {
		reviews = append(reviews, ReviewView{
			Review: r,
			Stars:  Stars(r.Rating, RatingPrecision),
		})
	}

	avg := Average(p.reviews)
	v := View{
		ProductID:    p.productID,
		Reviews:      reviews,
		Count:        len(p.reviews),
		Average:      avg,
		AverageStars: Stars(avg, AveragePrecision),
		Loaded:       p.loaded,
		Description:  p.description,
		Submitting:   p.submitting,
	}
	if p.userRating != nil {
		r := *p.userRating
		v.UserRating = &r
		v.UserStars = Stars(r, RatingPrecision)
	} else {
		v.UserStars = Stars(0, RatingPrecision)
	}
	v.Err = p.err
	return v
}
