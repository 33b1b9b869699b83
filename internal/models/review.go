// internal/models/review.go
package models

import "strconv"

// Review is a read-only copy of a review owned by the external review API.
type Review struct {
	ID          string  `json:"id" validate:"required"`
	ProductID   string  `json:"productId"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

// CreateReviewRequest is the body of POST /api/reviews.
type CreateReviewRequest struct {
	ProductID   string  `json:"productId" validate:"required"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

// ReviewSubmission is the form posted by the review page. Rating stays a raw
// string so an untouched star input can be told apart from a zero rating.
type ReviewSubmission struct {
	Rating      string `form:"rating" validate:"omitempty,numeric"`
	Description string `form:"description"`
	Token       string `form:"token" validate:"omitempty,uuid"`
}

// SelectedRating returns nil when no rating was chosen.
func (s ReviewSubmission) SelectedRating() (*float64, error) {
	if s.Rating == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s.Rating, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
