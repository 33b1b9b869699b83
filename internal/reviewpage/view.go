package reviewpage

import (
	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/models"
)

// ReviewView is one rendered entry of the review list.
type ReviewView struct {
	models.Review
	Stars StarDisplay
}

// View is an immutable snapshot of a Page.
type View struct {
	ProductID    string
	Reviews      []ReviewView
	Count        int
	Average      float64
	AverageStars StarDisplay
	Loaded       bool

	UserRating  *float64
	UserStars   StarDisplay
	Description string
	Submitting  bool

	Err *OperationError
}

// Empty reports whether there are no reviews to list.
func (v View) Empty() bool {
	return v.Count == 0
}

// AverageLabel is the average with one decimal, or the "no ratings" label.
func (v View) AverageLabel(lang string) string {
	if v.Empty() {
		return i18n.T(lang, i18n.KeyNoRatings)
	}
	return FormatAverage(v.Average)
}

func (v View) CountLabel(lang string) string {
	return i18n.T(lang, i18n.KeyReviewCount, v.Count)
}

// HasRating reports whether the form has a selected rating.
func (v View) HasRating() bool {
	return v.UserRating != nil
}

// ErrorMessage is the translated, user-facing text for the error state.
func (v View) ErrorMessage(lang string) string {
	if v.Err == nil {
		return ""
	}
	if IsUnavailable(v.Err) {
		return i18n.T(lang, i18n.KeyServiceUnavailable)
	}
	if v.Err.Op == OpSubmit {
		return i18n.T(lang, i18n.KeySubmitFailed)
	}
	return i18n.T(lang, i18n.KeyLoadFailed)
}
