// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyError = "error"

	// Review page
	KeyPageTitle          = "reviews.page_title"
	KeyNoRatings          = "reviews.no_ratings"
	KeyReviewCount        = "reviews.count"
	KeyListTitle          = "reviews.list_title"
	KeyNoReviews          = "reviews.empty"
	KeyPlaceholder        = "reviews.placeholder"
	KeySubmit             = "reviews.submit"
	KeySubmitting         = "reviews.submitting"
	KeyYourRating         = "reviews.your_rating"
	KeyClearRating        = "reviews.clear_rating"
	KeyReviewSubmitted    = "reviews.submitted"
	KeyDuplicateSubmit    = "reviews.duplicate_submit"
	KeyLoadFailed         = "reviews.load_failed"
	KeySubmitFailed       = "reviews.submit_failed"
	KeyServiceUnavailable = "reviews.service_unavailable"
	KeyLoading            = "reviews.loading"
	KeyTUIHelp            = "reviews.tui_help"
	KeySwitchProduct      = "reviews.switch_product"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyInvalidProductID  = "product.invalid_id"
)
