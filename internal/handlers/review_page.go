// internal/handlers/review_page.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/models"
	"github.com/javajoker/review-page/internal/reviewpage"
	"github.com/javajoker/review-page/internal/services"
	"github.com/javajoker/review-page/internal/utils"
)

type ReviewPageHandler struct {
	source reviewpage.ReviewSource
	guard  *services.SubmissionGuard
}

func NewReviewPageHandler(source reviewpage.ReviewSource, guard *services.SubmissionGuard) *ReviewPageHandler {
	return &ReviewPageHandler{
		source: source,
		guard:  guard,
	}
}

type pageData struct {
	Lang   string
	View   reviewpage.View
	Token  string
	Notice string
}

type errorData struct {
	Lang    string
	Message string
}

// GET /reviews/:productId
func (h *ReviewPageHandler) ShowPage(c *gin.Context) {
	productID, ok := h.productID(c, true)
	if !ok {
		return
	}

	page := h.mount(c, productID)
	h.render(c, http.StatusOK, page.View(), "")
}

// POST /reviews/:productId
func (h *ReviewPageHandler) SubmitReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := h.productID(c, true)
	if !ok {
		return
	}

	var form models.ReviewSubmission
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, http.StatusBadRequest, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}
	if err := utils.ValidateStruct(&form); err != nil {
		h.renderError(c, http.StatusBadRequest, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}
	rating, err := form.SelectedRating()
	if err != nil {
		h.renderError(c, http.StatusBadRequest, i18n.T(lang, i18n.KeyValidationInvalid, "rating"))
		return
	}

	page := h.mount(c, productID)
	page.SetRating(rating)
	page.SetDescription(form.Description)

	// Without a rating the submit is a no-op; the typed text is kept
	if rating == nil {
		h.render(c, http.StatusOK, page.View(), "")
		return
	}

	if !h.guard.Redeem(form.Token) {
		page.SetRating(nil)
		page.SetDescription("")
		h.render(c, http.StatusOK, page.View(), i18n.T(lang, i18n.KeyDuplicateSubmit))
		return
	}

	submitted, err := page.Submit(c.Request.Context())
	if !submitted {
		h.guard.Release(form.Token)
		c.Error(err)
		h.render(c, submitStatus(err), page.View(), "")
		return
	}
	if err != nil {
		// posted, but the reload failed; the view carries the error
		c.Error(err)
	}

	h.render(c, http.StatusOK, page.View(), i18n.T(lang, i18n.KeyReviewSubmitted))
}

// mount creates the page for one request and runs its initial load. A load
// failure is part of the view.
func (h *ReviewPageHandler) mount(c *gin.Context, productID string) *reviewpage.Page {
	page := reviewpage.New(productID, h.source, reviewpage.WithLogger(requestLogger(c)))
	if err := page.Load(c.Request.Context()); err != nil {
		c.Error(err)
	}
	return page
}

func (h *ReviewPageHandler) productID(c *gin.Context, html bool) (string, bool) {
	productID := c.Param("productId")
	if err := utils.ValidateVar(productID, "product_id"); err != nil {
		message := i18n.T(utils.GetLangFromContext(c), i18n.KeyInvalidProductID)
		if html {
			h.renderError(c, http.StatusBadRequest, message)
		} else {
			utils.BadRequestResponse(c, message, nil)
		}
		return "", false
	}
	return productID, true
}

func (h *ReviewPageHandler) render(c *gin.Context, status int, view reviewpage.View, notice string) {
	c.HTML(status, "review_page.html", pageData{
		Lang:   utils.GetLangFromContext(c),
		View:   view,
		Token:  h.guard.Issue(),
		Notice: notice,
	})
}

func (h *ReviewPageHandler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", errorData{
		Lang:    utils.GetLangFromContext(c),
		Message: message,
	})
}

func submitStatus(err error) int {
	var apiErr *services.APIError
	switch {
	case reviewpage.IsUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr) && apiErr.IsClientError():
		return http.StatusUnprocessableEntity
	case errors.Is(err, reviewpage.ErrSubmitInFlight):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func requestLogger(c *gin.Context) logrus.FieldLogger {
	return logrus.WithField("request_id", utils.GetRequestIDFromContext(c))
}
