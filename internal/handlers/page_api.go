// internal/handlers/page_api.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/models"
	"github.com/javajoker/review-page/internal/reviewpage"
	"github.com/javajoker/review-page/internal/utils"
)

type SubmitReviewRequest struct {
	Rating      *float64 `json:"rating"`
	Description string   `json:"description"`
	Token       string   `json:"token" validate:"omitempty,uuid"`
}

// PageResponse is the JSON rendition of the review page.
type PageResponse struct {
	ProductID    string          `json:"productId"`
	Reviews      []models.Review `json:"reviews"`
	Count        int             `json:"count"`
	Average      float64         `json:"average"`
	AverageLabel string          `json:"averageLabel"`
	CountLabel   string          `json:"countLabel"`
	Empty        bool            `json:"empty"`
	Submitted    bool            `json:"submitted,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// GET /api/pages/:productId
func (h *ReviewPageHandler) GetPage(c *gin.Context) {
	productID, ok := h.productID(c, false)
	if !ok {
		return
	}

	page := reviewpage.New(productID, h.source, reviewpage.WithLogger(requestLogger(c)))
	if err := page.Load(c.Request.Context()); err != nil {
		h.pageError(c, err, page.View())
		return
	}

	utils.SuccessResponse(c, newPageResponse(page.View(), utils.GetLangFromContext(c)))
}

// POST /api/pages/:productId/reviews
func (h *ReviewPageHandler) PostReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := h.productID(c, false)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	page := reviewpage.New(productID, h.source, reviewpage.WithLogger(requestLogger(c)))
	page.SetRating(req.Rating)
	page.SetDescription(req.Description)

	// no rating selected: nothing is sent, answer with the current list
	if req.Rating == nil {
		if err := page.Load(c.Request.Context()); err != nil {
			h.pageError(c, err, page.View())
			return
		}
		utils.SuccessResponse(c, newPageResponse(page.View(), lang))
		return
	}

	if !h.guard.Redeem(req.Token) {
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyDuplicateSubmit))
		return
	}

	submitted, err := page.Submit(c.Request.Context())
	if !submitted {
		h.guard.Release(req.Token)
		h.pageError(c, err, page.View())
		return
	}

	view := page.View()
	resp := newPageResponse(view, lang)
	resp.Submitted = true
	if err != nil {
		// posted, but the reload failed
		c.Error(err)
		resp.Error = view.ErrorMessage(lang)
	}
	utils.SuccessResponse(c, resp)
}

func (h *ReviewPageHandler) pageError(c *gin.Context, err error, view reviewpage.View) {
	c.Error(err)
	message := view.ErrorMessage(utils.GetLangFromContext(c))
	switch status := submitStatus(err); status {
	case http.StatusServiceUnavailable:
		utils.ServiceUnavailableResponse(c, message)
	case http.StatusUnprocessableEntity:
		utils.ErrorResponse(c, status, "REJECTED", message, err.Error())
	case http.StatusConflict:
		utils.ConflictResponse(c, message)
	default:
		utils.BadGatewayResponse(c, message)
	}
}

func newPageResponse(v reviewpage.View, lang string) PageResponse {
	reviews := make([]models.Review, 0, len(v.Reviews))
	for _, r := range v.Reviews {
		reviews = append(reviews, r.Review)
	}
	return PageResponse{
		ProductID:    v.ProductID,
		Reviews:      reviews,
		Count:        v.Count,
		Average:      v.Average,
		AverageLabel: v.AverageLabel(lang),
		CountLabel:   v.CountLabel(lang),
		Empty:        v.Empty(),
	}
}
