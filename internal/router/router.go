// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/javajoker/review-page/internal/config"
	"github.com/javajoker/review-page/internal/handlers"
	"github.com/javajoker/review-page/internal/middleware"
	"github.com/javajoker/review-page/internal/reviewpage"
	"github.com/javajoker/review-page/internal/services"
	"github.com/javajoker/review-page/internal/templates"
)

func Initialize(cfg *config.Config, source reviewpage.ReviewSource) (*gin.Engine, error) {
	// Initialize services
	submissionGuard := services.NewSubmissionGuard(cfg.Submission.TokenTTLDuration())

	// Initialize handlers
	reviewPageHandler := handlers.NewReviewPageHandler(source, submissionGuard)

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	if cfg.Metrics.Enabled {
		r.Use(middleware.PrometheusMetrics())
	}
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.StaticFileFS("/static/reviews.css", "reviews.css", http.FS(templates.Static()))

	// Review page
	pages := r.Group("/reviews")
	{
		pages.GET("/:productId", reviewPageHandler.ShowPage)
		pages.POST("/:productId", reviewPageHandler.SubmitReview)
	}

	// JSON rendition of the page
	api := r.Group("/api/pages")
	{
		api.GET("/:productId", reviewPageHandler.GetPage)
		api.POST("/:productId/reviews", reviewPageHandler.PostReview)
	}

	return r, nil
}
