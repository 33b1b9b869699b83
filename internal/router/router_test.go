package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/review-page/internal/config"
	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/models"
	"github.com/javajoker/review-page/internal/services"
)

// fakeReviewAPI is an in-memory stand-in for the external /api/reviews.
type fakeReviewAPI struct {
	mu      sync.Mutex
	reviews []models.Review
	gets    []string
	posts   []models.CreateReviewRequest
}

func (f *fakeReviewAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		productID := r.URL.Query().Get("productId")
		f.gets = append(f.gets, productID)
		out := []models.Review{}
		for _, rev := range f.reviews {
			if rev.ProductID == productID {
				out = append(out, rev)
			}
		}
		json.NewEncoder(w).Encode(out)
	case http.MethodPost:
		var req models.CreateReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.posts = append(f.posts, req)
		f.reviews = append(f.reviews, models.Review{
			ID:          "r" + string(rune('a'+len(f.reviews))),
			ProductID:   req.ProductID,
			Rating:      req.Rating,
			Description: req.Description,
		})
		w.WriteHeader(http.StatusCreated)
	}
}

func setupRouter(t *testing.T, api *fakeReviewAPI) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize())

	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Environment: "test",
		ReviewAPI: config.ReviewAPIConfig{
			BaseURL:             server.URL,
			Timeout:             5,
			BreakerEnabled:      true,
			BreakerTimeout:      30,
			BreakerMinRequests:  5,
			BreakerFailureRatio: 0.5,
		},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"*"}},
		I18n:       config.I18nConfig{DefaultLocale: "en"},
		Metrics:    config.MetricsConfig{Enabled: true},
		Submission: config.SubmissionConfig{TokenTTL: 30},
	}

	r, err := Initialize(cfg, services.NewReviewAPIClient(cfg.ReviewAPI))
	require.NoError(t, err)
	return r
}

func TestHealthAndMetrics(t *testing.T) {
	r := setupRouter(t, &fakeReviewAPI{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews/p1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "review_api_requests_total")
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/reviews/:productId",status="200"}`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/reviews.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewPageFlow(t *testing.T) {
	api := &fakeReviewAPI{reviews: []models.Review{
		{ID: "x1", ProductID: "p1", Rating: 4},
		{ID: "x2", ProductID: "p1", Rating: 2},
		{ID: "x3", ProductID: "p2", Rating: 5},
	}}
	r := setupRouter(t, api)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews/p1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "3.0 (2 reviews)")

	form := url.Values{"rating": {"5"}, "description": {"Great"}}
	req := httptest.NewRequest(http.MethodPost, "/reviews/p1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "3.7 (3 reviews)")

	assert.Equal(t, []models.CreateReviewRequest{{ProductID: "p1", Rating: 5, Description: "Great"}}, api.posts)
	// page view, mount load of the submit request, reload after the post
	assert.Equal(t, []string{"p1", "p1", "p1"}, api.gets)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages/p2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"averageLabel":"5.0"`)
}
