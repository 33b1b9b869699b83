package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/models"
	"github.com/javajoker/review-page/internal/reviewpage"
)

type stubSource struct {
	mu        sync.Mutex
	reviews   []models.Review
	listErr   error
	createErr error
	lists     int
	listed    []string
	created   []models.CreateReviewRequest
}

func (s *stubSource) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	s.listed = append(s.listed, productID)
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Review
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubSource) CreateReview(ctx context.Context, req models.CreateReviewRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, req)
	s.reviews = append(s.reviews, models.Review{
		ID:          "new",
		ProductID:   req.ProductID,
		Rating:      req.Rating,
		Description: req.Description,
	})
	return nil
}

func TestMain(m *testing.M) {
	if err := i18n.Initialize(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, source *stubSource) Model {
	t.Helper()
	page := reviewpage.New("p1", source)
	model := New(context.Background(), page, "en")
	return runCommands(t, model, model.Init())
}

// runCommands executes cmd and feeds each resulting message back into the
// model until no command remains.
func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) Model {
	t.Helper()
	m, ok := model.(Model)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		next, nextCmd := m.Update(msg)
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("unexpected model type: %T", next)
		}
		cmd = nextCmd
	}
	return m
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type: %T", next)
	}
	switch key.Type {
	case tea.KeyCtrlS, tea.KeyCtrlR:
		return runCommands(t, model, cmd)
	case tea.KeyEnter:
		if model.focus != focusDescription {
			return runCommands(t, model, cmd)
		}
	}
	// other keys only return cursor blink commands
	return model
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitLoadsReviews(t *testing.T) {
	source := &stubSource{reviews: []models.Review{
		{ID: "a", ProductID: "p1", Rating: 4, Description: "Solid"},
		{ID: "b", ProductID: "p1", Rating: 5},
	}}
	m := newTestModel(t, source)

	if source.lists != 1 {
		t.Fatalf("expected one load, got %d", source.lists)
	}
	out := m.View()
	for _, want := range []string{"4.5", "(2 reviews)", "Solid"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, out)
		}
	}
}

func TestEmptyListShowsPlaceholders(t *testing.T) {
	m := newTestModel(t, &stubSource{})

	out := m.View()
	if !strings.Contains(out, "No ratings yet") {
		t.Fatalf("expected no-ratings label:\n%s", out)
	}
	if !strings.Contains(out, "No reviews for this product yet.") {
		t.Fatalf("expected empty-list text:\n%s", out)
	}
}

func TestLoadFailureShowsError(t *testing.T) {
	m := newTestModel(t, &stubSource{listErr: errors.New("boom")})

	if out := m.View(); !strings.Contains(out, "Could not load reviews") {
		t.Fatalf("expected load error in view:\n%s", out)
	}
}

func TestRatingKeys(t *testing.T) {
	m := newTestModel(t, &stubSource{})

	m = press(t, m, runes("3"))
	if r := m.page.View().UserRating; r == nil || *r != 3 {
		t.Fatalf("expected rating 3, got %v", r)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if r := m.page.View().UserRating; r == nil || *r != 5 {
		t.Fatalf("expected rating capped at 5, got %v", r)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if r := m.page.View().UserRating; r == nil || *r != 4 {
		t.Fatalf("expected rating 4, got %v", r)
	}
	m = press(t, m, runes("0"))
	if r := m.page.View().UserRating; r != nil {
		t.Fatalf("expected cleared rating, got %v", *r)
	}
}

func TestSubmitWithoutRatingDoesNothing(t *testing.T) {
	source := &stubSource{}
	m := newTestModel(t, source)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(source.created) != 0 {
		t.Fatalf("expected no submission, got %d", len(source.created))
	}
	if source.lists != 1 {
		t.Fatalf("expected no reload, got %d loads", source.lists)
	}
}

func TestSubmitPostsAndReloads(t *testing.T) {
	source := &stubSource{}
	m := newTestModel(t, source)

	m = press(t, m, runes("4"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("Great"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(source.created) != 1 {
		t.Fatalf("expected one submission, got %d", len(source.created))
	}
	got := source.created[0]
	if got.ProductID != "p1" || got.Rating != 4 || got.Description != "Great" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if source.lists != 2 {
		t.Fatalf("expected exactly one reload, got %d loads", source.lists)
	}

	v := m.page.View()
	if v.UserRating != nil || v.Description != "" {
		t.Fatalf("expected cleared form, got rating=%v description=%q", v.UserRating, v.Description)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected cleared textarea, got %q", m.input.Value())
	}
	out := m.View()
	if !strings.Contains(out, "Thanks! Your review was submitted.") {
		t.Fatalf("expected submitted notice:\n%s", out)
	}
	if !strings.Contains(out, "(1 reviews)") {
		t.Fatalf("expected reloaded list:\n%s", out)
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	source := &stubSource{createErr: errors.New("down")}
	m := newTestModel(t, source)

	m = press(t, m, runes("2"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("meh"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	v := m.page.View()
	if v.UserRating == nil || *v.UserRating != 2 {
		t.Fatalf("expected rating kept, got %v", v.UserRating)
	}
	if m.input.Value() != "meh" {
		t.Fatalf("expected description kept, got %q", m.input.Value())
	}
	if source.lists != 1 {
		t.Fatalf("expected no reload after failure, got %d loads", source.lists)
	}
	if out := m.View(); !strings.Contains(out, "Could not submit your review") {
		t.Fatalf("expected submit error:\n%s", out)
	}
}

func TestDigitsTypeIntoDescriptionWhenFocused(t *testing.T) {
	m := newTestModel(t, &stubSource{})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("5"))

	if r := m.page.View().UserRating; r != nil {
		t.Fatalf("expected no rating, got %v", *r)
	}
	if m.input.Value() != "5" {
		t.Fatalf("expected digit in description, got %q", m.input.Value())
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &stubSource{})

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestSwitchProductLoadsNewProduct(t *testing.T) {
	source := &stubSource{reviews: []models.Review{
		{ID: "a", ProductID: "p1", Rating: 4, Description: "First"},
		{ID: "b", ProductID: "p2", Rating: 1, Description: "Second"},
	}}
	m := newTestModel(t, source)

	m = press(t, m, runes("p"))
	if !m.prompting {
		t.Fatalf("expected product prompt")
	}
	for i := 0; i < len("p1"); i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = press(t, m, runes("p2"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.prompting {
		t.Fatalf("expected prompt to close")
	}
	if got := m.page.ProductID(); got != "p2" {
		t.Fatalf("product = %q, want p2", got)
	}
	if len(source.listed) != 2 || source.listed[1] != "p2" {
		t.Fatalf("expected exactly one load for p2, got %v", source.listed)
	}
	out := m.View()
	if !strings.Contains(out, "Second") || strings.Contains(out, "First") {
		t.Fatalf("expected only p2 reviews:\n%s", out)
	}
}

func TestSwitchProductRejectsInvalidID(t *testing.T) {
	source := &stubSource{}
	m := newTestModel(t, source)

	m = press(t, m, runes("p"))
	m = press(t, m, runes("/x"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.prompting {
		t.Fatalf("expected prompt to stay open")
	}
	if out := m.View(); !strings.Contains(out, "Invalid product ID") {
		t.Fatalf("expected invalid id message:\n%s", out)
	}
	if source.lists != 1 {
		t.Fatalf("expected no load, got %d", source.lists)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.prompting || m.page.ProductID() != "p1" {
		t.Fatalf("expected prompt closed on p1, got prompting=%v product=%q", m.prompting, m.page.ProductID())
	}
}
