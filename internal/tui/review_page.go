// Package tui renders a review page in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/reviewpage"
	"github.com/javajoker/review-page/internal/utils"
)

type focusArea int

const (
	focusRating focusArea = iota
	focusDescription
)

type reviewsLoadedMsg struct {
	productID string
	err       error
}

type reviewSubmittedMsg struct {
	productID string
	submitted bool
	err       error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5C542"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	focusedBoxStyle = boxStyle.
			BorderForeground(lipgloss.Color("#5B8DEF"))
)

// Model is a bubbletea model driving one reviewpage.Page.
type Model struct {
	ctx  context.Context
	page *reviewpage.Page
	lang string

	input  textarea.Model
	focus  focusArea
	notice string
	width  int

	// product switch prompt
	prompt    textinput.Model
	prompting bool
	promptErr string
}

// New builds the terminal page. The context bounds every load and submit.
func New(ctx context.Context, page *reviewpage.Page, lang string) Model {
	input := textarea.New()
	input.Placeholder = i18n.T(lang, i18n.KeyPlaceholder)
	input.ShowLineNumbers = false
	input.SetHeight(4)
	input.SetWidth(60)
	input.SetValue(page.View().Description)

	prompt := textinput.New()
	prompt.Prompt = i18n.T(lang, i18n.KeySwitchProduct) + ": "
	prompt.CharLimit = 128

	return Model{
		ctx:    ctx,
		page:   page,
		lang:   lang,
		input:  input,
		focus:  focusRating,
		prompt: prompt,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	ctx, page := m.ctx, m.page
	return func() tea.Msg {
		return reviewsLoadedMsg{productID: page.ProductID(), err: page.Load(ctx)}
	}
}

// switchProduct points the page at productID; the page reloads once.
func (m Model) switchProduct(productID string) tea.Cmd {
	ctx, page := m.ctx, m.page
	return func() tea.Msg {
		return reviewsLoadedMsg{productID: productID, err: page.SetProduct(ctx, productID)}
	}
}

func (m Model) submit() tea.Cmd {
	ctx, page := m.ctx, m.page
	return func() tea.Msg {
		productID := page.ProductID()
		submitted, err := page.Submit(ctx)
		return reviewSubmittedMsg{productID: productID, submitted: submitted, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 4; w > 20 {
			m.input.SetWidth(w)
		}
		return m, nil

	case reviewsLoadedMsg:
		// The page already holds the outcome; stale loads changed nothing.
		return m, nil

	case reviewSubmittedMsg:
		if msg.submitted && msg.productID == m.page.ProductID() {
			m.input.Reset()
			m.notice = i18n.T(m.lang, i18n.KeyReviewSubmitted)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	if m.focus == focusDescription {
		return m.updateInput(msg)
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		productID := strings.TrimSpace(m.prompt.Value())
		if err := utils.ValidateVar(productID, "product_id"); err != nil {
			m.promptErr = i18n.T(m.lang, i18n.KeyInvalidProductID)
			return m, nil
		}
		m.closePrompt()
		if productID == m.page.ProductID() {
			return m, nil
		}
		m.notice = ""
		return m, m.switchProduct(productID)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.promptErr = ""
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.promptErr = ""
	m.prompt.Reset()
	m.prompt.Blur()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		m.page.SetDescription(m.input.Value())
		if !m.page.View().HasRating() {
			return m, nil
		}
		m.notice = ""
		return m, m.submit()
	case "ctrl+r":
		m.notice = ""
		return m, m.load()
	case "tab", "shift+tab":
		if m.focus == focusRating {
			m.focus = focusDescription
			return m, m.input.Focus()
		}
		m.focus = focusRating
		m.input.Blur()
		return m, nil
	case "esc":
		if m.focus == focusDescription {
			m.focus = focusRating
			m.input.Blur()
			return m, nil
		}
		return m, tea.Quit
	}

	if m.focus == focusDescription {
		return m.updateInput(msg)
	}

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "p":
		m.prompting = true
		m.prompt.SetValue(m.page.ProductID())
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()
	case "1", "2", "3", "4", "5":
		m.setRating(float64(key[0] - '0'))
	case "0", "backspace", "delete":
		m.page.SetRating(nil)
	case "left", "h":
		if r := m.page.View().UserRating; r != nil && *r > 1 {
			m.setRating(*r - 1)
		}
	case "right", "l":
		r := m.page.View().UserRating
		switch {
		case r == nil:
			m.setRating(1)
		case *r < reviewpage.MaxStars:
			m.setRating(*r + 1)
		}
	}
	return m, nil
}

func (m *Model) setRating(v float64) {
	m.notice = ""
	m.page.SetRating(&v)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.page.SetDescription(m.input.Value())
	return m, cmd
}

func (m Model) View() string {
	v := m.page.View()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", i18n.T(m.lang, i18n.KeyPageTitle), v.ProductID)))
	b.WriteString("\n")
	b.WriteString(starStyle.Render(v.AverageStars.Glyphs()))
	b.WriteString(" ")
	b.WriteString(v.AverageLabel(m.lang))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render(v.CountLabel(m.lang)))
	b.WriteString("\n\n")

	if msg := v.ErrorMessage(m.lang); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.prompting {
		b.WriteString(focusedBoxStyle.Render(m.prompt.View()))
		b.WriteString("\n")
		if m.promptErr != "" {
			b.WriteString(errorStyle.Render(m.promptErr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderForm(v))
	b.WriteString("\n\n")
	b.WriteString(m.renderList(v))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(i18n.T(m.lang, i18n.KeyTUIHelp)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderForm(v reviewpage.View) string {
	rating := fmt.Sprintf("%s: %s", i18n.T(m.lang, i18n.KeyYourRating), starStyle.Render(v.UserStars.Glyphs()))
	ratingBox, inputBox := boxStyle, boxStyle
	if m.focus == focusRating {
		ratingBox = focusedBoxStyle
	} else {
		inputBox = focusedBoxStyle
	}

	button := i18n.T(m.lang, i18n.KeySubmit)
	if v.Submitting {
		button = i18n.T(m.lang, i18n.KeySubmitting)
	}
	if !v.HasRating() || v.Submitting {
		button = mutedStyle.Render("[ " + button + " ]")
	} else {
		button = titleStyle.Render("[ " + button + " ]")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ratingBox.Render(rating),
		inputBox.Render(m.input.View()),
		button,
	)
}

func (m Model) renderList(v reviewpage.View) string {
	var lines []string
	lines = append(lines, titleStyle.Render(i18n.T(m.lang, i18n.KeyListTitle)))

	switch {
	case !v.Loaded && v.Err == nil:
		lines = append(lines, mutedStyle.Render(i18n.T(m.lang, i18n.KeyLoading)))
	case v.Empty():
		lines = append(lines, mutedStyle.Render(i18n.T(m.lang, i18n.KeyNoReviews)))
	default:
		for _, r := range v.Reviews {
			line := starStyle.Render(r.Stars.Glyphs())
			if r.Description != "" {
				line += " " + r.Description
			}
			lines = append(lines, line)
		}
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// Run starts the terminal program and blocks until the user quits.
func Run(ctx context.Context, page *reviewpage.Page, lang string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(ctx, page, lang), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
