package ui

import (
	"strings"

	"barblend/internal/db"
	"barblend/internal/model"
	"barblend/internal/util"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxRecallMatches = 3

// SearchBarModel is the query input with its mode toggle and past-search recall.
type SearchBarModel struct {
	input   textinput.Model
	mode    model.SearchMode
	terms   []string
	matches []string
}

// NewSearchBarModel creates a search bar in the given mode.
func NewSearchBarModel(mode model.SearchMode) *SearchBarModel {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 100

	m := &SearchBarModel{input: input}
	m.SetMode(mode)
	return m
}

// Focus gives the input keyboard focus.
func (m *SearchBarModel) Focus() tea.Cmd {
	cmd := m.input.Focus()
	m.refreshMatches()
	return cmd
}

// Blur removes keyboard focus.
func (m *SearchBarModel) Blur() {
	m.input.Blur()
	m.matches = nil
}

// Focused reports whether the input has focus.
func (m *SearchBarModel) Focused() bool {
	return m.input.Focused()
}

// Value returns the typed query.
func (m *SearchBarModel) Value() string {
	return m.input.Value()
}

// SetValue replaces the typed query.
func (m *SearchBarModel) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	m.refreshMatches()
}

// Mode returns the selected search mode.
func (m *SearchBarModel) Mode() model.SearchMode {
	return m.mode
}

// SetMode selects the search mode. Past terms belong to a mode, so they are
// dropped until reloaded.
func (m *SearchBarModel) SetMode(mode model.SearchMode) {
	m.mode = mode
	m.terms = nil
	m.matches = nil
	if mode == model.ModeByIngredient {
		m.input.Placeholder = "Search by ingredient (e.g. gin)"
	} else {
		m.input.Placeholder = "Search by name (e.g. margarita)"
	}
}

// SetTerms installs past search terms for recall.
func (m *SearchBarModel) SetTerms(terms []string) {
	m.terms = terms
	m.refreshMatches()
}

// Matches returns past terms matching the current query, best first.
func (m *SearchBarModel) Matches() []string {
	return m.matches
}

// Recall replaces the query with the best past match. It reports false when
// nothing matches.
func (m *SearchBarModel) Recall() bool {
	if len(m.matches) == 0 {
		return false
	}
	m.SetValue(m.matches[0])
	return true
}

// Update forwards input messages to the text input.
func (m *SearchBarModel) Update(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refreshMatches()
	}
	return cmd
}

func (m *SearchBarModel) refreshMatches() {
	if !m.input.Focused() || strings.TrimSpace(m.input.Value()) == "" {
		m.matches = nil
		return
	}
	m.matches = db.MatchTerms(m.input.Value(), m.terms, maxRecallMatches)
}

// View renders the mode toggle, input and recall hints.
func (m *SearchBarModel) View(width int) string {
	byName := ModeInactiveStyle.Render(util.FormatMode(model.ModeByName))
	byIngredient := ModeInactiveStyle.Render(util.FormatMode(model.ModeByIngredient))
	if m.mode == model.ModeByIngredient {
		byIngredient = ModeActiveStyle.Render(util.FormatMode(model.ModeByIngredient))
	} else {
		byName = ModeActiveStyle.Render(util.FormatMode(model.ModeByName))
	}
	toggle := lipgloss.JoinHorizontal(lipgloss.Left, byName, " ", byIngredient)

	style := BorderStyle
	if m.input.Focused() {
		style = ActiveBorderStyle
	}
	m.input.Width = max(width-lipgloss.Width(toggle)-10, 10)
	bar := style.Width(width - 2).Render(lipgloss.JoinHorizontal(lipgloss.Center, toggle, "  ", m.input.View()))

	if len(m.matches) == 0 {
		return bar
	}
	hint := HelpDescStyle.Render("  recent: ") + HelpKeyStyle.Render(strings.Join(m.matches, ", ")) +
		HelpDescStyle.Render("  (ctrl+p)")
	return lipgloss.JoinVertical(lipgloss.Left, bar, hint)
}
