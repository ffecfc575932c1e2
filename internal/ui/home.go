package ui

import (
	"fmt"
	"strings"

	"barblend/internal/model"
	"barblend/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// HomeModel is the idle screen: a prompt plus random suggestions.
type HomeModel struct {
	suggestions []model.Drink
	loading     bool
	cursor      int
}

// NewHomeModel creates a home screen waiting for suggestions.
func NewHomeModel() *HomeModel {
	return &HomeModel{loading: true}
}

// SetSuggestions installs loaded suggestions.
func (m *HomeModel) SetSuggestions(drinks []model.Drink) {
	m.suggestions = drinks
	m.loading = false
	m.cursor = 0
}

// Loading reports whether suggestions are still being fetched.
func (m *HomeModel) Loading() bool {
	return m.loading
}

// Selected returns the suggestion under the cursor.
func (m *HomeModel) Selected() (model.Drink, bool) {
	if m.cursor < 0 || m.cursor >= len(m.suggestions) {
		return model.Drink{}, false
	}
	return m.suggestions[m.cursor], true
}

func (m *HomeModel) MoveDown() {
	if m.cursor < len(m.suggestions)-1 {
		m.cursor++
	}
}

func (m *HomeModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *HomeModel) JumpToTop() {
	m.cursor = 0
}

func (m *HomeModel) JumpToBottom() {
	if len(m.suggestions) > 0 {
		m.cursor = len(m.suggestions) - 1
	}
}

// View renders the home screen. spin is the current spinner frame.
func (m *HomeModel) View(width int, spin string) string {
	var sections []string

	sections = append(sections, EmptyStateStyle.Render(
		"Type a cocktail name, or switch to ingredient mode to see what you can mix."))

	sections = append(sections, LabelStyle.Render("  You might also like"))

	switch {
	case m.loading:
		sections = append(sections, HelpDescStyle.Render(fmt.Sprintf("  %s mixing suggestions...", spin)))
	case len(m.suggestions) == 0:
		sections = append(sections, HelpDescStyle.Render("  No suggestions right now. Press r for a random drink."))
	default:
		var rows []string
		for i, d := range m.suggestions {
			rows = append(rows, renderDrinkRow(d, i == m.cursor, width))
		}
		sections = append(sections, strings.Join(rows, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDrinkRow renders one list row: name plus a short ingredient summary.
func renderDrinkRow(d model.Drink, selected bool, width int) string {
	summary := strings.Join(d.Ingredients, ", ")
	if summary == "" {
		summary = d.Category
	}
	name := util.TruncateString(d.Name, 30)
	line := fmt.Sprintf("  %-30s  %s", name, HelpDescStyle.Render(util.TruncateString(summary, max(width-40, 10))))
	if selected {
		line = fmt.Sprintf("  %-30s  %s", name, util.TruncateString(summary, max(width-40, 10)))
		return SelectedRowStyle.Width(width).Render(line)
	}
	return NormalRowStyle.Render(line)
}
