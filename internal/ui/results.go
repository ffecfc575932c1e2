package ui

import (
	"strings"

	"barblend/internal/model"
	"barblend/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// ResultsModel is the results list. Only the first shown drinks are
// displayed; ShowMore reveals another page.
type ResultsModel struct {
	drinks   []model.Drink
	shown    int
	pageSize int
	cursor   int
}

// NewResultsModel creates a results list revealing pageSize drinks at a time.
func NewResultsModel(drinks []model.Drink, pageSize int) *ResultsModel {
	if pageSize < 1 {
		pageSize = 1
	}
	return &ResultsModel{
		drinks:   drinks,
		shown:    min(pageSize, len(drinks)),
		pageSize: pageSize,
	}
}

// Len returns the total number of results.
func (m *ResultsModel) Len() int {
	return len(m.drinks)
}

// Shown returns how many results are revealed.
func (m *ResultsModel) Shown() int {
	return m.shown
}

// Cursor returns the index of the selected result.
func (m *ResultsModel) Cursor() int {
	return m.cursor
}

// HasMore reports whether ShowMore would reveal anything.
func (m *ResultsModel) HasMore() bool {
	return m.shown < len(m.drinks)
}

// ShowMore reveals the next page and reports whether anything changed.
func (m *ResultsModel) ShowMore() bool {
	if !m.HasMore() {
		return false
	}
	m.shown = min(m.shown+m.pageSize, len(m.drinks))
	return true
}

func (m *ResultsModel) MoveDown() {
	if m.cursor < m.shown-1 {
		m.cursor++
	}
}

func (m *ResultsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *ResultsModel) JumpToTop() {
	m.cursor = 0
}

func (m *ResultsModel) JumpToBottom() {
	if m.shown > 0 {
		m.cursor = m.shown - 1
	}
}

// View renders the revealed results.
func (m *ResultsModel) View(width, height int) string {
	title := LabelStyle.Render("  " + util.FormatCount(len(m.drinks), "drink"))

	start := 0
	visible := max(height-3, 1)
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, m.shown)

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, renderDrinkRow(m.drinks[i], i == m.cursor, width))
	}

	if len(rows) == 0 {
		rows = append(rows, EmptyStateStyle.Render("  No drinks to show."))
	}

	footer := HelpDescStyle.Render("  End of results")
	if m.HasMore() {
		footer = HelpDescStyle.Render("  Showing ") + HelpKeyStyle.Render(util.FormatCount(m.shown, "drink")) +
			HelpDescStyle.Render(" · press + to show more")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), footer)
}
