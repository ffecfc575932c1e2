package ui

import (
	"strings"

	"barblend/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(view model.ViewState, mode model.Mode, hasSearched bool, width int) string {
	if mode == model.ModeInsert {
		return renderSearchBarHelp(width)
	}

	switch view {
	case model.ViewResultsList:
		return renderResultsHelp(width)
	case model.ViewDetail:
		return renderDetailHelp(width)
	default:
		return renderHomeHelp(hasSearched, width)
	}
}

func renderHomeHelp(hasSearched bool, width int) string {
	keys := []string{
		helpKey("/", "search"),
		helpKey("m", "name/ingredient"),
		helpKey("j/k", "navigate"),
		helpKey("enter", "open"),
		helpKey("r", "random"),
	}
	if hasSearched {
		keys = append(keys, helpKey("R", "reset"))
	}
	keys = append(keys, helpKey("?", "help"), helpKey("q", "quit"))
	return renderHelpLine(keys, width)
}

func renderResultsHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "open"),
		helpKey("+", "show more"),
		helpKey("/", "search"),
		helpKey("m", "name/ingredient"),
		helpKey("r", "random"),
		helpKey("R", "reset"),
	}
	return renderHelpLine(keys, width)
}

func renderDetailHelp(width int) string {
	keys := []string{
		helpKey("h/esc", "back"),
		helpKey("j/k", "scroll"),
		helpKey("t", "thumbnail"),
		helpKey("r", "random"),
		helpKey("R", "reset"),
	}
	return renderHelpLine(keys, width)
}

func renderSearchBarHelp(width int) string {
	keys := []string{
		helpKey("enter", "search"),
		helpKey("tab", "name/ingredient"),
		helpKey("ctrl+p", "recall"),
		helpKey("esc", "browse"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Browsing"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"l / → / enter", "Open drink"},
			{"h / ← / b / esc", "Back to results"},
			{"+ / space", "Show more results"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Searching"),
		helpSection([]helpItem{
			{"/ / i", "Focus the search bar"},
			{"m", "Switch name/ingredient search"},
			{"r", "Random drink"},
			{"R / x", "Reset to the start screen"},
		}),
		titleSection("Search Bar"),
		helpSection([]helpItem{
			{"enter", "Search"},
			{"tab", "Switch name/ingredient search"},
			{"ctrl+p", "Recall best matching past search"},
			{"esc", "Leave the search bar"},
		}),
		titleSection("Drink Detail"),
		helpSection([]helpItem{
			{"j / k", "Scroll recipe"},
			{"t", "Show/hide thumbnail"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
