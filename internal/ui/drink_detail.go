package ui

import (
	"strings"

	"barblend/internal/model"
	"barblend/internal/util"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// DrinkDetailModel represents the drink detail screen.
type DrinkDetailModel struct {
	drink    model.Drink
	art      string
	showArt  bool
	viewport viewport.Model
	width    int
}

// NewDrinkDetailModel creates a detail screen for drink.
func NewDrinkDetailModel(drink model.Drink, showArt bool, width, height int) *DrinkDetailModel {
	m := &DrinkDetailModel{
		drink:    drink,
		showArt:  showArt,
		viewport: viewport.New(width, height),
	}
	m.SetSize(width, height)
	return m
}

// DrinkID returns the ID of the drink on screen.
func (m *DrinkDetailModel) DrinkID() string {
	return m.drink.ID
}

// HasArt reports whether thumbnail art has been set.
func (m *DrinkDetailModel) HasArt() bool {
	return m.art != ""
}

// SetArt installs rendered thumbnail art.
func (m *DrinkDetailModel) SetArt(art string) {
	m.art = art
	m.refresh()
}

// SetShowArt toggles the thumbnail.
func (m *DrinkDetailModel) SetShowArt(show bool) {
	m.showArt = show
	m.refresh()
}

// SetSize resizes the scrollable area and re-renders the recipe.
func (m *DrinkDetailModel) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = max(height, 1)
	m.refresh()
}

// Update scrolls the recipe.
func (m *DrinkDetailModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *DrinkDetailModel) refresh() {
	d := m.drink

	var fields []string
	fields = append(fields, TitleStyle.Render(d.Name))
	fields = append(fields, renderField("Category", d.Category))
	fields = append(fields, renderField("Type", d.Alcoholic))
	fields = append(fields, renderField("Glass", d.Glass))
	info := lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(fields, "\n"))

	top := info
	if m.showArt && m.art != "" {
		top = lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Padding(1, 2).Render(m.art), info)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, top, renderRecipe(d, m.width)))
}

// renderRecipe renders ingredients and instructions through glamour,
// falling back to the raw markdown if rendering fails.
func renderRecipe(d model.Drink, width int) string {
	md := util.RecipeMarkdown(d)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-6, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// View renders the drink detail.
func (m *DrinkDetailModel) View() string {
	return m.viewport.View()
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
