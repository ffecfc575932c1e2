package util

import (
	"fmt"
	"strings"
	"time"

	"barblend/internal/model"
)

// FormatWhenHuman formats a timestamp relative to now.
// "just now", "5m ago", "3h ago", "Yesterday", "3d ago", "Jan 15", "Jan 15 '24"
func FormatWhenHuman(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	t = t.In(now.Location())

	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	days := int(today.Sub(day).Hours() / 24)

	switch {
	case days == 0:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%dd ago", days)
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatMode formats a search mode for display.
func FormatMode(mode model.SearchMode) string {
	if mode == model.ModeByIngredient {
		return "Ingredient"
	}
	return "Name"
}

// FormatCount formats n with a singular or plural noun: "1 drink", "3 drinks".
func FormatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// RecipeMarkdown renders a drink's ingredients and instructions as markdown.
func RecipeMarkdown(d model.Drink) string {
	var b strings.Builder

	var meta []string
	for _, v := range []string{d.Category, d.Alcoholic, d.Glass} {
		if v != "" {
			meta = append(meta, v)
		}
	}
	if len(meta) > 0 {
		b.WriteString("*" + strings.Join(meta, " · ") + "*\n\n")
	}

	b.WriteString("## Ingredients\n\n")
	if len(d.Ingredients) == 0 {
		b.WriteString("_No ingredients listed._\n")
	}
	for i := range d.Ingredients {
		b.WriteString("- " + d.IngredientLine(i) + "\n")
	}

	b.WriteString("\n## Instructions\n\n")
	if strings.TrimSpace(d.Instructions) == "" {
		b.WriteString("_No instructions listed._\n")
	} else {
		b.WriteString(strings.TrimSpace(d.Instructions) + "\n")
	}
	return b.String()
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
