package model

import (
	"strings"
	"time"
)

// Drink represents a cocktail record from the recipe database.
type Drink struct {
	ID           string
	Name         string
	Thumbnail    string
	Category     string
	Alcoholic    string
	Glass        string
	Instructions string
	Ingredients  []string
	Measures     []string // aligned with Ingredients, "" when the source has none
	Partial      bool     // only ID, Name and Thumbnail are populated
}

// IngredientLine returns the i-th ingredient prefixed by its measure, if any.
func (d Drink) IngredientLine(i int) string {
	if i < 0 || i >= len(d.Ingredients) {
		return ""
	}
	if i < len(d.Measures) {
		if measure := strings.TrimSpace(d.Measures[i]); measure != "" {
			return measure + " " + d.Ingredients[i]
		}
	}
	return d.Ingredients[i]
}

// SearchMode selects the fetch strategy for a query.
type SearchMode int

const (
	ModeByName SearchMode = iota
	ModeByIngredient
)

// String returns the mode's wire name.
func (m SearchMode) String() string {
	if m == ModeByIngredient {
		return "by-ingredient"
	}
	return "by-name"
}

// Toggle returns the other search mode.
func (m SearchMode) Toggle() SearchMode {
	if m == ModeByIngredient {
		return ModeByName
	}
	return ModeByIngredient
}

// ParseSearchMode parses a wire name, defaulting to ModeByName.
func ParseSearchMode(s string) SearchMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "by-ingredient", "ingredient":
		return ModeByIngredient
	default:
		return ModeByName
	}
}

// OutcomeKind discriminates dispatch results.
type OutcomeKind int

const (
	OutcomeEmpty OutcomeKind = iota
	OutcomeResultsList
	OutcomeDetailView
	OutcomeFallbackRandom
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResultsList:
		return "results"
	case OutcomeDetailView:
		return "detail"
	case OutcomeFallbackRandom:
		return "fallback-random"
	default:
		return "empty"
	}
}

// Outcome is the result of a dispatch. Drinks is set for results lists,
// Drink for detail views. Notice carries the user-facing message, if any.
type Outcome struct {
	Kind   OutcomeKind
	Drinks []Drink
	Drink  *Drink
	Notice string
	Err    error
}

// ViewState is the screen the render layer should show.
type ViewState int

const (
	ViewIdle ViewState = iota
	ViewResultsList
	ViewDetail
)

func (v ViewState) String() string {
	switch v {
	case ViewResultsList:
		return "results"
	case ViewDetail:
		return "detail"
	default:
		return "idle"
	}
}

// Session is the search session state owned by the UI controller.
// It is always replaced as a whole value.
type Session struct {
	Query       string
	Mode        SearchMode
	Results     []Drink
	Focused     *Drink
	HasSearched bool
	Notice      string
	// Listed is set by a resultsList outcome, even one with no drinks.
	Listed bool
}

// View derives the visible screen. A focused drink takes precedence over
// the result list.
func (s Session) View() ViewState {
	switch {
	case s.Focused != nil:
		return ViewDetail
	case s.Listed:
		return ViewResultsList
	default:
		return ViewIdle
	}
}

// HistoryEntry is a recorded search.
type HistoryEntry struct {
	ID          int64
	Term        string
	Mode        SearchMode
	Outcome     string
	ResultCount int
	SearchedAt  time.Time
}

// NewHistoryEntry represents data for recording a search.
type NewHistoryEntry struct {
	Term        string
	Mode        SearchMode
	Outcome     string
	ResultCount int
}
