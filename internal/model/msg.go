package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// OutcomeMsg is sent when a dispatch completes. Token is the generation the
// dispatch was started under.
type OutcomeMsg struct {
	Token   uint64
	Query   string
	Mode    SearchMode
	Outcome Outcome
}

// SuggestionsLoadedMsg is sent when random suggestions are loaded.
type SuggestionsLoadedMsg struct {
	Token  uint64
	Drinks []Drink
}

// ThumbnailLoadedMsg is sent when a drink thumbnail has been rendered.
type ThumbnailLoadedMsg struct {
	DrinkID string
	Art     string
	Err     error
}

// TermsLoadedMsg is sent when past search terms for a mode are loaded.
type TermsLoadedMsg struct {
	Mode  SearchMode
	Terms []string
}

// HistoryRecordedMsg is sent after a search is written to history.
type HistoryRecordedMsg struct{}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
