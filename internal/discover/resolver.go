package discover

import "barblend/internal/model"

// Resolver owns the search session and applies outcomes to it. It is not
// safe for concurrent use; the UI calls it from its update loop only.
type Resolver struct {
	session    model.Session
	generation uint64
}

// NewResolver creates a resolver in the idle state.
func NewResolver(mode model.SearchMode) *Resolver {
	return &Resolver{session: model.Session{Mode: mode}}
}

// Session returns a copy of the current session.
func (r *Resolver) Session() model.Session {
	s := r.session
	s.Results = append([]model.Drink(nil), s.Results...)
	return s
}

// View reports which screen the session resolves to.
func (r *Resolver) View() model.ViewState {
	return r.session.View()
}

// Generation returns the token of the most recent dispatch.
func (r *Resolver) Generation() uint64 {
	return r.generation
}

// Begin records the query and mode of a new dispatch and returns its token.
// Completions carrying an older token are ignored by Apply.
func (r *Resolver) Begin(query string, mode model.SearchMode) uint64 {
	r.generation++
	next := r.session
	next.Query = query
	next.Mode = mode
	r.session = next
	return r.generation
}

// Apply folds an outcome into the session. It reports false when the
// outcome is stale or unresolved and was ignored.
func (r *Resolver) Apply(token uint64, outcome model.Outcome) bool {
	if token != r.generation {
		return false
	}

	next := model.Session{
		Query:       r.session.Query,
		Mode:        r.session.Mode,
		HasSearched: true,
	}
	switch outcome.Kind {
	case model.OutcomeResultsList:
		next.Results = append([]model.Drink(nil), outcome.Drinks...)
		next.Listed = true
		next.Notice = outcome.Notice
	case model.OutcomeDetailView:
		if outcome.Drink == nil {
			next.Notice = NoticeNetworkFailure
			break
		}
		drink := *outcome.Drink
		next.Focused = &drink
		next.Notice = outcome.Notice
	case model.OutcomeEmpty:
		next.Notice = outcome.Notice
	default:
		return false
	}
	r.session = next
	return true
}

// Focus shows the i-th result in detail without fetching. The result list is
// kept so Back can return to it.
func (r *Resolver) Focus(i int) bool {
	if i < 0 || i >= len(r.session.Results) {
		return false
	}
	next := r.session
	drink := next.Results[i]
	next.Focused = &drink
	next.HasSearched = true
	r.session = next
	return true
}

// Show focuses a drink obtained outside a result list (a suggestion) as a
// detail view. In-flight dispatches become stale.
func (r *Resolver) Show(drink model.Drink) {
	r.generation++
	r.session = model.Session{
		Query:       r.session.Query,
		Mode:        r.session.Mode,
		Focused:     &drink,
		HasSearched: true,
	}
}

// Back leaves the detail view, returning to the result list if there is one.
func (r *Resolver) Back() bool {
	if r.session.Focused == nil {
		return false
	}
	next := r.session
	next.Focused = nil
	r.session = next
	return true
}

// SetMode changes the search mode without touching results.
func (r *Resolver) SetMode(mode model.SearchMode) {
	next := r.session
	next.Mode = mode
	r.session = next
}

// Reset returns to idle, clearing query, results, focus and the searched
// flag. The search mode is kept. In-flight dispatches become stale.
func (r *Resolver) Reset() {
	r.generation++
	r.session = model.Session{Mode: r.session.Mode}
}
