package discover

import (
	"context"
	"testing"

	"barblend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultsOutcome(n int) model.Outcome {
	drinks := make([]model.Drink, n)
	for i := range drinks {
		drinks[i] = fullDrink(string(rune('a' + i)))
	}
	return model.Outcome{Kind: model.OutcomeResultsList, Drinks: drinks}
}

func TestResolverStartsIdle(t *testing.T) {
	r := NewResolver(model.ModeByIngredient)
	s := r.Session()
	assert.Equal(t, model.ViewIdle, s.View())
	assert.False(t, s.HasSearched)
	assert.Equal(t, model.ModeByIngredient, s.Mode)
}

func TestResolverResultsListScenario(t *testing.T) {
	src := &fakeSource{byName: []model.Drink{fullDrink("1"), fullDrink("2"), fullDrink("3")}}
	d := newTestDispatcher(src)
	r := NewResolver(model.ModeByName)

	token := r.Begin("margarita", model.ModeByName)
	require.True(t, r.Apply(token, d.Resolve(context.Background(), "margarita", model.ModeByName)))

	s := r.Session()
	assert.Equal(t, model.ViewResultsList, s.View())
	assert.Len(t, s.Results, 3)
	assert.Nil(t, s.Focused)
	assert.True(t, s.HasSearched)
	assert.Equal(t, "margarita", s.Query)
}

func TestResolverFallbackScenarioShowsDetailWithoutNotice(t *testing.T) {
	src := &fakeSource{}
	d := newTestDispatcher(src)
	r := NewResolver(model.ModeByName)

	token := r.Begin("zzzznotreal", model.ModeByName)
	r.Apply(token, d.Resolve(context.Background(), "zzzznotreal", model.ModeByName))

	s := r.Session()
	assert.Equal(t, model.ViewDetail, s.View())
	require.NotNil(t, s.Focused)
	assert.Empty(t, s.Results)
	assert.Empty(t, s.Notice)
	assert.Equal(t, 1, src.randomCalls)
}

func TestResolverDetailOutcomeClearsResults(t *testing.T) {
	r := NewResolver(model.ModeByName)
	r.Apply(r.Begin("gin", model.ModeByName), resultsOutcome(4))

	drink := fullDrink("x")
	r.Apply(r.Begin("", model.ModeByName), model.Outcome{Kind: model.OutcomeDetailView, Drink: &drink})

	s := r.Session()
	assert.Equal(t, model.ViewDetail, s.View())
	assert.Empty(t, s.Results)
	assert.Equal(t, "x", s.Focused.ID)
}

func TestResolverResultsOutcomeClearsFocus(t *testing.T) {
	r := NewResolver(model.ModeByName)
	drink := fullDrink("x")
	r.Apply(r.Begin("", model.ModeByName), model.Outcome{Kind: model.OutcomeDetailView, Drink: &drink})
	r.Apply(r.Begin("gin", model.ModeByName), resultsOutcome(2))

	s := r.Session()
	assert.Nil(t, s.Focused)
	assert.Equal(t, model.ViewResultsList, s.View())
}

func TestResolverEmptyOutcomeCarriesNotice(t *testing.T) {
	r := NewResolver(model.ModeByIngredient)
	r.Apply(r.Begin("gin", model.ModeByIngredient), resultsOutcome(2))
	r.Apply(r.Begin("unobtainium", model.ModeByIngredient), model.Outcome{Kind: model.OutcomeEmpty, Notice: NoticeIngredientNotFound})

	s := r.Session()
	assert.Equal(t, model.ViewIdle, s.View())
	assert.Empty(t, s.Results)
	assert.Equal(t, NoticeIngredientNotFound, s.Notice)
	assert.True(t, s.HasSearched)
}

func TestResolverFocusCardWithoutFetch(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(model.ModeByName)
	r.Apply(r.Begin("sour", model.ModeByName), resultsOutcome(6))

	require.True(t, r.Focus(4))

	s := r.Session()
	assert.Equal(t, model.ViewDetail, s.View())
	assert.Equal(t, s.Results[4].ID, s.Focused.ID)
	assert.Zero(t, src.nameCalls+src.filterCalls+src.randomCalls+len(src.lookupIDs))

	assert.False(t, r.Focus(6))
	assert.False(t, r.Focus(-1))
}

func TestResolverBackReturnsToResults(t *testing.T) {
	r := NewResolver(model.ModeByName)
	r.Apply(r.Begin("sour", model.ModeByName), resultsOutcome(3))
	r.Focus(1)

	require.True(t, r.Back())
	assert.Equal(t, model.ViewResultsList, r.View())
	assert.False(t, r.Back())
}

func TestResolverIgnoresStaleCompletion(t *testing.T) {
	r := NewResolver(model.ModeByName)
	first := r.Begin("gin", model.ModeByName)
	second := r.Begin("rum", model.ModeByName)

	assert.True(t, r.Apply(second, resultsOutcome(2)))
	assert.False(t, r.Apply(first, resultsOutcome(5)))

	s := r.Session()
	assert.Len(t, s.Results, 2)
	assert.Equal(t, "rum", s.Query)
}

func TestResolverIgnoresUnresolvedFallback(t *testing.T) {
	r := NewResolver(model.ModeByName)
	token := r.Begin("x", model.ModeByName)
	assert.False(t, r.Apply(token, model.Outcome{Kind: model.OutcomeFallbackRandom}))
	assert.False(t, r.Session().HasSearched)
}

func TestResolverResetIsIdempotent(t *testing.T) {
	r := NewResolver(model.ModeByIngredient)
	r.Apply(r.Begin("gin", model.ModeByIngredient), resultsOutcome(3))
	r.Focus(0)

	r.Reset()
	once := r.Session()
	r.Reset()
	twice := r.Session()

	assert.Equal(t, once, twice)
	assert.Equal(t, model.ViewIdle, twice.View())
	assert.False(t, twice.HasSearched)
	assert.Empty(t, twice.Query)
	assert.Equal(t, model.ModeByIngredient, twice.Mode)
}

func TestResolverResetInvalidatesInFlight(t *testing.T) {
	r := NewResolver(model.ModeByName)
	token := r.Begin("gin", model.ModeByName)
	r.Reset()

	assert.False(t, r.Apply(token, resultsOutcome(2)))
	assert.Equal(t, model.ViewIdle, r.View())
}

func TestResolverShowSuggestion(t *testing.T) {
	r := NewResolver(model.ModeByName)
	token := r.Begin("gin", model.ModeByName)
	r.Show(fullDrink("s1"))

	assert.Equal(t, model.ViewDetail, r.View())
	assert.True(t, r.Session().HasSearched)
	assert.False(t, r.Apply(token, resultsOutcome(2)))
}

func TestRandomSetDropsFailuresAndDuplicates(t *testing.T) {
	src := &fakeSource{randomDrinks: []model.Drink{fullDrink("a"), fullDrink("b"), fullDrink("a")}}
	drinks := RandomSet(context.Background(), src, 4, nil)
	assert.Equal(t, 4, src.randomCalls)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(drinks))

	src = &fakeSource{randomErr: errUpstream}
	assert.Empty(t, RandomSet(context.Background(), src, 4, nil))
	assert.Empty(t, RandomSet(context.Background(), src, 0, nil))
}

func TestResolverEmptyResultsOutcomeShowsList(t *testing.T) {
	src := &fakeSource{filter: partials(3), failLookups: map[string]bool{"1000": true, "1001": true, "1002": true}}
	opts := DefaultOptions()
	opts.EmptyOnTotalEnrichFailure = false
	d := NewDispatcher(src, opts, nil)
	r := NewResolver(model.ModeByIngredient)

	token := r.Begin("gin", model.ModeByIngredient)
	require.True(t, r.Apply(token, d.Resolve(context.Background(), "gin", model.ModeByIngredient)))

	s := r.Session()
	assert.Equal(t, model.ViewResultsList, s.View())
	assert.Empty(t, s.Results)
	assert.True(t, s.HasSearched)

	r.Reset()
	assert.Equal(t, model.ViewIdle, r.View())
}

func TestResolverBackFromSuggestionIsIdle(t *testing.T) {
	r := NewResolver(model.ModeByName)
	r.Show(fullDrink("9"))

	require.True(t, r.Back())
	assert.Equal(t, model.ViewIdle, r.View())
}
