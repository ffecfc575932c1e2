// Package discover turns search requests into outcomes and folds outcomes
// into session state.
package discover

import (
	"context"

	"barblend/internal/model"

	"go.uber.org/zap"
)

// User-facing notices.
const (
	NoticeIngredientNotFound = "No drinks found with that ingredient!"
	NoticeEnrichmentFailed   = "Couldn't load details for any drink with that ingredient."
	NoticeNetworkFailure     = "Couldn't reach the cocktail database. Try again."
)

// DefaultEnrichLimit caps how many partial records are upgraded per search.
const DefaultEnrichLimit = 10

// Source is the recipe database as seen by the dispatcher.
type Source interface {
	SearchByName(ctx context.Context, name string) ([]model.Drink, error)
	FilterByIngredient(ctx context.Context, ingredient string) ([]model.Drink, error)
	LookupByID(ctx context.Context, id string) (model.Drink, error)
	Random(ctx context.Context) (model.Drink, error)
}

// Options tune dispatcher behaviour.
type Options struct {
	// EnrichLimit bounds enrichment fan-out; values outside 1..10 mean 10.
	EnrichLimit int
	// EmptyOnTotalEnrichFailure reports an ingredient search whose detail
	// lookups all failed as Empty with a notice instead of an empty list.
	EmptyOnTotalEnrichFailure bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		EnrichLimit:               DefaultEnrichLimit,
		EmptyOnTotalEnrichFailure: true,
	}
}

// Dispatcher maps a term and search mode onto fetch strategies. Every
// failure is converted into an Outcome; nothing is retried.
type Dispatcher struct {
	source Source
	opts   Options
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher over source.
func NewDispatcher(source Source, opts Options, logger *zap.Logger) *Dispatcher {
	if opts.EnrichLimit < 1 || opts.EnrichLimit > DefaultEnrichLimit {
		opts.EnrichLimit = DefaultEnrichLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{source: source, opts: opts, logger: logger}
}

// Dispatch runs one search. A by-name search with no matches returns
// OutcomeFallbackRandom; use Resolve to carry out the fallback.
func (d *Dispatcher) Dispatch(ctx context.Context, term string, mode model.SearchMode) model.Outcome {
	switch mode {
	case model.ModeByIngredient:
		return d.byIngredient(ctx, term)
	default:
		return d.byName(ctx, term)
	}
}

// Resolve dispatches and performs the random fallback step, so the result is
// never OutcomeFallbackRandom.
func (d *Dispatcher) Resolve(ctx context.Context, term string, mode model.SearchMode) model.Outcome {
	outcome := d.Dispatch(ctx, term, mode)
	if outcome.Kind != model.OutcomeFallbackRandom {
		return outcome
	}
	d.logger.Debug("no name matches, falling back to random", zap.String("term", term))
	return d.FetchRandom(ctx)
}

// FetchRandom returns a single random drink as a detail outcome.
func (d *Dispatcher) FetchRandom(ctx context.Context) model.Outcome {
	drink, err := d.source.Random(ctx)
	if err != nil {
		return d.failure("random", err)
	}
	return model.Outcome{Kind: model.OutcomeDetailView, Drink: &drink}
}

// LookupDrink fetches a single drink by identifier as a detail outcome.
func (d *Dispatcher) LookupDrink(ctx context.Context, id string) model.Outcome {
	drink, err := d.source.LookupByID(ctx, id)
	if err != nil {
		return d.failure("lookup", err)
	}
	return model.Outcome{Kind: model.OutcomeDetailView, Drink: &drink}
}

func (d *Dispatcher) byName(ctx context.Context, term string) model.Outcome {
	drinks, err := d.source.SearchByName(ctx, term)
	if err != nil {
		return d.failure("search by name", err)
	}
	if len(drinks) == 0 {
		return model.Outcome{Kind: model.OutcomeFallbackRandom}
	}
	return model.Outcome{Kind: model.OutcomeResultsList, Drinks: drinks}
}

func (d *Dispatcher) byIngredient(ctx context.Context, term string) model.Outcome {
	partials, err := d.source.FilterByIngredient(ctx, term)
	if err != nil {
		return d.failure("filter by ingredient", err)
	}
	if len(partials) == 0 {
		return model.Outcome{Kind: model.OutcomeEmpty, Notice: NoticeIngredientNotFound}
	}

	drinks := Enrich(ctx, d.source, partials, d.opts.EnrichLimit, d.logger)
	if len(drinks) == 0 && d.opts.EmptyOnTotalEnrichFailure {
		d.logger.Warn("all detail lookups failed", zap.String("ingredient", term), zap.Int("candidates", len(partials)))
		return model.Outcome{Kind: model.OutcomeEmpty, Notice: NoticeEnrichmentFailed}
	}
	return model.Outcome{Kind: model.OutcomeResultsList, Drinks: drinks}
}

func (d *Dispatcher) failure(op string, err error) model.Outcome {
	d.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
	return model.Outcome{Kind: model.OutcomeEmpty, Notice: NoticeNetworkFailure, Err: err}
}
