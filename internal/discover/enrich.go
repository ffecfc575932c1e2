package discover

import (
	"context"

	"barblend/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Enrich upgrades up to limit partial records to full ones with concurrent
// detail lookups. Lookups that fail are dropped; survivors keep input order.
func Enrich(ctx context.Context, source Source, partials []model.Drink, limit int, logger *zap.Logger) []model.Drink {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit < 1 || limit > DefaultEnrichLimit {
		limit = DefaultEnrichLimit
	}
	if len(partials) > limit {
		partials = partials[:limit]
	}

	slots := make([]*model.Drink, len(partials))
	var g errgroup.Group
	for i, p := range partials {
		g.Go(func() error {
			drink, err := source.LookupByID(ctx, p.ID)
			if err != nil {
				logger.Debug("detail lookup failed", zap.String("id", p.ID), zap.Error(err))
				return nil
			}
			drink.Partial = false
			slots[i] = &drink
			return nil
		})
	}
	_ = g.Wait()

	drinks := make([]model.Drink, 0, len(slots))
	for _, d := range slots {
		if d != nil {
			drinks = append(drinks, *d)
		}
	}
	return drinks
}

// RandomSet fetches n random drinks concurrently, dropping failures and
// duplicates.
func RandomSet(ctx context.Context, source Source, n int, logger *zap.Logger) []model.Drink {
	if logger == nil {
		logger = zap.NewNop()
	}
	if n < 1 {
		return []model.Drink{}
	}

	slots := make([]*model.Drink, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			drink, err := source.Random(ctx)
			if err != nil {
				logger.Debug("random suggestion failed", zap.Error(err))
				return nil
			}
			slots[i] = &drink
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool, n)
	drinks := make([]model.Drink, 0, n)
	for _, d := range slots {
		if d == nil || seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		drinks = append(drinks, *d)
	}
	return drinks
}
