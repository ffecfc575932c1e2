package cmd

import (
	"context"
	"strings"

	"barblend/internal/db"
	"barblend/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	searchByIngredient bool
	searchLimit        int
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search drinks by name, or by ingredient with --ingredient",
	Long: `Search the cocktail database and print the results.

A name search with no matches shows a random drink instead. An ingredient
search looks up details for the first matches.`,
	Example: `  barblend search margarita
  barblend search --ingredient vodka`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random drink",
	Args:  cobra.NoArgs,
	RunE:  runRandom,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchByIngredient, "ingredient", "i", false, "Search by ingredient instead of name")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results to print (0 = all)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := strings.Join(args, " ")
	mode := model.ModeByName
	if searchByIngredient {
		mode = model.ModeByIngredient
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	logger.Info("search", zap.String("term", term), zap.String("mode", mode.String()))
	outcome := newDispatcher(newClient()).Resolve(ctx, term, mode)
	recordSearch(term, mode, outcome)

	return printOutcome(cmd.OutOrStdout(), outcome, searchLimit)
}

func runRandom(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	outcome := newDispatcher(newClient()).FetchRandom(ctx)
	return printOutcome(cmd.OutOrStdout(), outcome, 0)
}

// commandContext bounds a command by a few request timeouts: a search is at
// most two rounds of requests.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout.Duration <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, 3*cfg.Timeout.Duration)
}

// recordSearch writes a completed search to history. Failures are logged
// and not returned.
func recordSearch(term string, mode model.SearchMode, outcome model.Outcome) {
	term = strings.TrimSpace(term)
	if term == "" || outcome.Err != nil {
		return
	}
	database, err := openHistory()
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
		return
	}
	if database == nil {
		return
	}
	defer database.Close()

	count := len(outcome.Drinks)
	if outcome.Kind == model.OutcomeDetailView {
		count = 1
	}
	if _, err := db.InsertSearch(database, model.NewHistoryEntry{
		Term:        term,
		Mode:        mode,
		Outcome:     outcome.Kind.String(),
		ResultCount: count,
	}); err != nil {
		logger.Warn("failed to record search", zap.Error(err))
	}
}
