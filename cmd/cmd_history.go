package cmd

import (
	"errors"
	"fmt"
	"time"

	"barblend/internal/db"
	"barblend/internal/model"
	"barblend/internal/util"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of searches to list")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded searches")
}

func runHistory(cmd *cobra.Command, args []string) error {
	database, err := openHistory()
	if err != nil {
		return err
	}
	if database == nil {
		return errors.New("search history is turned off (see history_enabled in config.toml)")
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	if historyClear {
		if err := db.ClearSearches(database); err != nil {
			return err
		}
		fmt.Fprintln(out, "Search history cleared.")
		return nil
	}

	entries, err := db.ListRecentSearches(database, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No searches yet.")
		return nil
	}

	now := time.Now()
	for _, e := range entries {
		fmt.Fprintf(out, "%-12s %-10s %-24s %s\n",
			util.FormatWhenHuman(e.SearchedAt, now),
			util.FormatMode(e.Mode),
			util.TruncateString(e.Term, 24),
			describeResult(e.Outcome, e.ResultCount))
	}
	return nil
}

func describeResult(outcome string, count int) string {
	switch outcome {
	case model.OutcomeResultsList.String():
		return util.FormatCount(count, "drink")
	case model.OutcomeDetailView.String():
		return "1 drink (detail)"
	default:
		return "no results"
	}
}
