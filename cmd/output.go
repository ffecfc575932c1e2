package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"barblend/internal/model"
	"barblend/internal/util"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// printOutcome writes a dispatch outcome as plain text. limit caps how many
// list entries are printed; zero prints all.
func printOutcome(w io.Writer, outcome model.Outcome, limit int) error {
	if outcome.Notice != "" {
		fmt.Fprintln(w, outcome.Notice)
	}

	switch outcome.Kind {
	case model.OutcomeResultsList:
		printResults(w, outcome.Drinks, limit)
	case model.OutcomeDetailView:
		if outcome.Drink != nil {
			printDrink(w, *outcome.Drink)
		}
	default:
		if outcome.Notice == "" {
			fmt.Fprintln(w, "No drinks found.")
		}
	}

	if outcome.Err != nil {
		return fmt.Errorf("search failed: %w", outcome.Err)
	}
	return nil
}

func printResults(w io.Writer, drinks []model.Drink, limit int) {
	shown := drinks
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	fmt.Fprintln(w, util.FormatCount(len(drinks), "drink"))
	for _, d := range shown {
		fmt.Fprintf(w, "  %-28s %s\n", util.TruncateString(d.Name, 28), strings.Join(d.Ingredients, ", "))
	}
	if len(shown) < len(drinks) {
		fmt.Fprintf(w, "  ... and %d more\n", len(drinks)-len(shown))
	}
}

// printDrink writes a full recipe, styled when w is a terminal.
func printDrink(w io.Writer, d model.Drink) {
	md := "# " + d.Name + "\n\n" + util.RecipeMarkdown(d)
	if !isTerminal(w) {
		fmt.Fprint(w, md)
		return
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
