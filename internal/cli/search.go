package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/index"
	"github.com/aidanlsb/corvid/internal/ui"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search card titles and content",
	Long: `Search card titles and content using full-text search.

Title matches rank above content matches. With no query, behavior follows
the empty_query setting in your config: show nothing or list every card.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		query := strings.TrimSpace(strings.Join(args, " "))
		results, err := s.Search(query, searchLimit)
		if err != nil {
			return handleError(errorCode(err), err, errorSuggestion(err))
		}

		if jsonOutput {
			type resultJSON struct {
				ID      string  `json:"id"`
				Title   string  `json:"title"`
				Snippet string  `json:"snippet,omitempty"`
				Rank    float64 `json:"rank"`
			}
			out := make([]resultJSON, 0, len(results))
			for _, r := range results {
				out = append(out, resultJSON{ID: r.CardID, Title: r.Title, Snippet: r.Snippet, Rank: r.Rank})
			}
			outputSuccessWithWarnings(out, warnings, &Meta{Count: len(out)})
			return nil
		}

		if len(results) == 0 {
			if query == "" {
				fmt.Println(ui.Hint("Nothing to search for."))
			} else {
				fmt.Println(ui.Hint(fmt.Sprintf("No cards match %q.", query)))
			}
			return nil
		}

		fmt.Println(printSearchResults(results))
		fmt.Println(ui.Hint(ui.Count(len(results), "card", "cards")))
		return nil
	},
}

func printSearchResults(results []index.SearchResult) string {
	display := ui.NewDisplayContext()
	table := ui.NewResultsTable(display, ui.SearchLayout)
	titleWidth := table.ContentWidth("title")
	snippetWidth := table.ContentWidth("snippet")
	for i, r := range results {
		snippet := strings.Join(strings.Fields(r.Snippet), " ")
		table.AddRow(ui.ResultRow{
			Num: i + 1,
			Cells: []string{
				ui.FormatRowNum(i+1, len(results)),
				ui.TruncateWithEllipsis(r.Title, titleWidth),
				ui.TruncateWithEllipsis(snippet, snippetWidth),
			},
		})
	}
	return table.Render()
}

var backlinksCmd = &cobra.Command{
	Use:     "backlinks <card>",
	Aliases: []string{"bl"},
	Short:   "List cards that mention a card",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		cardID, err := resolveCard(s, args[0])
		if err != nil {
			return handleBoardError(err)
		}
		links, err := s.Backlinks(cardID)
		if err != nil {
			return handleError(errorCode(err), err, errorSuggestion(err))
		}

		if jsonOutput {
			type backlinkJSON struct {
				Source string `json:"source"`
				Title  string `json:"title"`
				Label  string `json:"label,omitempty"`
			}
			out := make([]backlinkJSON, 0, len(links))
			for _, l := range links {
				b := backlinkJSON{Source: l.SourceID, Title: l.SourceTitle}
				if l.Label != nil {
					b.Label = *l.Label
				}
				out = append(out, b)
			}
			outputSuccessWithWarnings(out, warnings, &Meta{Count: len(out)})
			return nil
		}

		if len(links) == 0 {
			fmt.Println(ui.Hint(fmt.Sprintf("Nothing mentions %s.", titleOrID(s.State(), cardID))))
			return nil
		}

		display := ui.NewDisplayContext()
		table := ui.NewResultsTable(display, ui.BacklinksLayout)
		titleWidth := table.ContentWidth("title")
		labelWidth := table.ContentWidth("label")
		for i, l := range links {
			label := ""
			if l.Label != nil {
				label = *l.Label
			}
			table.AddRow(ui.ResultRow{
				Num: i + 1,
				Cells: []string{
					ui.FormatRowNum(i+1, len(links)),
					ui.TruncateWithEllipsis(l.SourceTitle, titleWidth),
					ui.TruncateWithEllipsis(label, labelWidth),
				},
			})
		}
		fmt.Println(table.Render())
		return nil
	},
}

var completeLimit int

var completeCmd = &cobra.Command{
	Use:    "complete <prefix>",
	Short:  "Complete a mention target from a title prefix",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		completions, err := s.CompleteMention(args[0], completeLimit)
		if err != nil {
			return handleError(errorCode(err), err, errorSuggestion(err))
		}

		if jsonOutput {
			type completionJSON struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			}
			out := make([]completionJSON, 0, len(completions))
			for _, c := range completions {
				out = append(out, completionJSON{ID: c.CardID, Title: c.Title})
			}
			outputSuccessWithWarnings(out, warnings, &Meta{Count: len(out)})
			return nil
		}
		for _, c := range completions {
			fmt.Printf("%s\t%s\n", c.CardID, c.Title)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 50, "Maximum number of results")
	completeCmd.Flags().IntVarP(&completeLimit, "limit", "n", 10, "Maximum number of completions")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(backlinksCmd)
	rootCmd.AddCommand(completeCmd)
}
