package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/soapnote/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var (
		limit  int
		filter bool
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Suggest scenarios matching a drug name, alias or keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if filter {
				refs := app.Search.Filter(ctx, query)
				if len(refs) == 0 {
					fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("No scenarios contain %q.", query)))
					return nil
				}
				rows := make([][]string, 0, len(refs))
				for _, r := range refs {
					rows = append(rows, []string{formatter.GroupChip(r.Group), formatter.Bold(r.Scenario.Title), formatter.Dim(r.Key())})
				}
				fmt.Fprint(out, formatter.RenderTable([]string{"GROUP", "SCENARIO", "ID"}, rows))
				return nil
			}

			if !cmd.Flags().Changed("limit") && app.SuggestLimit > 0 {
				limit = app.SuggestLimit
			}
			fmt.Fprint(out, formatter.FormatSuggestions(query, app.Search.Suggest(ctx, query, limit)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 8, "maximum number of suggestions")
	cmd.Flags().BoolVar(&filter, "filter", false, "list every scenario whose text contains QUERY")
	return cmd
}
