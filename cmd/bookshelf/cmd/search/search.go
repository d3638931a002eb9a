// Package search provides the search command.
package search

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/internal/appcontext"
	"github.com/agentstation/bookshelf/internal/cmd/emoji"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/catalog"
)

// NewCommand creates the search command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "search <term>",
		GroupID: "core",
		Aliases: []string{"find"},
		Short:   "Search books by title, author or year",
		Long: `Search lists every book whose title or author contains the term,
or whose year equals it. Matching is case-sensitive.`,
		Example: `  bookshelf search Dune
  bookshelf search "Frank Herbert"
  bookshelf search 1965`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			term := strings.Join(args, " ")
			results, ok := cat.Search(term)

			format := output.Format(app.OutputFormat())
			out := cmd.OutOrStdout()
			if format == output.FormatTable {
				switch {
				case !ok:
					fmt.Fprintf(out, "%s The catalog is empty\n", emoji.Info)
					return nil
				case len(results) == 0:
					fmt.Fprintf(out, "%s No books found\n", emoji.Info)
					return nil
				}
			}
			if results == nil {
				results = []catalog.Entry{}
			}

			app.Logger().Debug().Str("term", term).Int("matches", len(results)).Msg("Search complete")
			return output.Write(out, format, results, table.EntriesToTableData(results))
		},
	}
}
