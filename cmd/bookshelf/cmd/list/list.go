// Package list provides the list command.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/internal/appcontext"
	"github.com/agentstation/bookshelf/internal/cmd/emoji"
	"github.com/agentstation/bookshelf/internal/cmd/filter"
	"github.com/agentstation/bookshelf/internal/cmd/globals"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/catalog"
)

// NewCommand creates the list command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Aliases: []string{"ls"},
		Short:   "List every book in the catalog",
		Example: `  bookshelf list                      # List all books
  bookshelf list --status checked-out # Only books that are out
  bookshelf list -o yaml              # YAML output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			flags := globals.ParseResources(cmd)
			f := &filter.EntryFilter{Limit: flags.Limit}
			if flags.Status != "" {
				f.Status = catalog.ParseStatus(flags.Status)
			}
			entries := f.Apply(cat.List())

			format := output.Format(app.OutputFormat())
			out := cmd.OutOrStdout()
			if format == output.FormatTable && len(entries) == 0 {
				fmt.Fprintf(out, "%s No books yet\n", emoji.Info)
				return nil
			}

			app.Logger().Debug().Int("books", len(entries)).Int("total", cat.Len()).Msg("Listing books")
			return output.Write(out, format, entries, table.EntriesToTableData(entries))
		},
	}

	globals.AddResourceFlags(cmd)

	return cmd
}
