// Package remove provides the remove command.
package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/internal/appcontext"
	"github.com/agentstation/bookshelf/internal/cmd/emoji"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/catalog"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// NewCommand creates the remove command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		GroupID: "core",
		Aliases: []string{"rm"},
		Short:   "Remove a book from the catalog",
		Example: `  bookshelf remove 2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(cmd.Context(), "remove")
			cat, err := app.Catalog(ctx)
			if err != nil {
				return err
			}

			id := args[0]
			book, err := cat.Remove(ctx, id)
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			out := cmd.OutOrStdout()
			if format == output.FormatTable {
				fmt.Fprintf(out, "%s Book %s removed\n", emoji.Success, id)
			}
			entry := catalog.Entry{ID: id, Title: book.Title, Author: book.Author, Year: book.Year, Status: book.Status}
			return output.Write(out, format, entry, table.BookToTableData(id, book))
		},
	}
}
