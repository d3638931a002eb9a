// Package add provides the add command.
package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/internal/appcontext"
	"github.com/agentstation/bookshelf/internal/cmd/emoji"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// NewCommand creates the add command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var title, author, year string

	cmd := &cobra.Command{
		Use:     "add",
		GroupID: "core",
		Short:   "Add a book to the catalog",
		Long: `Add validates a new book and stores it as available under the next
free identifier. The title must not be empty, the year must be a number
between 1500 and 3000, and the author must not be empty or purely numeric.`,
		Example: `  bookshelf add --title "Dune" --author "Frank Herbert" --year 1965
  bookshelf add -t "1984" -a "George Orwell" -y 1949 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithOperation(cmd.Context(), "add")
			cat, err := app.Catalog(ctx)
			if err != nil {
				return err
			}

			entry, err := cat.Add(ctx, title, author, year)
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			out := cmd.OutOrStdout()
			if format == output.FormatTable {
				fmt.Fprintf(out, "%s Book %s added\n", emoji.Success, entry.ID)
			}
			return output.Write(out, format, entry, table.BookToTableData(entry.ID, entry.Book()))
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Book title")
	cmd.Flags().StringVarP(&author, "author", "a", "", "Book author")
	cmd.Flags().StringVarP(&year, "year", "y", "", "Publication year")

	return cmd
}
