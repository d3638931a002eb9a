// Package status provides the status command.
package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/internal/appcontext"
	"github.com/agentstation/bookshelf/internal/cmd/emoji"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/catalog"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// MsgInvalidID is reported when the identifier is not a number.
const MsgInvalidID = "book ID must be a number"

// NewCommand creates the status command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "status <id> <status>",
		GroupID: "core",
		Short:   "Change the status of a book",
		Long: `Status overwrites the status of a book. Use 1 or "available" for
books on the shelf and 2 or "checked-out" for books on loan. Any other
text is stored as given.`,
		Example: `  bookshelf status 1 checked-out
  bookshelf status 1 1               # back to available`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return errors.NewValidationError("id", args[0], MsgInvalidID)
			}
			status := catalog.ParseStatus(strings.Join(args[1:], " "))

			ctx := logging.WithOperation(cmd.Context(), "status")
			cat, err := app.Catalog(ctx)
			if err != nil {
				return err
			}

			book, err := cat.ChangeStatus(ctx, id, status)
			if err != nil {
				return err
			}

			key := strconv.Itoa(id)
			format := output.Format(app.OutputFormat())
			out := cmd.OutOrStdout()
			if format == output.FormatTable {
				fmt.Fprintf(out, "%s Book %s is now %s\n", emoji.Success, key, book.Status)
			}
			entry := catalog.Entry{ID: key, Title: book.Title, Author: book.Author, Year: book.Year, Status: book.Status}
			return output.Write(out, format, entry, table.BookToTableData(key, book))
		},
	}
}
