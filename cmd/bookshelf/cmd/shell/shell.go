// Package shell provides the interactive menu that drives the catalog one
// choice at a time until the user exits or input ends.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/internal/appcontext"
	"github.com/agentstation/bookshelf/internal/cmd/emoji"
	"github.com/agentstation/bookshelf/pkg/catalog"
	"github.com/agentstation/bookshelf/pkg/errors"
)

// Menu choices.
const (
	ChoiceAdd    = "1"
	ChoiceRemove = "2"
	ChoiceSearch = "3"
	ChoiceList   = "4"
	ChoiceStatus = "5"
	ChoiceExit   = "6"
)

const menu = `
Menu:
1. Add a book
2. Remove a book
3. Search books
4. List all books
5. Change book status
6. Exit
`

// NewCommand creates the shell command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "shell",
		GroupID: "core",
		Short:   "Manage the catalog from an interactive menu",
		Long: `Shell shows a numbered menu and runs one catalog operation per choice.
It is the default when bookshelf is run without a subcommand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// Run loads the catalog and serves the menu on in and out. It returns nil
// when the user exits, input ends or ctx is canceled.
func Run(ctx context.Context, app appcontext.Interface, in io.Reader, out io.Writer) error {
	cat, err := app.Catalog(ctx)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	s := &session{
		ctx:    ctx,
		cat:    cat,
		lines:  readLines(in, done),
		out:    out,
		logger: app.Logger(),
	}
	return s.loop()
}

type session struct {
	ctx    context.Context
	cat    *catalog.Catalog
	lines  <-chan string
	out    io.Writer
	logger *zerolog.Logger
}

// readLines scans in on its own goroutine so a pending read never blocks
// cancellation. The goroutine stops at end of input or when done closes.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimRight(scanner.Text(), "\r"):
			case <-done:
				return
			}
		}
	}()
	return lines
}

func (s *session) loop() error {
	ctx := s.ctx
	for {
		fmt.Fprint(s.out, menu)
		choice, ok := s.prompt("Choose an action (1-6): ")
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}

		var err error
		switch choice {
		case ChoiceAdd:
			err = s.add(ctx)
		case ChoiceRemove:
			err = s.remove(ctx)
		case ChoiceSearch:
			s.search()
		case ChoiceList:
			s.list()
		case ChoiceStatus:
			err = s.changeStatus(ctx)
		case ChoiceExit:
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintf(s.out, "%s Choose 1-6\n", emoji.Warning)
		}

		if err != nil {
			if !recoverable(err) {
				return err
			}
			fmt.Fprintf(s.out, "%s %s\n", emoji.Error, err)
		}
	}
}

// prompt writes label and reads one line. ok is false once input ends or
// the session context is canceled.
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	select {
	case line, ok := <-s.lines:
		return line, ok
	case <-s.ctx.Done():
		return "", false
	}
}

func (s *session) add(ctx context.Context) error {
	title, ok := s.prompt("Enter the book title: ")
	if !ok {
		return nil
	}
	author, ok := s.prompt("Enter the book author: ")
	if !ok {
		return nil
	}
	year, ok := s.prompt("Enter the publication year: ")
	if !ok {
		return nil
	}

	entry, err := s.cat.Add(ctx, title, author, year)
	if err != nil {
		return err
	}
	s.printBook(entry.Book())
	fmt.Fprintf(s.out, "%s Added with ID %s\n", emoji.Success, entry.ID)
	return nil
}

func (s *session) remove(ctx context.Context) error {
	id, ok := s.prompt("Enter the ID of the book to remove: ")
	if !ok {
		return nil
	}

	book, err := s.cat.Remove(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	s.printBook(book)
	fmt.Fprintf(s.out, "%s Removed\n", emoji.Success)
	return nil
}

func (s *session) search() {
	term, ok := s.prompt("Enter a title, author or year to search for: ")
	if !ok {
		return
	}

	results, ok := s.cat.Search(term)
	if !ok {
		fmt.Fprintf(s.out, "%s The catalog is empty\n", emoji.Info)
		return
	}
	if len(results) == 0 {
		fmt.Fprintf(s.out, "%s No books found.\n", emoji.Info)
		return
	}

	fmt.Fprintln(s.out, "Books found:")
	for _, e := range results {
		s.printBook(e.Book())
	}
	s.logger.Debug().Str("term", term).Int("matches", len(results)).Msg("Search complete")
}

func (s *session) list() {
	entries := s.cat.List()
	if len(entries) == 0 {
		fmt.Fprintf(s.out, "%s No books yet\n", emoji.Info)
		return
	}

	for _, e := range entries {
		fmt.Fprintf(s.out, " ID: %s ", e.ID)
		s.printBook(e.Book())
	}
}

func (s *session) changeStatus(ctx context.Context) error {
	text, ok := s.prompt("Enter the ID of the book to update: ")
	if !ok {
		return nil
	}
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		fmt.Fprintf(s.out, "%s Invalid ID. Please enter a number.\n", emoji.Error)
		return nil
	}

	choice, ok := s.prompt("Enter the new status (1 - available, 2 - checked-out): ")
	if !ok {
		return nil
	}
	status, valid := catalog.ParseStatusChoice(choice)
	if !valid {
		fmt.Fprintf(s.out, "%s No such choice. Choose 1 or 2\n", emoji.Warning)
		return nil
	}

	fmt.Fprintf(s.out, "You chose ID: %d and status: %s\n", id, status)
	book, err := s.cat.ChangeStatus(ctx, id, status)
	if err != nil {
		return err
	}
	s.printBook(book)
	fmt.Fprintf(s.out, "%s Status changed\n", emoji.Success)
	return nil
}

func (s *session) printBook(b catalog.Book) {
	fmt.Fprintf(s.out, "Title: %s, author: %s, year: %s, status: %s\n", b.Title, b.Author, b.Year, b.Status)
}

// recoverable reports whether the menu should show err and keep going.
func recoverable(err error) bool {
	return errors.IsValidationError(err) || errors.IsNotFound(err)
}
