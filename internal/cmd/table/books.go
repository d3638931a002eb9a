// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/bookshelf/pkg/catalog"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

var headerCase = cases.Title(language.English)

// header title-cases a field name for use as a column header.
func header(field string) string {
	return headerCase.String(field)
}

// EntriesToTableData converts catalog entries to table format.
func EntriesToTableData(entries []catalog.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.ID, e.Title, e.Author, e.Year, e.Status.String()})
	}

	return Data{
		Headers:         []string{"ID", header("title"), header("author"), header("year"), header("status")},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// BookToTableData converts a single book to a property/value table.
func BookToTableData(id string, book catalog.Book) Data {
	rows := [][]string{}
	if id != "" {
		rows = append(rows, []string{"ID", id})
	}
	rows = append(rows,
		[]string{header("title"), book.Title},
		[]string{header("author"), book.Author},
		[]string{header("year"), book.Year},
		[]string{header("status"), book.Status.String()},
	)

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}
