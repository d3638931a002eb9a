package catalog

import (
	"strings"

	"github.com/agentstation/bookshelf/pkg/store"
)

// Status is the circulation state of a book. The set is open-ended; any
// text is accepted by ChangeStatus.
type Status string

// Canonical statuses.
const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked-out"
)

// String returns the status text.
func (s Status) String() string {
	return string(s)
}

// ParseStatusChoice maps the menu choices "1" and "2" to the canonical
// statuses.
func ParseStatusChoice(choice string) (Status, bool) {
	switch strings.TrimSpace(choice) {
	case "1":
		return StatusAvailable, true
	case "2":
		return StatusCheckedOut, true
	default:
		return "", false
	}
}

// ParseStatus accepts a menu choice or free text. Choices map to the
// canonical statuses; anything else is taken verbatim.
func ParseStatus(text string) Status {
	if status, ok := ParseStatusChoice(text); ok {
		return status
	}
	return Status(text)
}

// Book is a single catalog record.
type Book struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   string `json:"year" yaml:"year"`
	Status Status `json:"status" yaml:"status"`
}

// Entry is a book together with its identifier.
type Entry struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   string `json:"year" yaml:"year"`
	Status Status `json:"status" yaml:"status"`
}

// Book returns the record without its identifier.
func (e Entry) Book() Book {
	return Book{Title: e.Title, Author: e.Author, Year: e.Year, Status: e.Status}
}

func newEntry(id string, b Book) Entry {
	return Entry{ID: id, Title: b.Title, Author: b.Author, Year: b.Year, Status: b.Status}
}

func bookFromRecord(r store.Record) Book {
	return Book{Title: r.Title, Author: r.Author, Year: string(r.Year), Status: Status(r.Status)}
}

func (b Book) record() store.Record {
	return store.Record{Title: b.Title, Author: b.Author, Year: store.Text(b.Year), Status: string(b.Status)}
}
