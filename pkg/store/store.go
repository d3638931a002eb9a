// Package store persists the book catalog as a single JSON document.
//
// The document is one object mapping identifier strings to book attribute
// objects:
//
//	{
//	    "1": {
//	        "title": "Dune",
//	        "author": "Frank Herbert",
//	        "year": "1965",
//	        "status": "available"
//	    }
//	}
//
// A Store always reads and writes the whole document; there is no
// incremental persistence.
package store

import (
	"context"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// Store is the persistence boundary used by the catalog.
type Store interface {
	// ReadAll returns every persisted record. It fails with a NotFoundError
	// when nothing has been persisted yet and with a ParseError when the
	// persisted content cannot be decoded.
	ReadAll(ctx context.Context) (Records, error)

	// WriteAll replaces the persisted content with records.
	WriteAll(ctx context.Context, records Records) error

	// Reset replaces the persisted content with an empty catalog.
	Reset(ctx context.Context) error
}

// Quarantiner is implemented by stores that can set malformed content
// aside before it is reset.
type Quarantiner interface {
	// Quarantine moves the current content out of the way and returns
	// where it went.
	Quarantine(ctx context.Context) (string, error)
}

// Record is the persisted form of a single book.
type Record struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   Text   `json:"year"`
	Status string `json:"status"`
}

// Records maps book identifiers to their persisted form.
type Records map[string]Record

// Clone returns a copy of r that shares no state with it.
func (r Records) Clone() Records {
	out := make(Records, len(r))
	for id, rec := range r {
		out[id] = rec
	}
	return out
}

// Text is a string that also decodes from a bare JSON number, so catalog
// files written by hand with "year": 1965 still load.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := jsoniter.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n jsoniter.Number
	if err := jsoniter.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(string(n), 64); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}
