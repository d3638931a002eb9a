// Package catalog manages the in-memory book catalog and keeps it in sync
// with a store.Store.
//
// The catalog is loaded once with Load. Every mutating operation (Add,
// Remove, ChangeStatus) updates memory and then rewrites the whole store;
// List and Search never touch the store.
//
//	s, _ := store.NewJSONFile("books.json")
//	cat, _ := catalog.New(s)
//	if err := cat.Load(ctx); err != nil {
//	    return err
//	}
//	entry, err := cat.Add(ctx, "Dune", "Frank Herbert", "1965")
package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
	"github.com/agentstation/bookshelf/pkg/store"
)

// Catalog maps identifiers to books.
type Catalog struct {
	mu     sync.RWMutex
	store  store.Store
	logger *zerolog.Logger

	books  map[string]Book
	nextID int
	loaded bool
}

// Option is a function that configures a Catalog.
type Option func(*Catalog) error

// WithLogger sets the logger used by the catalog.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Catalog) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// New creates an empty, unloaded catalog persisted through s.
func New(s store.Store, opts ...Option) (*Catalog, error) {
	if s == nil {
		return nil, errors.NewConfigError("catalog", "store is required", nil)
	}

	c := &Catalog{
		store:  s,
		logger: logging.Default(),
		books:  make(map[string]Book),
		nextID: 1,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Load reads the catalog from the store, replacing anything in memory.
//
// A missing file starts an empty catalog and creates the file. A malformed
// file also starts an empty catalog; the unreadable content is moved aside
// (when the store supports it) and the file is reset so the corruption does
// not survive a crash before the next write.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.store.ReadAll(ctx)
	switch {
	case err == nil:
	case errors.IsNotFound(err):
		c.log(ctx).Debug().Err(err).Msg("No catalog file yet, creating an empty one")
		if err := c.store.Reset(ctx); err != nil {
			return errors.WrapResource("load", "catalog", "", err)
		}
		records = store.Records{}
	case errors.IsParseError(err):
		c.log(ctx).Warn().Err(err).Msg("Catalog file is unreadable, starting with an empty catalog")
		if q, ok := c.store.(store.Quarantiner); ok {
			if _, qerr := q.Quarantine(ctx); qerr != nil {
				return errors.WrapResource("load", "catalog", "", qerr)
			}
		}
		if err := c.store.Reset(ctx); err != nil {
			return errors.WrapResource("load", "catalog", "", err)
		}
		records = store.Records{}
	default:
		return errors.WrapResource("load", "catalog", "", err)
	}

	c.books = make(map[string]Book, len(records))
	c.nextID = 1
	for id, rec := range records {
		c.books[id] = bookFromRecord(rec)
		if n, err := strconv.Atoi(id); err == nil && n >= c.nextID {
			c.nextID = n + 1
		}
	}
	c.loaded = true

	c.log(ctx).Debug().
		Int("books", len(c.books)).
		Int("next_id", c.nextID).
		Msg("Catalog loaded")

	return nil
}

// Loaded reports whether Load has completed successfully.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// Add validates a new book, stores it as available under the next free
// identifier and persists the catalog.
//
// Validation stops at the first failure, checking title, then year, then
// author, and returns a *errors.ValidationError. Invalid UTF-8 sequences are
// replaced with U+FFFD so the stored book reads back unchanged.
func (c *Catalog) Add(ctx context.Context, title, author, year string) (Entry, error) {
	title, author, year = validText(title), validText(author), validText(year)
	if err := validateNew(title, author, year); err != nil {
		return Entry{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return Entry{}, errors.ErrNotLoaded
	}

	id := strconv.Itoa(c.nextID)
	book := Book{
		Title:  title,
		Author: author,
		Year:   year,
		Status: StatusAvailable,
	}

	c.books[id] = book
	c.nextID++

	if err := c.persist(ctx); err != nil {
		delete(c.books, id)
		c.nextID--
		return Entry{}, errors.WrapResource("add", "book", id, err)
	}

	c.bookLog(ctx, id).Info().Str("title", title).Msg("Book added")
	return newEntry(id, book), nil
}

// Remove deletes the book with the given identifier, persists the catalog
// and returns the removed book. An unknown identifier yields a
// *errors.NotFoundError and leaves the catalog unchanged.
func (c *Catalog) Remove(ctx context.Context, id string) (Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return Book{}, errors.ErrNotLoaded
	}

	book, ok := c.books[id]
	if !ok {
		return Book{}, errors.NewNotFoundError("book", id)
	}

	delete(c.books, id)
	if err := c.persist(ctx); err != nil {
		c.books[id] = book
		return Book{}, errors.WrapResource("remove", "book", id, err)
	}

	c.bookLog(ctx, id).Info().Msg("Book removed")
	return book, nil
}

// ChangeStatus overwrites the status of the book with the given identifier,
// persists the catalog and returns the updated book. Any status text is
// accepted. An unknown identifier yields a *errors.NotFoundError.
func (c *Catalog) ChangeStatus(ctx context.Context, id int, status Status) (Book, error) {
	key := strconv.Itoa(id)
	status = Status(validText(string(status)))

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return Book{}, errors.ErrNotLoaded
	}

	book, ok := c.books[key]
	if !ok {
		return Book{}, errors.NewNotFoundError("book", key)
	}

	previous := book
	book.Status = status
	c.books[key] = book

	if err := c.persist(ctx); err != nil {
		c.books[key] = previous
		return Book{}, errors.WrapResource("update", "book", key, err)
	}

	c.bookLog(ctx, key).Info().
		Str("status", string(status)).
		Msg("Book status changed")

	return book, nil
}

// List returns every book with its identifier, ordered by identifier.
// An empty catalog yields an empty, non-nil slice.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.books))
	for id, book := range c.books {
		entries = append(entries, newEntry(id, book))
	}
	sortEntries(entries)
	return entries
}

// Search returns the books whose title or author contains term, or whose
// year equals term. Matching is case-sensitive.
//
// ok is false when the catalog is empty, which callers report differently
// from a search that matched nothing (ok true, empty slice).
func (c *Catalog) Search(term string) (results []Entry, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.books) == 0 {
		return nil, false
	}

	results = []Entry{}
	for id, book := range c.books {
		if strings.Contains(book.Title, term) ||
			strings.Contains(book.Author, term) ||
			book.Year == term {
			results = append(results, newEntry(id, book))
		}
	}
	sortEntries(results)
	return results, true
}

// persist writes the whole catalog to the store. Callers hold c.mu.
func (c *Catalog) persist(ctx context.Context) error {
	records := make(store.Records, len(c.books))
	for id, book := range c.books {
		records[id] = book.record()
	}
	return c.store.WriteAll(ctx, records)
}

// log prefers the logger carried by ctx, which holds per-command fields.
func (c *Catalog) log(ctx context.Context) *zerolog.Logger {
	if logger, ok := logging.Attached(ctx); ok {
		return logger
	}
	return c.logger
}

func (c *Catalog) bookLog(ctx context.Context, id string) *zerolog.Logger {
	ctx = logging.WithBookID(logging.WithLogger(ctx, c.log(ctx)), id)
	return logging.FromContext(ctx)
}

func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// sortEntries orders numeric identifiers numerically, ahead of any
// non-numeric ones, which sort lexically.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, aErr := strconv.Atoi(entries[i].ID)
		b, bErr := strconv.Atoi(entries[j].ID)
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return entries[i].ID < entries[j].ID
		}
	})
}
