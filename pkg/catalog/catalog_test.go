package catalog_test

import (
	"context"
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/agentstation/bookshelf/pkg/catalog"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
	"github.com/agentstation/bookshelf/pkg/store"
)

// failingStore reads like a normal store but refuses writes once armed.
type failingStore struct {
	*store.Memory
	failWrites bool
}

func (f *failingStore) WriteAll(ctx context.Context, records store.Records) error {
	if f.failWrites {
		return errors.NewIOError("write", "books.json", fmt.Errorf("read-only file system"))
	}
	return f.Memory.WriteAll(ctx, records)
}

func (f *failingStore) Reset(ctx context.Context) error {
	return f.WriteAll(ctx, store.Records{})
}

func newLoaded(t *testing.T, seed store.Records) (*catalog.Catalog, *store.Memory) {
	t.Helper()
	mem := store.NewMemory(seed)
	cat, err := catalog.New(mem, catalog.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	require.NoError(t, cat.Load(context.Background()))
	return cat, mem
}

func TestNewRequiresStore(t *testing.T) {
	_, err := catalog.New(nil)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestMutationsBeforeLoad(t *testing.T) {
	cat, err := catalog.New(store.NewMemory(nil))
	require.NoError(t, err)
	ctx := context.Background()

	assert.False(t, cat.Loaded())
	_, err = cat.Add(ctx, "Dune", "Frank Herbert", "1965")
	assert.ErrorIs(t, err, errors.ErrNotLoaded)
	_, err = cat.Remove(ctx, "1")
	assert.ErrorIs(t, err, errors.ErrNotLoaded)
	_, err = cat.ChangeStatus(ctx, 1, catalog.StatusCheckedOut)
	assert.ErrorIs(t, err, errors.ErrNotLoaded)
}

func TestLoadMissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := store.NewJSONFile("/books.json", store.WithFs(fsys), store.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	cat, err := catalog.New(s, catalog.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cat.Load(ctx))
	assert.True(t, cat.Loaded())
	assert.Zero(t, cat.Len())

	records, err := s.ReadAll(ctx)
	require.NoError(t, err, "the file is created by Load")
	assert.Empty(t, records)
}

func TestLoadMalformedFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/books.json", []byte(`{"1": {"title": `), 0644))
	s, err := store.NewJSONFile("/books.json", store.WithFs(fsys), store.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	testLogger := logging.NewTestLogger(t)
	cat, err := catalog.New(s, catalog.WithLogger(testLogger.Logger))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cat.Load(ctx))
	assert.Zero(t, cat.Len())
	testLogger.AssertContains(t, "unreadable")

	records, err := s.ReadAll(ctx)
	require.NoError(t, err, "the malformed file is reset")
	assert.Empty(t, records)

	backup, err := afero.ReadFile(fsys, "/books.json.corrupt")
	require.NoError(t, err, "the malformed content is kept aside")
	assert.Equal(t, `{"1": {"title": `, string(backup))
}

func TestLoadAdoptsRecordsAsIs(t *testing.T) {
	cat, _ := newLoaded(t, store.Records{
		"3": {Title: "", Author: "42", Year: "99", Status: "lost"},
		"7": {Title: "Dune", Author: "Frank Herbert", Year: "1965", Status: "available"},
	})

	assert.Equal(t, 2, cat.Len())
	entries := cat.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "3", entries[0].ID)
	assert.Equal(t, catalog.Status("lost"), entries[0].Status)

	// New identifiers continue after the highest loaded one.
	entry, err := cat.Add(context.Background(), "Emma", "Jane Austen", "1815")
	require.NoError(t, err)
	assert.Equal(t, "8", entry.ID)
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		author  string
		year    string
		field   string
		message string
	}{
		{"empty title", "", "A", "2000", "title", catalog.MsgTitleRequired},
		{"numeric author", "T", "123", "2000", "author", catalog.MsgAuthorInvalid},
		{"empty author", "T", "", "2000", "author", catalog.MsgAuthorInvalid},
		{"year out of range", "T", "A", "23569", "year", catalog.MsgYearInvalid},
		{"year too early", "T", "A", "1499", "year", catalog.MsgYearInvalid},
		{"year not digits", "T", "A", "19x5", "year", catalog.MsgYearInvalid},
		{"title checked before year", "", "A", "abc", "title", catalog.MsgTitleRequired},
		{"year checked before author", "T", "123", "abc", "year", catalog.MsgYearInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, mem := newLoaded(t, store.Records{})
			writes := mem.Writes()

			entry, err := cat.Add(context.Background(), tt.title, tt.author, tt.year)
			require.Error(t, err)
			assert.Equal(t, catalog.Entry{}, entry)
			assert.True(t, errors.IsValidationError(err))

			var vErr *errors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, tt.message, vErr.Error())

			assert.Zero(t, cat.Len())
			assert.Equal(t, writes, mem.Writes(), "rejected input is not persisted")
		})
	}
}

func TestAddEchoesInput(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		title := rapid.StringMatching(`.+`).Draw(rt, "title")
		author := rapid.StringMatching(`[A-Za-zА-я .'-]*[A-Za-zА-я][A-Za-zА-я .'-]*`).Draw(rt, "author")
		year := fmt.Sprint(rapid.IntRange(1500, 3000).Draw(rt, "year"))

		mem := store.NewMemory(nil)
		cat, err := catalog.New(mem, catalog.WithLogger(logging.NewNopLogger()))
		if err != nil {
			rt.Fatal(err)
		}
		ctx := context.Background()
		if err := cat.Load(ctx); err != nil {
			rt.Fatal(err)
		}

		entry, err := cat.Add(ctx, title, author, year)
		if err != nil {
			rt.Fatalf("Add(%q, %q, %q): %v", title, author, year, err)
		}
		want := catalog.Book{Title: title, Author: author, Year: year, Status: catalog.StatusAvailable}
		if entry.Book() != want {
			rt.Fatalf("got %+v, want %+v", entry.Book(), want)
		}

		records, err := mem.ReadAll(ctx)
		if err != nil {
			rt.Fatal(err)
		}
		if records[entry.ID].Title != title {
			rt.Fatalf("record %s not persisted", entry.ID)
		}
	})
}

func TestRemoveUnknown(t *testing.T) {
	cat, mem := newLoaded(t, store.Records{
		"1": {Title: "Dune", Author: "Frank Herbert", Year: "1965", Status: "available"},
	})

	book, err := cat.Remove(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, catalog.Book{}, book)
	assert.Equal(t, 1, cat.Len())
	assert.Zero(t, mem.Writes())
}

func TestChangeStatusUnknown(t *testing.T) {
	cat, _ := newLoaded(t, store.Records{})

	_, err := cat.ChangeStatus(context.Background(), 5, catalog.StatusCheckedOut)
	var nf *errors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "5", nf.ID)
}

func TestChangeStatusAcceptsAnyText(t *testing.T) {
	cat, mem := newLoaded(t, store.Records{})
	ctx := context.Background()

	_, err := cat.Add(ctx, "Test Book", "Test Author", "2021")
	require.NoError(t, err)

	book, err := cat.ChangeStatus(ctx, 1, "Checked Out")
	require.NoError(t, err)
	assert.Equal(t, catalog.Status("Checked Out"), book.Status)

	records, err := mem.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Checked Out", records["1"].Status)
}

func TestSearch(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		cat, _ := newLoaded(t, nil)
		results, ok := cat.Search("Dune")
		assert.False(t, ok)
		assert.Nil(t, results)
	})

	cat, mem := newLoaded(t, store.Records{
		"1": {Title: "Dune", Author: "Frank Herbert", Year: "1965", Status: "available"},
		"2": {Title: "1984", Author: "George Orwell", Year: "1949", Status: "available"},
		"3": {Title: "Animal Farm", Author: "George Orwell", Year: "1945", Status: "checked-out"},
	})

	tests := []struct {
		term string
		want []string
	}{
		{"Dune", []string{"1"}},
		{"George", []string{"2", "3"}},
		{"1949", []string{"2"}},
		{"194", []string{}}, // years match exactly, not as substrings
		{"19", []string{"2"}},
		{"dune", []string{}}, // case-sensitive
		{"Tolkien", []string{}},
		{"", []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			results, ok := cat.Search(tt.term)
			require.True(t, ok)
			require.NotNil(t, results)

			ids := make([]string, 0, len(results))
			for _, e := range results {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Zero(t, mem.Writes(), "search never writes")
}

func TestListEmpty(t *testing.T) {
	cat, _ := newLoaded(t, nil)
	entries := cat.List()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestDuneAnd1984(t *testing.T) {
	cat, mem := newLoaded(t, nil)
	ctx := context.Background()

	dune, err := cat.Add(ctx, "Dune", "Frank Herbert", "1965")
	require.NoError(t, err)
	orwell, err := cat.Add(ctx, "1984", "George Orwell", "1949")
	require.NoError(t, err)
	assert.Equal(t, "1", dune.ID)
	assert.Equal(t, "2", orwell.ID)

	entries := cat.List()
	require.Len(t, entries, 2)
	assert.Equal(t, dune, entries[0])
	assert.Equal(t, orwell, entries[1])

	updated, err := cat.ChangeStatus(ctx, 1, catalog.StatusCheckedOut)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusCheckedOut, updated.Status)

	entries = cat.List()
	assert.Equal(t, catalog.StatusCheckedOut, entries[0].Status)
	assert.Equal(t, catalog.StatusAvailable, entries[1].Status)

	removed, err := cat.Remove(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "1984", removed.Title)

	entries = cat.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "Dune", entries[0].Title)

	records, err := mem.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Records{
		"1": {Title: "Dune", Author: "Frank Herbert", Year: "1965", Status: "checked-out"},
	}, records)
}

func TestIdentifiersAreNeverReused(t *testing.T) {
	cat, _ := newLoaded(t, nil)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := cat.Add(ctx, title, "Author", "2000")
		require.NoError(t, err)
	}

	_, err := cat.Remove(ctx, "1")
	require.NoError(t, err)

	// Counting entries would hand out "3" again and overwrite "C".
	entry, err := cat.Add(ctx, "D", "Author", "2000")
	require.NoError(t, err)
	assert.Equal(t, "4", entry.ID)

	titles := map[string]string{}
	for _, e := range cat.List() {
		titles[e.ID] = e.Title
	}
	assert.Equal(t, map[string]string{"2": "B", "3": "C", "4": "D"}, titles)
}

func TestPersistFailureRollsBack(t *testing.T) {
	fs := &failingStore{Memory: store.NewMemory(nil)}
	cat, err := catalog.New(fs, catalog.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, cat.Load(ctx))

	_, err = cat.Add(ctx, "Dune", "Frank Herbert", "1965")
	require.NoError(t, err)

	fs.failWrites = true

	_, err = cat.Add(ctx, "Emma", "Jane Austen", "1815")
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, 1, cat.Len())

	_, err = cat.Remove(ctx, "1")
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, 1, cat.Len())

	_, err = cat.ChangeStatus(ctx, 1, catalog.StatusCheckedOut)
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, catalog.StatusAvailable, cat.List()[0].Status)

	fs.failWrites = false
	entry, err := cat.Add(ctx, "Emma", "Jane Austen", "1815")
	require.NoError(t, err)
	assert.Equal(t, "2", entry.ID, "a failed add does not consume an identifier")
}

func TestLoadPropagatesReadErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cat, err := catalog.New(store.NewMemory(nil), catalog.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	err = cat.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, cat.Loaded())
}

func TestAddInvalidUTF8SurvivesReload(t *testing.T) {
	fsys := afero.NewMemMapFs()
	open := func() *catalog.Catalog {
		s, err := store.NewJSONFile("/books.json", store.WithFs(fsys), store.WithLogger(logging.NewNopLogger()))
		require.NoError(t, err)
		cat, err := catalog.New(s, catalog.WithLogger(logging.NewNopLogger()))
		require.NoError(t, err)
		require.NoError(t, cat.Load(context.Background()))
		return cat
	}

	entry, err := open().Add(context.Background(), "Bad\xffTitle", "Au\xc3thor", "1965")
	require.NoError(t, err)
	assert.Equal(t, "Bad\uFFFDTitle", entry.Title)
	assert.Equal(t, "Au\uFFFDthor", entry.Author)

	data, err := afero.ReadFile(fsys, "/books.json")
	require.NoError(t, err)
	assert.True(t, utf8.Valid(data))

	assert.Equal(t, []catalog.Entry{entry}, open().List())
}

func TestLoggingPrefersContextLogger(t *testing.T) {
	own := logging.NewTestLogger(t)
	cat, err := catalog.New(store.NewMemory(nil), catalog.WithLogger(own.Logger))
	require.NoError(t, err)
	require.NoError(t, cat.Load(context.Background()))

	_, err = cat.Add(context.Background(), "Dune", "Frank Herbert", "1965")
	require.NoError(t, err)
	own.AssertContains(t, `"book_id":"1"`)

	carried := logging.NewTestLogger(t)
	ctx := logging.WithOperation(logging.WithLogger(context.Background(), carried.Logger), "remove")
	_, err = cat.Remove(ctx, "1")
	require.NoError(t, err)

	carried.AssertContains(t, `"operation":"remove"`)
	carried.AssertContains(t, `"book_id":"1"`)
	own.AssertNotContains(t, "Book removed")
}
