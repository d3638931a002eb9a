package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bookshelf/internal/appcontext"
	"github.com/agentstation/bookshelf/pkg/store"
)

func runSession(t *testing.T, seed store.Records, input ...string) (string, *store.Memory) {
	t.Helper()
	cat, mem, err := appcontext.NewMemoryCatalog(context.Background(), seed)
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	require.NoError(t, Run(context.Background(), appcontext.NewMockWithCatalog(cat), in, &out))
	return out.String(), mem
}

func TestShellScenario(t *testing.T) {
	out, mem := runSession(t, store.Records{},
		ChoiceAdd, "Dune", "Frank Herbert", "1965",
		ChoiceAdd, "1984", "George Orwell", "1949",
		ChoiceList,
		ChoiceStatus, "1", "2",
		ChoiceRemove, "2",
		ChoiceSearch, "Dune",
		ChoiceExit,
	)

	for _, want := range []string{
		"Added with ID 1",
		"Added with ID 2",
		" ID: 1 Title: Dune, author: Frank Herbert, year: 1965, status: available",
		" ID: 2 Title: 1984",
		"You chose ID: 1 and status: checked-out",
		"Status changed",
		"Removed",
		"Books found:",
		"Title: Dune, author: Frank Herbert, year: 1965, status: checked-out",
		"Goodbye.",
	} {
		assert.Contains(t, out, want)
	}

	records, err := mem.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "checked-out", records["1"].Status)
}

func TestShellRecoverableErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"empty title", []string{ChoiceAdd, "", "Frank Herbert", "1965"}, "enter a title"},
		{"bad year", []string{ChoiceAdd, "Dune", "Frank Herbert", "65"}, "year is invalid"},
		{"numeric author", []string{ChoiceAdd, "Dune", "1965", "1965"}, "author name must not be empty or purely numeric"},
		{"unknown id on remove", []string{ChoiceRemove, "9"}, "book with ID 9 not found"},
		{"unknown id on status", []string{ChoiceStatus, "9", "1"}, "book with ID 9 not found"},
		{"non-numeric id", []string{ChoiceStatus, "abc"}, "Invalid ID. Please enter a number."},
		{"bad status choice", []string{ChoiceStatus, "1", "3"}, "No such choice. Choose 1 or 2"},
		{"bad menu choice", []string{"9"}, "Choose 1-6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append(tt.input, ChoiceExit)
			out, _ := runSession(t, store.Records{}, input...)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Goodbye.")
		})
	}
}

func TestShellEmptyCatalog(t *testing.T) {
	out, _ := runSession(t, store.Records{}, ChoiceList, ChoiceSearch, "Dune", ChoiceExit)
	assert.Contains(t, out, "No books yet")
	assert.Contains(t, out, "The catalog is empty")
	assert.NotContains(t, out, "No books found.")
}

func TestShellSearchNoMatch(t *testing.T) {
	seed := store.Records{"1": {Title: "Dune", Author: "Frank Herbert", Year: "1965", Status: "available"}}
	out, _ := runSession(t, seed, ChoiceSearch, "Emma", ChoiceExit)
	assert.Contains(t, out, "No books found.")
	assert.NotContains(t, out, "The catalog is empty")
}

func TestShellEndOfInput(t *testing.T) {
	out, mem := runSession(t, store.Records{}, ChoiceList)
	assert.NotContains(t, out, "Goodbye.")
	assert.Zero(t, mem.Writes())
}

func TestShellCanceled(t *testing.T) {
	cat, _, err := appcontext.NewMemoryCatalog(context.Background(), store.Records{})
	require.NoError(t, err)

	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, appcontext.NewMockWithCatalog(cat), r, io.Discard)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shell did not stop after cancel")
	}
}
