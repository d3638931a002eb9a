package store

import (
	"context"
	"sync"

	"github.com/agentstation/bookshelf/pkg/errors"
)

var _ Store = (*Memory)(nil)

// Memory is a Store that keeps the catalog in process memory.
// It backs --dry-run and tests.
type Memory struct {
	mu      sync.Mutex
	records Records
	exists  bool
	writes  int
}

// NewMemory creates a memory store holding a copy of seed.
// A nil seed behaves like a catalog file that does not exist yet.
func NewMemory(seed Records) *Memory {
	m := &Memory{}
	if seed != nil {
		m.records = seed.Clone()
		m.exists = true
	}
	return m
}

// ReadAll returns a copy of the stored records.
func (m *Memory) ReadAll(ctx context.Context) (Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.exists {
		return nil, errors.NewNotFoundError("catalog file", "memory")
	}
	return m.records.Clone(), nil
}

// WriteAll replaces the stored records with a copy of records.
func (m *Memory) WriteAll(ctx context.Context, records Records) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = records.Clone()
	m.exists = true
	m.writes++
	return nil
}

// Reset empties the store.
func (m *Memory) Reset(ctx context.Context) error {
	return m.WriteAll(ctx, Records{})
}

// Writes reports how many times the content has been replaced.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
