package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/catalog"
	"github.com/agentstation/bookshelf/pkg/store"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	CatalogFunc      func(context.Context) (*catalog.Catalog, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// NewMockWithCatalog returns a Mock whose Catalog always yields cat.
func NewMockWithCatalog(cat *catalog.Catalog) *Mock {
	return &Mock{
		CatalogFunc: func(context.Context) (*catalog.Catalog, error) {
			return cat, nil
		},
	}
}

// NewMemoryCatalog returns a loaded catalog backed by an in-memory store
// seeded with records.
func NewMemoryCatalog(ctx context.Context, records store.Records) (*catalog.Catalog, *store.Memory, error) {
	mem := store.NewMemory(records)
	logger := zerolog.Nop()
	cat, err := catalog.New(mem, catalog.WithLogger(&logger))
	if err != nil {
		return nil, nil, err
	}
	if err := cat.Load(ctx); err != nil {
		return nil, nil, err
	}
	return cat, mem, nil
}

// Catalog returns a catalog using the mock function or nil.
func (m *Mock) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	if m.CatalogFunc != nil {
		return m.CatalogFunc(ctx)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
