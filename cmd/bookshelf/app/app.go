// Package app provides the application context and dependency management
// for the bookshelf CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/pkg/catalog"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/store"
)

// App represents the bookshelf application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the catalog instance, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Streams for the root command; nil means the process streams
	in  io.Reader
	out io.Writer

	// Catalog instance (lazy-initialized, singleton)
	mu      sync.Mutex
	store   store.Store
	catalog *catalog.Catalog
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format, falling back to
// terminal detection when none was given.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Catalog returns the loaded catalog, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.catalog != nil {
		return a.catalog, nil
	}

	if a.store == nil {
		s, err := a.buildStore(ctx)
		if err != nil {
			return nil, err
		}
		a.store = s
	}

	cat, err := catalog.New(a.store, catalog.WithLogger(a.logger))
	if err != nil {
		return nil, errors.WrapResource("create", "catalog", "", err)
	}
	if err := cat.Load(ctx); err != nil {
		return nil, err
	}

	a.catalog = cat
	return cat, nil
}

// buildStore opens the configured catalog file. In dry-run mode the file
// is read once and the catalog works on an in-memory copy.
func (a *App) buildStore(ctx context.Context) (store.Store, error) {
	file, err := store.NewJSONFile(a.config.File, store.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if !a.config.DryRun {
		return file, nil
	}

	records, err := file.ReadAll(ctx)
	switch {
	case err == nil:
		a.logger.Debug().Str("path", file.Path()).Int("books", len(records)).Msg("Dry run, changes will not be saved")
		return store.NewMemory(records), nil
	case errors.IsNotFound(err), errors.IsParseError(err):
		a.logger.Debug().Err(err).Msg("Dry run on an empty catalog")
		return store.NewMemory(nil), nil
	default:
		return nil, err
	}
}

// Shutdown performs graceful shutdown of the application.
// Every catalog mutation is already persisted, so this only releases
// the cached catalog.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.catalog != nil {
		a.logger.Debug().Int("books", a.catalog.Len()).Msg("Shutting down")
	}
	a.catalog = nil
	return ctx.Err()
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets the store the catalog is loaded from (useful for testing).
func WithStore(s store.Store) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}

// WithStreams sets the input and output streams used by commands.
func WithStreams(in io.Reader, out io.Writer) Option {
	return func(a *App) error {
		a.in = in
		a.out = out
		return nil
	}
}
