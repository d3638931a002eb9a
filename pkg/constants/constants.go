// Package constants provides shared constants used throughout the bookshelf codebase.
// This includes file permissions, validation bounds, and default paths that
// should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Validation bounds for book records
const (
	// MinYear is the earliest accepted publication year
	MinYear = 1500

	// MaxYear is the latest accepted publication year
	MaxYear = 3000
)

// Timeout constants
const (
	// ShutdownTimeout bounds graceful shutdown after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Path constants
const (
	// DefaultCatalogFile is the catalog file used when none is configured
	DefaultCatalogFile = "books.json"

	// ConfigFileName is the config file name searched in $HOME and the working directory
	ConfigFileName = ".bookshelf"

	// EnvPrefix is the prefix for environment variables read by viper
	EnvPrefix = "BOOKSHELF"

	// CorruptSuffix is appended to a catalog file that failed to decode
	CorruptSuffix = ".corrupt"
)

// JSON layout of the catalog file
const (
	// JSONIndent is the indentation used when writing the catalog file
	JSONIndent = "    "
)
