// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success represents successful completion of an operation.
	// Used for: added, removed and updated books.
	Success = "✓"

	// Error represents failures or rejected input.
	// Used for: validation errors, unknown identifiers.
	Error = "✗"

	// Warning represents non-critical issues.
	// Used for: dry-run notices, invalid menu choices.
	Warning = "!"

	// Info represents informational messages.
	// Used for: empty catalog, no search results.
	Info = "i"
)
