// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import "github.com/spf13/cobra"

// Flags holds global common flags across all commands.
type Flags struct {
	Format  string
	File    string
	Quiet   bool
	Verbose bool
	NoColor bool
	DryRun  bool
}

// AddFlags adds common flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.PersistentFlags().StringVarP(&flags.Format, "format", "o", "",
		"Output format: table, json, yaml")
	cmd.PersistentFlags().StringVarP(&flags.File, "file", "f", "",
		"Catalog file (default is books.json)")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Minimal output")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Verbose output")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"Disable colored output")
	cmd.PersistentFlags().BoolVar(&flags.DryRun, "dry-run", false,
		"Work on an in-memory copy of the catalog without saving changes")

	return flags
}

// Parse extracts global flags from the command hierarchy.
// This is useful for subcommands that need to access global flags when
// they weren't passed the flags struct directly.
func Parse(cmd *cobra.Command) (*Flags, error) {
	// Walk up the command hierarchy to find persistent flags
	root := cmd
	for root.Parent() != nil {
		root = root.Parent()
	}

	format, _ := root.PersistentFlags().GetString("format")
	file, _ := root.PersistentFlags().GetString("file")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")
	dryRun, _ := root.PersistentFlags().GetBool("dry-run")

	return &Flags{
		Format:  format,
		File:    file,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
		DryRun:  dryRun,
	}, nil
}
