// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds global common flags across all commands.
type Flags struct {
	Format    string
	Quiet     bool
	Verbose   bool
	NoColor   bool
	LogLevel  string
	LogFormat string
}

// AddFlags registers the shared flags on a flag set, usually the root
// command's persistent flags.
func AddFlags(fs *pflag.FlagSet) *Flags {
	flags := &Flags{}

	fs.StringVar(&flags.Format, "format", "",
		"Output format: table, json, yaml, csv")

	fs.BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Minimal output")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Verbose output")
	fs.BoolVar(&flags.NoColor, "no-color", false,
		"Disable colored output")
	fs.StringVar(&flags.LogLevel, "log-level", "",
		"Log level: trace, debug, info, warn, error")
	fs.StringVar(&flags.LogFormat, "log-format", "",
		"Log format: console, json, auto")

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
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")
	logLevel, _ := root.PersistentFlags().GetString("log-level")
	logFormat, _ := root.PersistentFlags().GetString("log-format")

	return &Flags{
		Format:    format,
		Quiet:     quiet,
		Verbose:   verbose,
		NoColor:   noColor,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}, nil
}
