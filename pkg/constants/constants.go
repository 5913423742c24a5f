// Package constants provides shared constants used throughout the tabfuse codebase.
// This includes file permissions, default file names, and other configuration
// values that should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default values
const (
	// DefaultConfigFile is the config file looked up when none is specified
	DefaultConfigFile = "tabfuse.yaml"

	// DefaultOutputFile is the merged output path when none is configured
	DefaultOutputFile = "output.csv"

	// DefaultDialect is the CSV output dialect when none is configured
	DefaultDialect = "unix"

	// DefaultEncoding is the source text encoding when none is configured
	DefaultEncoding = "utf-8"

	// DefaultPreviewRows is the number of records shown by inspect previews
	DefaultPreviewRows = 10
)

// Watch constants
const (
	// WatchDebounce is how long to coalesce file events before re-merging
	WatchDebounce = 500 * time.Millisecond

	// MergeContextTimeout is the timeout for each watch-triggered merge run
	MergeContextTimeout = 5 * time.Minute
)
