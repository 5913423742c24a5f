// Package main provides the entry point for the tabfuse CLI tool.
package main

import (
	"github.com/tabfuse/tabfuse/cmd/tabfuse/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
