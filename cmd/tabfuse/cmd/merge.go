package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabfuse/tabfuse"
	"github.com/tabfuse/tabfuse/internal/cmd/output"
	"github.com/tabfuse/tabfuse/internal/cmd/table"
	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/pkg/merge"
)

var (
	mergeStrict    bool
	mergeDryRun    bool
	mergeOutput    string
	mergeUnmatched string
	mergeReport    string
	mergeWatch     bool
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:     "merge",
	Short:   "Merge the configured sources into one output table",
	GroupID: "core",
	Long: `Merge reads every source listed in the config file, in priority order,
and writes the merged table.

The command will:
1. Load and validate the config file
2. Open every source with its configured encoding and delimiter
3. Seed the output table from the first source
4. Fill empty cells (or append rows) from each later source
5. Write the merged table, unmatched rows, and optional report

With --watch the command keeps running and re-merges whenever the
config file or a source file changes.`,
	Example: `  tabfuse merge
  tabfuse merge -c configs/staging.yaml
  tabfuse merge --strict --unmatched leftovers.csv
  tabfuse merge -o /tmp/merged.csv --dry-run
  tabfuse merge --watch --report report.md`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().BoolVar(&mergeStrict, "strict", false, "Route non-matching rows of later sources to the unmatched table")
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "Run the merge without writing any output file")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Merged output file (overrides the config)")
	mergeCmd.Flags().StringVar(&mergeUnmatched, "unmatched", "", "Unmatched rows file (overrides the config)")
	mergeCmd.Flags().StringVar(&mergeReport, "report", "", "Markdown report file (overrides the config)")
	mergeCmd.Flags().BoolVarP(&mergeWatch, "watch", "w", false, "Keep running and re-merge on file changes")
}

func runMerge(cmd *cobra.Command, _ []string) error {
	opts := []tabfuse.Option{
		tabfuse.WithConfigFile(configPath()),
	}
	// --strict is an override, not a default: only pass it through when
	// the flag was actually set so the config value stays in charge.
	if cmd.Flags().Changed("strict") {
		opts = append(opts, tabfuse.WithStrict(mergeStrict))
	}
	if mergeDryRun {
		opts = append(opts, tabfuse.WithDryRun(true))
	}
	if mergeOutput != "" {
		opts = append(opts, tabfuse.WithOutputPath(mergeOutput))
	} else if env := config.GetString(config.EnvOutputFile); env != "" {
		opts = append(opts, tabfuse.WithOutputPath(env))
	}
	if mergeUnmatched != "" {
		opts = append(opts, tabfuse.WithUnmatchedPath(mergeUnmatched))
	}
	if mergeReport != "" {
		opts = append(opts, tabfuse.WithReportPath(mergeReport))
	}

	runner, err := tabfuse.New(opts...)
	if err != nil {
		return err
	}

	if mergeWatch {
		err := runner.Watch(cmd.Context())
		if errors.Is(err, context.Canceled) {
			// Ctrl-C is how a watch session ends, not a failure.
			return nil
		}
		return err
	}

	result, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	return printResult(result)
}

// printResult renders the per-source statistics in the selected output
// format, followed by a one-line summary.
func printResult(result *merge.Result) error {
	format := output.Format(globalFlags.Format)
	formatter := output.NewFormatter(format)

	switch format {
	case output.FormatJSON, output.FormatYAML:
		return formatter.Format(os.Stdout, result)
	default:
		if err := formatter.Format(os.Stdout, table.ResultToTableData(result)); err != nil {
			return err
		}
		if !globalFlags.Quiet && format == output.FormatTable {
			fmt.Println(result.Summary())
		}
		return nil
	}
}
