package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabfuse/tabfuse/internal/cmd/output"
	"github.com/tabfuse/tabfuse/internal/cmd/table"
	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/internal/csvio"
	"github.com/tabfuse/tabfuse/pkg/constants"
)

var inspectRows int

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:     "inspect [source]",
	Short:   "Show configured sources or preview one source's data",
	GroupID: "core",
	Long: `Inspect shows what a merge run would consume, without merging.

Without arguments it lists every configured source with its column
mappings. With a source name it opens that file the same way the merge
would (encoding, delimiter, header row, ignored rows) and prints the
first data records.`,
	Example: `  tabfuse inspect
  tabfuse inspect payroll
  tabfuse inspect badges --rows 25
  tabfuse inspect --format json`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeSourceNames,
	RunE:              runInspect,
}

// completeSourceNames offers configured source names for shell completion.
func completeSourceNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return cfg.SourceNames(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVar(&inspectRows, "rows", constants.DefaultPreviewRows, "Number of data rows to preview")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return err
	}

	format := output.Format(globalFlags.Format)
	formatter := output.NewFormatter(format)

	if len(args) == 0 {
		switch format {
		case output.FormatJSON, output.FormatYAML:
			return formatter.Format(os.Stdout, cfg)
		default:
			return formatter.Format(os.Stdout, table.SourcesToTableData(cfg))
		}
	}

	name := args[0]
	src, ok := cfg.SourceByName(name)
	if !ok {
		return fmt.Errorf("unknown source %q, config has: %s",
			name, strings.Join(cfg.SourceNames(), ", "))
	}

	opts, err := src.ReaderOptions()
	if err != nil {
		return err
	}
	reader, err := csvio.Open(src.Path, opts)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	headers := reader.Headers()
	rows, err := previewRows(reader, headers, inspectRows)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON, output.FormatYAML:
		return formatter.Format(os.Stdout, keyedRows(headers, rows))
	default:
		return formatter.Format(os.Stdout, table.PreviewToTableData(headers, rows))
	}
}

// previewRows reads up to limit data records in header order.
func previewRows(reader *csvio.Reader, headers []string, limit int) ([][]string, error) {
	rows := make([][]string, 0, limit)
	for len(rows) < limit {
		record, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]string, len(headers))
		for i, header := range headers {
			row[i] = record[header]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// keyedRows rebuilds column-keyed records for structured output.
func keyedRows(headers []string, rows [][]string) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			record[header] = row[i]
		}
		out = append(out, record)
	}
	return out
}
