package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/tabfuse/tabfuse/pkg/constants"
	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

// Scaffold returns a commented starter configuration with n placeholder
// sources, ready to edit. n is clamped to at least one.
func Scaffold(n int) string {
	if n < 1 {
		n = 1
	}

	var b strings.Builder
	b.WriteString("# tabfuse configuration\n")
	b.WriteString("#\n")
	b.WriteString("# Sources merge in the order listed. The first source seeds the output\n")
	b.WriteString("# table; later sources only fill cells the earlier ones left empty.\n\n")
	b.WriteString("strict: false\n\n")
	b.WriteString("sources:\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "  - name: source%d\n", i)
		fmt.Fprintf(&b, "    path: data/source%d.csv\n", i)
		b.WriteString("    header_row: 0        # 0-based record index of the header row\n")
		b.WriteString("    ignored_rows: []     # 0-based record indices to skip entirely\n")
		b.WriteString("    encoding: utf-8      # utf-8, latin-1, windows-1252, utf-16, utf-16le, utf-16be\n")
		b.WriteString("    delimiter: \"\"        # empty sniffs the delimiter; \\t means tab\n")
		b.WriteString("    target_columns: []   # value columns to transfer, as named in the file\n")
		b.WriteString("    column_names: []     # output names for those columns, positionally\n")
		b.WriteString("    match_by: [\"ID\"]     # key columns for matching rows across sources\n")
		b.WriteString("    match_by_names: []\n")
		b.WriteString("    rules: {}            # output column -> regex; breaches are annotated\n")
	}
	b.WriteString("\n")
	b.WriteString("field_rules: {}          # output column -> regex; failing rows are dropped\n\n")
	b.WriteString("output:\n")
	fmt.Fprintf(&b, "  path: %s\n", constants.DefaultOutputFile)
	b.WriteString("  unmatched_path: \"\"     # empty skips writing unmatched rows\n")
	fmt.Fprintf(&b, "  dialect: %s          # unix, excel, or excel_tab\n", constants.DefaultDialect)
	b.WriteString("  report_path: \"\"        # empty skips the markdown report\n\n")
	b.WriteString("watch:\n")
	b.WriteString("  interval: \"\"           # e.g. 30s to also re-merge periodically in watch mode\n")
	return b.String()
}

// WriteScaffold writes a starter configuration to path. It refuses to
// overwrite an existing file unless force is set.
func WriteScaffold(path string, n int, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return pkgerrors.NewConfigError("config",
				fmt.Sprintf("%s already exists, pass --force to overwrite", path), pkgerrors.ErrAlreadyExists)
		}
	}
	if err := os.WriteFile(path, []byte(Scaffold(n)), constants.FilePermissions); err != nil {
		return pkgerrors.NewIOError("write", path, err)
	}
	return nil
}
