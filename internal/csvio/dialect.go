package csvio

import (
	"strings"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

// Dialect describes how output records are delimited, quoted, and
// terminated.
type Dialect struct {
	// Name is the configuration name of the dialect.
	Name string

	// Comma separates fields.
	Comma rune

	// CRLF terminates records with \r\n instead of \n.
	CRLF bool

	// QuoteAll quotes every field, not just the ones that need it.
	QuoteAll bool
}

// The supported output dialects.
var (
	// Unix writes LF-terminated records with every field quoted.
	Unix = Dialect{Name: "unix", Comma: ',', QuoteAll: true}

	// Excel writes CRLF-terminated records with minimal quoting.
	Excel = Dialect{Name: "excel", Comma: ',', CRLF: true}

	// ExcelTab is Excel with a tab separator.
	ExcelTab = Dialect{Name: "excel_tab", Comma: '\t', CRLF: true}
)

// DialectNames lists the accepted dialect names.
func DialectNames() []string {
	return []string{Unix.Name, Excel.Name, ExcelTab.Name}
}

// ParseDialect resolves a configured dialect name. The empty name means
// the default, unix.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Unix.Name:
		return Unix, nil
	case Excel.Name:
		return Excel, nil
	case ExcelTab.Name, "excel-tab":
		return ExcelTab, nil
	default:
		return Dialect{}, pkgerrors.NewValidationError("dialect", name,
			"must be one of "+strings.Join(DialectNames(), ", "))
	}
}
