// Package table shapes merge results, source listings, and record
// previews into tabular data for CLI rendering.
package table

import (
	"strconv"
	"strings"

	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/pkg/merge"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ResultToTableData converts per-source merge statistics to table format.
func ResultToTableData(r *merge.Result) Data {
	headers := []string{"#", "Source", "Read", "Appended", "Matched", "Filled", "Rejected", "Unmatched"}
	alignment := []Align{
		AlignRight, AlignLeft, AlignRight, AlignRight,
		AlignRight, AlignRight, AlignRight, AlignRight,
	}

	rows := make([][]string, 0, len(r.Sources))
	for i, s := range r.Sources {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Source,
			strconv.Itoa(s.RowsRead),
			strconv.Itoa(s.Appended),
			strconv.Itoa(s.Matched),
			strconv.Itoa(s.CellsFilled),
			strconv.Itoa(s.Rejected),
			strconv.Itoa(s.Unmatched),
		})
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: alignment,
	}
}

// SourcesToTableData converts the configured sources to table format,
// one row per source in priority order.
func SourcesToTableData(cfg *config.Config) Data {
	headers := []string{"#", "Source", "Path", "Header Row", "Targets", "Match By", "Rules"}

	rows := make([][]string, 0, len(cfg.Sources))
	for i, src := range cfg.Sources {
		spec := src.Spec()
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			src.Name,
			src.Path,
			strconv.Itoa(src.HeaderRow),
			pairList(spec.Targets),
			pairList(spec.MatchBy),
			strconv.Itoa(len(src.Rules)),
		})
	}

	return Data{Headers: headers, Rows: rows}
}

// PreviewToTableData converts parsed records to table format. Short
// records pad with empty cells so every row matches the header width.
func PreviewToTableData(columns []string, records [][]string) Data {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(columns))
		copy(row, record)
		rows = append(rows, row)
	}
	return Data{Headers: columns, Rows: rows}
}

// pairList renders column pairs as "source" or "source -> output" when
// renamed.
func pairList(pairs []merge.ColumnPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.Source == p.Output {
			parts = append(parts, p.Source)
		} else {
			parts = append(parts, p.Source+" -> "+p.Output)
		}
	}
	return strings.Join(parts, ", ")
}
