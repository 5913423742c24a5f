package merge

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/tabfuse/tabfuse/pkg/tables"
)

// SourceStats counts what happened to one source's rows during a run.
type SourceStats struct {
	// Source is the source name.
	Source string `json:"source" yaml:"source"`

	// RowsRead is the number of data rows consumed from the source.
	RowsRead int `json:"rows_read" yaml:"rows_read"`

	// Appended is the number of rows added to the output table.
	Appended int `json:"appended" yaml:"appended"`

	// Matched is the number of rows that matched an existing output row.
	Matched int `json:"matched" yaml:"matched"`

	// CellsFilled is the number of empty output cells populated by
	// matched rows.
	CellsFilled int `json:"cells_filled" yaml:"cells_filled"`

	// Rejected is the number of rows a field rule kept out of the run.
	Rejected int `json:"rejected" yaml:"rejected"`

	// Unmatched is the number of rows routed to the unmatched table
	// because no output row shared their key.
	Unmatched int `json:"unmatched" yaml:"unmatched"`
}

// Result is the outcome of one merge run.
type Result struct {
	// RunID uniquely identifies the run across logs and reports.
	RunID string `json:"run_id" yaml:"run_id"`

	// Table is the merged output table.
	Table *tables.Table `json:"-" yaml:"-"`

	// Unmatched collects the rows routed away from the output table.
	Unmatched *tables.Unmatched `json:"-" yaml:"-"`

	// Sources holds per-source statistics in priority order.
	Sources []SourceStats `json:"sources" yaml:"sources"`

	// Strict records whether the run ran in strict mode.
	Strict bool `json:"strict" yaml:"strict"`

	// Started and Finished bound the run.
	Started  utc.Time `json:"started" yaml:"started"`
	Finished utc.Time `json:"finished" yaml:"finished"`
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// RowsRead returns the total number of data rows consumed across sources.
func (r *Result) RowsRead() int {
	total := 0
	for _, s := range r.Sources {
		total += s.RowsRead
	}
	return total
}

// RowsUnmatched returns the total number of rows routed to the unmatched
// table, field-rule rejections included.
func (r *Result) RowsUnmatched() int {
	total := 0
	for _, s := range r.Sources {
		total += s.Unmatched + s.Rejected
	}
	return total
}

// CellsFilled returns the total number of output cells populated by
// matched rows across sources.
func (r *Result) CellsFilled() int {
	total := 0
	for _, s := range r.Sources {
		total += s.CellsFilled
	}
	return total
}

// Summary returns a one-line human-readable description of the run.
func (r *Result) Summary() string {
	rows := 0
	if r.Table != nil {
		rows = r.Table.Len()
	}
	return fmt.Sprintf("merged %d sources into %d rows (%d read, %d cells filled, %d unmatched) in %s",
		len(r.Sources), rows, r.RowsRead(), r.CellsFilled(), r.RowsUnmatched(),
		r.Duration().Round(time.Millisecond))
}
