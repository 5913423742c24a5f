// Package report renders a completed merge run as a markdown document:
// run identity and timing, per-source transfer statistics, and broken
// source rule tallies.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	md "github.com/nao1215/markdown"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
	"github.com/tabfuse/tabfuse/pkg/merge"
	"github.com/tabfuse/tabfuse/pkg/tables"
)

// Info collects everything the report mentions beyond the merge result
// itself.
type Info struct {
	Result        *merge.Result
	ConfigPath    string
	OutputPath    string
	UnmatchedPath string
}

// WriteFile renders the report to path.
func WriteFile(path string, info Info) error {
	f, err := os.Create(path)
	if err != nil {
		return pkgerrors.NewIOError("create", path, err)
	}
	if err := Write(f, info); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return pkgerrors.NewIOError("close", path, err)
	}
	return nil
}

// Write renders the report document to w.
func Write(w io.Writer, info Info) error {
	r := info.Result
	if r == nil {
		return pkgerrors.NewValidationError("result", nil, "report needs a merge result")
	}

	doc := md.NewMarkdown(w).
		H1("Merge Report").
		PlainTextf("Run %s finished %s in %s.",
			md.Code(r.RunID),
			r.Finished.Format(time.RFC3339),
			r.Duration().Round(time.Millisecond)).
		LF().
		H2("Run").
		BulletList(runFacts(info)...).
		LF().
		H2("Sources").
		Table(md.TableSet{
			Header: []string{"Priority", "Source", "Rows read", "Appended", "Matched", "Cells filled", "Rejected", "Unmatched"},
			Rows:   sourceRows(r),
		}).
		LF()

	if breaches := countBreaches(r.Table); len(breaches) > 0 {
		doc.H2("Broken source rules").
			Table(md.TableSet{
				Header: []string{"Rule", "Rows"},
				Rows:   breaches,
			}).
			LF()
	}

	return doc.Build()
}

func runFacts(info Info) []string {
	r := info.Result
	facts := []string{
		fmt.Sprintf("Started: %s", r.Started.Format(time.RFC3339)),
		fmt.Sprintf("Duration: %s", r.Duration().Round(time.Millisecond)),
		fmt.Sprintf("Strict matching: %t", r.Strict),
		fmt.Sprintf("Output rows: %d", r.Table.Len()),
		fmt.Sprintf("Rows read: %d", r.RowsRead()),
		fmt.Sprintf("Cells filled: %d", r.CellsFilled()),
		fmt.Sprintf("Unmatched rows: %d", r.RowsUnmatched()),
	}
	if info.ConfigPath != "" {
		facts = append(facts, fmt.Sprintf("Config: %s", info.ConfigPath))
	}
	if info.OutputPath != "" {
		facts = append(facts, fmt.Sprintf("Merged output: %s", info.OutputPath))
	}
	if info.UnmatchedPath != "" {
		facts = append(facts, fmt.Sprintf("Unmatched output: %s", info.UnmatchedPath))
	}
	return facts
}

func sourceRows(r *merge.Result) [][]string {
	rows := make([][]string, len(r.Sources))
	for i, s := range r.Sources {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			s.Source,
			strconv.Itoa(s.RowsRead),
			strconv.Itoa(s.Appended),
			strconv.Itoa(s.Matched),
			strconv.Itoa(s.CellsFilled),
			strconv.Itoa(s.Rejected),
			strconv.Itoa(s.Unmatched),
		}
	}
	return rows
}

// countBreaches tallies rows per broken rule ID from the annotation
// column, sorted by rule ID.
func countBreaches(t *tables.Table) [][]string {
	if t == nil || !t.HasColumn(merge.BrokenRulesColumn) {
		return nil
	}

	counts := make(map[string]int)
	t.ForEach(func(row *tables.Row) bool {
		noted := row.Value(merge.BrokenRulesColumn)
		if noted == "" || noted == merge.NoBrokenRules {
			return true
		}
		for _, id := range strings.Split(noted, ", ") {
			counts[id]++
		}
		return true
	})
	if len(counts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{md.Code(id), strconv.Itoa(counts[id])}
	}
	return rows
}
