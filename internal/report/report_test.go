package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabfuse/tabfuse/internal/report"
	"github.com/tabfuse/tabfuse/pkg/merge"
	"github.com/tabfuse/tabfuse/pkg/tables"
)

func sampleResult(t *testing.T) *merge.Result {
	t.Helper()

	table := tables.New()
	table.AddColumns("ID", "Color", merge.BrokenRulesColumn)

	ok := tables.NewRow()
	ok.Set("ID", "p1")
	ok.Set("Color", "Blue")
	ok.Set(merge.BrokenRulesColumn, merge.NoBrokenRules)
	table.Append(ok)

	broken := tables.NewRow()
	broken.Set("ID", "p2")
	broken.Set("Color", "Plaid")
	broken.Set(merge.BrokenRulesColumn, "catalog.Color, registry.Color")
	table.Append(broken)

	alsoBroken := tables.NewRow()
	alsoBroken.Set("ID", "p3")
	alsoBroken.Set("Color", "Paisley")
	alsoBroken.Set(merge.BrokenRulesColumn, "catalog.Color")
	table.Append(alsoBroken)

	started := utc.Now()
	return &merge.Result{
		RunID:     "run-42",
		Table:     table,
		Unmatched: tables.NewUnmatched(),
		Sources: []merge.SourceStats{
			{Source: "catalog", RowsRead: 3, Appended: 3},
			{Source: "registry", RowsRead: 4, Matched: 3, CellsFilled: 5, Rejected: 1},
		},
		Strict:   true,
		Started:  started,
		Finished: started.Add(250 * time.Millisecond),
	}
}

func TestWriteRendersRunAndSources(t *testing.T) {
	var b strings.Builder
	err := report.Write(&b, report.Info{
		Result:        sampleResult(t),
		ConfigPath:    "tabfuse.yaml",
		OutputPath:    "merged.csv",
		UnmatchedPath: "leftover.csv",
	})
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, "# Merge Report")
	assert.Contains(t, out, "`run-42`")
	assert.Contains(t, out, "## Run")
	assert.Contains(t, out, "Strict matching: true")
	assert.Contains(t, out, "Output rows: 3")
	assert.Contains(t, out, "Rows read: 7")
	assert.Contains(t, out, "Config: tabfuse.yaml")
	assert.Contains(t, out, "Merged output: merged.csv")
	assert.Contains(t, out, "Unmatched output: leftover.csv")
	assert.Contains(t, out, "## Sources")
	assert.Contains(t, out, "catalog")
	assert.Contains(t, out, "registry")
}

func TestWriteTalliesBrokenRules(t *testing.T) {
	var b strings.Builder
	require.NoError(t, report.Write(&b, report.Info{Result: sampleResult(t)}))

	out := b.String()
	assert.Contains(t, out, "## Broken source rules")

	// catalog.Color broke on two rows, registry.Color on one.
	catalogLine := lineContaining(t, out, "catalog.Color")
	assert.Contains(t, catalogLine, "2")
	registryLine := lineContaining(t, out, "registry.Color")
	assert.Contains(t, registryLine, "1")
}

func TestWriteOmitsBreachSectionWhenClean(t *testing.T) {
	result := sampleResult(t)
	result.Table = tables.New()
	result.Table.AddColumns("ID", merge.BrokenRulesColumn)
	clean := tables.NewRow()
	clean.Set("ID", "p1")
	clean.Set(merge.BrokenRulesColumn, merge.NoBrokenRules)
	result.Table.Append(clean)

	var b strings.Builder
	require.NoError(t, report.Write(&b, report.Info{Result: result}))
	assert.NotContains(t, b.String(), "Broken source rules")
}

func TestWriteRequiresResult(t *testing.T) {
	var b strings.Builder
	err := report.Write(&b, report.Info{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge result")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, report.WriteFile(path, report.Info{Result: sampleResult(t)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Merge Report")
}

func TestWriteFileCreateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.md")
	err := report.WriteFile(path, report.Info{Result: sampleResult(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

func lineContaining(t *testing.T, text, substr string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line contains %q", substr)
	return ""
}
