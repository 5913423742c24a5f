package merge

import (
	"github.com/tabfuse/tabfuse/pkg/tables"
)

// MapRow projects one raw source record onto the output schema. Target
// columns are written first; match-by columns only fill in after, so a
// column declared both as target and as key keeps the target value.
// A configured source column missing from the record maps to the empty
// string.
func MapRow(raw map[string]string, spec *SourceSpec) *tables.Row {
	row := tables.NewRow()
	for _, p := range spec.Targets {
		row.Set(p.Output, raw[p.Source])
	}
	for _, p := range spec.MatchBy {
		row.Fill(p.Output, raw[p.Source])
	}
	return row
}
