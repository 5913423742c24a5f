package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabfuse/tabfuse/pkg/merge"
)

func TestMapRow(t *testing.T) {
	spec := merge.SourceSpec{
		Name:    "people",
		Targets: merge.PairColumns([]string{"first_name", "dept"}, []string{"Name", "Department"}),
		MatchBy: merge.PairColumns([]string{"emp_id"}, []string{"ID"}),
	}

	row := merge.MapRow(map[string]string{
		"first_name": "Ada",
		"dept":       "Engineering",
		"emp_id":     "e-17",
		"ignored":    "never read",
	}, &spec)

	assert.Equal(t, []string{"Name", "Department", "ID"}, row.Columns())
	assert.Equal(t, "Ada", row.Value("Name"))
	assert.Equal(t, "Engineering", row.Value("Department"))
	assert.Equal(t, "e-17", row.Value("ID"))
	assert.False(t, row.Has("ignored"))
}

func TestMapRowMissingSourceColumnMapsToEmpty(t *testing.T) {
	spec := merge.SourceSpec{
		Name:    "people",
		Targets: merge.PairColumns([]string{"nickname"}, []string{"Nickname"}),
		MatchBy: merge.PairColumns([]string{"emp_id"}, []string{"ID"}),
	}

	row := merge.MapRow(map[string]string{"emp_id": "e-17"}, &spec)

	value, ok := row.Lookup("Nickname")
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestMapRowTargetValueWinsOverMatchBy(t *testing.T) {
	// The same output column declared as target and as key: the target's
	// value stands unless it is empty.
	spec := merge.SourceSpec{
		Name:    "people",
		Targets: merge.PairColumns([]string{"display_id"}, []string{"ID"}),
		MatchBy: merge.PairColumns([]string{"emp_id"}, []string{"ID"}),
	}

	row := merge.MapRow(map[string]string{
		"display_id": "E17",
		"emp_id":     "e-17",
	}, &spec)
	assert.Equal(t, "E17", row.Value("ID"))

	row = merge.MapRow(map[string]string{
		"display_id": "",
		"emp_id":     "e-17",
	}, &spec)
	assert.Equal(t, "e-17", row.Value("ID"))
}

func TestPairColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		renames []string
		want    []merge.ColumnPair
	}{
		{
			name:    "positional renames",
			columns: []string{"a", "b"},
			renames: []string{"A", "B"},
			want: []merge.ColumnPair{
				{Source: "a", Output: "A"},
				{Source: "b", Output: "B"},
			},
		},
		{
			name:    "surplus columns keep their own name",
			columns: []string{"a", "b", "c"},
			renames: []string{"A"},
			want: []merge.ColumnPair{
				{Source: "a", Output: "A"},
				{Source: "b", Output: "b"},
				{Source: "c", Output: "c"},
			},
		},
		{
			name:    "surplus renames are ignored",
			columns: []string{"a"},
			renames: []string{"A", "B", "C"},
			want:    []merge.ColumnPair{{Source: "a", Output: "A"}},
		},
		{
			name:    "empty rename keeps the source name",
			columns: []string{"a", "b"},
			renames: []string{"", "B"},
			want: []merge.ColumnPair{
				{Source: "a", Output: "a"},
				{Source: "b", Output: "B"},
			},
		},
		{
			name:    "no renames at all",
			columns: []string{"a", "b"},
			renames: nil,
			want: []merge.ColumnPair{
				{Source: "a", Output: "a"},
				{Source: "b", Output: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, merge.PairColumns(tt.columns, tt.renames))
		})
	}
}

func TestSourceSpecColumnSets(t *testing.T) {
	spec := merge.SourceSpec{
		Name:    "people",
		Targets: merge.PairColumns([]string{"name", "id_text"}, []string{"Name", "ID"}),
		MatchBy: merge.PairColumns([]string{"id", "site"}, []string{"ID", "Site"}),
	}

	assert.Equal(t, []string{"Name", "ID", "Site"}, spec.OutputColumns())
	assert.Equal(t, []string{"ID", "Site"}, spec.MatchByOutputs())
	assert.Equal(t, []string{"name", "id_text", "id", "site"}, spec.SourceColumns())
}
