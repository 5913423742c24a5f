package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabfuse/tabfuse/internal/cmd/output"
	"github.com/tabfuse/tabfuse/internal/cmd/table"
)

func sampleData() table.Data {
	return table.Data{
		Headers: []string{"Source", "Rows"},
		Rows: [][]string{
			{"payroll", "42"},
			{"badges", "7"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    output.Format
		wantErr bool
	}{
		{"table", output.FormatTable, false},
		{"JSON", output.FormatJSON, false},
		{"Yaml", output.FormatYAML, false},
		{"csv", output.FormatCSV, false},
		{"", "", false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := output.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))

	// Test binaries never run on a terminal, so auto-detection picks the
	// pipe-friendly format.
	assert.Equal(t, output.FormatJSON, output.DetectFormat(""))
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := output.NewFormatter(output.FormatCSV)

	require.NoError(t, formatter.Format(&buf, sampleData()))
	want := `"Source","Rows"
"payroll","42"
"badges","7"
`
	assert.Equal(t, want, buf.String())
}

func TestCSVFormatterAcceptsPointer(t *testing.T) {
	var buf bytes.Buffer
	data := sampleData()

	require.NoError(t, output.NewFormatter(output.FormatCSV).Format(&buf, &data))
	assert.Contains(t, buf.String(), `"payroll","42"`)
}

func TestCSVFormatterRejectsNonTabularData(t *testing.T) {
	var buf bytes.Buffer

	err := output.NewFormatter(output.FormatCSV).Format(&buf, map[string]int{"rows": 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabular data")
}

func TestTableFormatterRendersTabularData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, sampleData()))
	got := buf.String()
	assert.Contains(t, strings.ToUpper(got), "SOURCE")
	assert.Contains(t, got, "payroll")
	assert.Contains(t, got, "42")
}

func TestTableFormatterConvertsStructSlices(t *testing.T) {
	type stat struct {
		Name string `json:"name"`
		Read int    `json:"rows_read"`
	}
	var buf bytes.Buffer

	err := output.NewFormatter(output.FormatTable).Format(&buf, []stat{
		{Name: "payroll", Read: 42},
	})
	require.NoError(t, err)
	got := buf.String()
	assert.Contains(t, strings.ToUpper(got), "ROWS READ")
	assert.Contains(t, got, "payroll")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer

	err := output.NewFormatter(output.FormatTable).Format(&buf, map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"rows": 3`)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer

	err := output.NewFormatter(output.FormatJSON).Format(&buf, map[string]string{"source": "payroll"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"payroll"}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer

	err := output.NewFormatter(output.FormatYAML).Format(&buf, map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "rows: 3")
}
