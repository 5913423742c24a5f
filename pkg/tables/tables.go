// Package tables defines the row and table types a merge run produces.
// A Table holds merged output rows under an ordered union of output
// columns; an Unmatched table collects the rows that were routed away
// from the output, tagged with their originating source.
package tables

// Table is an ordered collection of merged rows. Its column set is the
// union of every appended row's columns plus any columns declared up
// front, in first-appearance order.
//
// A Table is not safe for concurrent mutation; the merge engine owns it
// for the duration of a run.
type Table struct {
	columns []string
	colSet  map[string]struct{}
	rows    []*Row
}

// New creates an empty table.
func New() *Table {
	return &Table{
		colSet: make(map[string]struct{}),
	}
}

// AddColumns declares output columns. Columns already present keep their
// position; new ones are appended in the order given.
func (t *Table) AddColumns(names ...string) {
	for _, name := range names {
		if _, ok := t.colSet[name]; ok {
			continue
		}
		t.colSet[name] = struct{}{}
		t.columns = append(t.columns, name)
	}
}

// HasColumn reports whether the table declares the column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colSet[name]
	return ok
}

// Columns returns the table's columns in first-appearance order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Append adds a row to the table and merges its columns into the union.
func (t *Table) Append(r *Row) {
	t.AddColumns(r.columns...)
	t.rows = append(t.rows, r)
}

// Rows returns the table's rows in insertion order. The slice is a copy;
// the rows are shared.
func (t *Table) Rows() []*Row {
	out := make([]*Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Row returns the row at index i.
func (t *Table) Row(i int) *Row {
	return t.rows[i]
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// ForEach calls fn for each row in insertion order until fn returns false.
func (t *Table) ForEach(fn func(r *Row) bool) {
	for _, r := range t.rows {
		if !fn(r) {
			return
		}
	}
}

// Records returns the table as a cell grid in column order, rows padded
// with empty strings where a column is absent. The header is not included.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		record := make([]string, len(t.columns))
		for i, col := range t.columns {
			record[i] = r.Value(col)
		}
		records = append(records, record)
	}
	return records
}
