package tables

// UnmatchedRow is a row that was routed away from the output table,
// tagged with the source it came from.
type UnmatchedRow struct {
	Source string
	Row    *Row
}

// Unmatched collects rows that failed strict matching or field
// validation. Like Table, its column set is the ordered union of the
// appended rows' columns.
type Unmatched struct {
	columns []string
	colSet  map[string]struct{}
	rows    []UnmatchedRow
}

// NewUnmatched creates an empty unmatched table.
func NewUnmatched() *Unmatched {
	return &Unmatched{
		colSet: make(map[string]struct{}),
	}
}

// Append adds a row with its originating source name.
func (u *Unmatched) Append(source string, r *Row) {
	for _, name := range r.columns {
		if _, ok := u.colSet[name]; ok {
			continue
		}
		u.colSet[name] = struct{}{}
		u.columns = append(u.columns, name)
	}
	u.rows = append(u.rows, UnmatchedRow{Source: source, Row: r})
}

// Columns returns the union of appended rows' columns in
// first-appearance order.
func (u *Unmatched) Columns() []string {
	out := make([]string, len(u.columns))
	copy(out, u.columns)
	return out
}

// Rows returns the unmatched rows in insertion order.
func (u *Unmatched) Rows() []UnmatchedRow {
	out := make([]UnmatchedRow, len(u.rows))
	copy(out, u.rows)
	return out
}

// Len returns the number of unmatched rows.
func (u *Unmatched) Len() int {
	return len(u.rows)
}

// BySource returns how many unmatched rows each source produced.
func (u *Unmatched) BySource() map[string]int {
	counts := make(map[string]int)
	for _, row := range u.rows {
		counts[row.Source]++
	}
	return counts
}
