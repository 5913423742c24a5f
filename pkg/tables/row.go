package tables

import "sort"

// Row is an ordered collection of output column values with provenance.
// Columns keep their first-insertion order. A value that is absent or the
// empty string is considered empty for fill purposes.
type Row struct {
	columns []string
	values  map[string]string
	origins map[string]struct{}
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{
		values: make(map[string]string),
	}
}

// Set stores value under column, overwriting any existing value.
// A column seen for the first time is appended to the column order.
func (r *Row) Set(column, value string) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Fill stores value under column only when the row's current value is
// empty. It reports whether a non-empty value was newly written.
func (r *Row) Fill(column, value string) bool {
	if !r.Empty(column) {
		return false
	}
	r.Set(column, value)
	return value != ""
}

// Value returns the value stored under column, or the empty string.
func (r *Row) Value(column string) string {
	return r.values[column]
}

// Lookup returns the value stored under column and whether the column exists.
func (r *Row) Lookup(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Has reports whether the row carries the column, even with an empty value.
func (r *Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Empty reports whether the column is absent or holds the empty string.
func (r *Row) Empty(column string) bool {
	return r.values[column] == ""
}

// Columns returns the row's columns in first-insertion order.
func (r *Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns in the row.
func (r *Row) Len() int {
	return len(r.columns)
}

// MarkOrigin records source as a contributor to this row.
func (r *Row) MarkOrigin(source string) {
	if r.origins == nil {
		r.origins = make(map[string]struct{})
	}
	r.origins[source] = struct{}{}
}

// Origins returns the contributing source names in sorted order.
func (r *Row) Origins() []string {
	if len(r.origins) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.origins))
	for source := range r.origins {
		out = append(out, source)
	}
	sort.Strings(out)
	return out
}

// FromSource reports whether source contributed to this row.
func (r *Row) FromSource(source string) bool {
	_, ok := r.origins[source]
	return ok
}

// Clone returns a deep copy of the row, provenance included.
func (r *Row) Clone() *Row {
	clone := &Row{
		columns: make([]string, len(r.columns)),
		values:  make(map[string]string, len(r.values)),
	}
	copy(clone.columns, r.columns)
	for k, v := range r.values {
		clone.values[k] = v
	}
	if len(r.origins) > 0 {
		clone.origins = make(map[string]struct{}, len(r.origins))
		for k := range r.origins {
			clone.origins[k] = struct{}{}
		}
	}
	return clone
}
