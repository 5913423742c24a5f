package merge

import (
	"strings"

	"github.com/tabfuse/tabfuse/pkg/tables"
)

// keySeparator joins the values of a composite match key. The ASCII unit
// separator keeps multi-column keys from colliding on data that contains
// ordinary punctuation.
const keySeparator = "\x1f"

// Index locates output rows by the value tuple of a source's match-by
// columns. Rows missing a value for any key column are unkeyed and never
// indexed, so they can never be matched.
type Index struct {
	keys []string
	rows map[string]*tables.Row
}

// NewIndex creates an index over the given key columns, in order.
func NewIndex(keyColumns []string) *Index {
	return &Index{
		keys: keyColumns,
		rows: make(map[string]*tables.Row),
	}
}

// Keyed reports whether the index has any key columns at all.
func (ix *Index) Keyed() bool {
	return len(ix.keys) > 0
}

// Key builds the composite key for row. It reports false when the index
// has no key columns or any key column of the row is empty.
func (ix *Index) Key(row *tables.Row) (string, bool) {
	if len(ix.keys) == 0 {
		return "", false
	}
	parts := make([]string, len(ix.keys))
	for i, col := range ix.keys {
		v := row.Value(col)
		if v == "" {
			return "", false
		}
		parts[i] = v
	}
	return strings.Join(parts, keySeparator), true
}

// Build indexes every keyed row of the table. When two rows share a key,
// the earlier row keeps the slot.
func (ix *Index) Build(t *tables.Table) {
	t.ForEach(func(r *tables.Row) bool {
		ix.Add(r)
		return true
	})
}

// Add indexes row unless it is unkeyed or its key is already taken.
// It reports whether the row was stored.
func (ix *Index) Add(row *tables.Row) bool {
	key, ok := ix.Key(row)
	if !ok {
		return false
	}
	if _, taken := ix.rows[key]; taken {
		return false
	}
	ix.rows[key] = row
	return true
}

// Match returns the indexed row whose key equals the candidate's key.
func (ix *Index) Match(candidate *tables.Row) (*tables.Row, bool) {
	key, ok := ix.Key(candidate)
	if !ok {
		return nil, false
	}
	row, ok := ix.rows[key]
	return row, ok
}

// Len returns the number of indexed rows.
func (ix *Index) Len() int {
	return len(ix.rows)
}
