package tables_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabfuse/tabfuse/pkg/tables"
)

func TestRow(t *testing.T) {
	t.Run("Set preserves first-insertion order", func(t *testing.T) {
		r := tables.NewRow()
		r.Set("Serial", "A100")
		r.Set("Location", "HQ")
		r.Set("Serial", "A200") // overwrite keeps position

		assert.Equal(t, []string{"Serial", "Location"}, r.Columns())
		assert.Equal(t, "A200", r.Value("Serial"))
	})

	t.Run("Fill writes only empty cells", func(t *testing.T) {
		r := tables.NewRow()
		r.Set("Serial", "A100")
		r.Set("Location", "")

		assert.False(t, r.Fill("Serial", "B200"), "non-empty cell must not be overwritten")
		assert.Equal(t, "A100", r.Value("Serial"))

		assert.True(t, r.Fill("Location", "HQ"))
		assert.Equal(t, "HQ", r.Value("Location"))

		assert.True(t, r.Fill("Owner", "IT"), "absent column counts as empty")
		assert.Equal(t, []string{"Serial", "Location", "Owner"}, r.Columns())
	})

	t.Run("Fill with empty value records column but reports no write", func(t *testing.T) {
		r := tables.NewRow()
		assert.False(t, r.Fill("Notes", ""))
		assert.True(t, r.Has("Notes"))
		assert.True(t, r.Empty("Notes"))
	})

	t.Run("Empty treats absent and blank alike", func(t *testing.T) {
		r := tables.NewRow()
		r.Set("A", "")
		assert.True(t, r.Empty("A"))
		assert.True(t, r.Empty("missing"))

		r.Set("A", "x")
		assert.False(t, r.Empty("A"))
	})

	t.Run("Lookup distinguishes absent from blank", func(t *testing.T) {
		r := tables.NewRow()
		r.Set("A", "")

		v, ok := r.Lookup("A")
		assert.True(t, ok)
		assert.Equal(t, "", v)

		_, ok = r.Lookup("B")
		assert.False(t, ok)
	})

	t.Run("origins are deduplicated and sorted", func(t *testing.T) {
		r := tables.NewRow()
		assert.Nil(t, r.Origins())
		assert.False(t, r.FromSource("audit"))

		r.MarkOrigin("inventory")
		r.MarkOrigin("audit")
		r.MarkOrigin("inventory")

		assert.Equal(t, []string{"audit", "inventory"}, r.Origins())
		assert.True(t, r.FromSource("audit"))
	})

	t.Run("Clone is independent", func(t *testing.T) {
		r := tables.NewRow()
		r.Set("Serial", "A100")
		r.MarkOrigin("inventory")

		clone := r.Clone()
		clone.Set("Serial", "changed")
		clone.MarkOrigin("audit")

		assert.Equal(t, "A100", r.Value("Serial"))
		assert.Equal(t, []string{"inventory"}, r.Origins())
		assert.Equal(t, []string{"audit", "inventory"}, clone.Origins())
	})
}

func TestTable(t *testing.T) {
	t.Run("column union keeps first-appearance order", func(t *testing.T) {
		tbl := tables.New()
		tbl.AddColumns("Serial", "Location")

		r1 := tables.NewRow()
		r1.Set("Serial", "A100")
		r1.Set("Owner", "IT")
		tbl.Append(r1)

		r2 := tables.NewRow()
		r2.Set("Location", "HQ")
		r2.Set("Serial", "B200")
		tbl.Append(r2)

		assert.Equal(t, []string{"Serial", "Location", "Owner"}, tbl.Columns())
		assert.True(t, tbl.HasColumn("Owner"))
		assert.False(t, tbl.HasColumn("missing"))
	})

	t.Run("AddColumns is idempotent", func(t *testing.T) {
		tbl := tables.New()
		tbl.AddColumns("A", "B")
		tbl.AddColumns("B", "C", "A")
		assert.Equal(t, []string{"A", "B", "C"}, tbl.Columns())
	})

	t.Run("Records pads missing cells", func(t *testing.T) {
		tbl := tables.New()

		r1 := tables.NewRow()
		r1.Set("Serial", "A100")
		r1.Set("Owner", "IT")
		tbl.Append(r1)

		r2 := tables.NewRow()
		r2.Set("Serial", "B200")
		tbl.Append(r2)

		want := [][]string{
			{"A100", "IT"},
			{"B200", ""},
		}
		if diff := cmp.Diff(want, tbl.Records()); diff != "" {
			t.Errorf("Records() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Rows returns a copy of the slice", func(t *testing.T) {
		tbl := tables.New()
		r := tables.NewRow()
		r.Set("A", "1")
		tbl.Append(r)

		rows := tbl.Rows()
		require.Len(t, rows, 1)
		rows[0] = nil
		assert.NotNil(t, tbl.Row(0))
	})

	t.Run("ForEach stops when fn returns false", func(t *testing.T) {
		tbl := tables.New()
		for _, v := range []string{"1", "2", "3"} {
			r := tables.NewRow()
			r.Set("A", v)
			tbl.Append(r)
		}

		var seen int
		tbl.ForEach(func(r *tables.Row) bool {
			seen++
			return seen < 2
		})
		assert.Equal(t, 2, seen)
		assert.Equal(t, 3, tbl.Len())
	})
}

func TestUnmatched(t *testing.T) {
	t.Run("rows keep their source tag", func(t *testing.T) {
		u := tables.NewUnmatched()

		r1 := tables.NewRow()
		r1.Set("Serial", "A100")
		u.Append("audit", r1)

		r2 := tables.NewRow()
		r2.Set("Serial", "B200")
		r2.Set("Location", "HQ")
		u.Append("audit", r2)

		r3 := tables.NewRow()
		r3.Set("Owner", "IT")
		u.Append("extras", r3)

		require.Equal(t, 3, u.Len())
		rows := u.Rows()
		assert.Equal(t, "audit", rows[0].Source)
		assert.Equal(t, "extras", rows[2].Source)
		assert.Equal(t, []string{"Serial", "Location", "Owner"}, u.Columns())
	})

	t.Run("BySource counts per source", func(t *testing.T) {
		u := tables.NewUnmatched()
		for i := 0; i < 2; i++ {
			r := tables.NewRow()
			r.Set("A", "x")
			u.Append("audit", r)
		}
		r := tables.NewRow()
		r.Set("A", "y")
		u.Append("extras", r)

		counts := u.BySource()
		assert.Equal(t, 2, counts["audit"])
		assert.Equal(t, 1, counts["extras"])
	})

	t.Run("empty table", func(t *testing.T) {
		u := tables.NewUnmatched()
		assert.Equal(t, 0, u.Len())
		assert.Empty(t, u.Columns())
		assert.Empty(t, u.Rows())
	})
}
