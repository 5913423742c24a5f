package merge

import (
	"strings"

	"github.com/tabfuse/tabfuse/pkg/rules"
	"github.com/tabfuse/tabfuse/pkg/tables"
)

const (
	// BrokenRulesColumn is the synthetic output column that records which
	// source rules a row breaks.
	BrokenRulesColumn = "source rules broken"

	// NoBrokenRules marks a row that satisfies every source rule that
	// applies to it.
	NoBrokenRules = "none"

	// brokenRulesSeparator joins rule identifiers in the annotation cell.
	brokenRulesSeparator = ", "
)

// Annotate appends the broken-rules column to every row of the table.
// A rule applies to a row only when the rule's source contributed to the
// row; the rule is evaluated against the row's final merged value, so a
// value filled in by a later source is judged too. Rows run in table
// order, sources in priority order, rules in column order.
func Annotate(t *tables.Table, sourceOrder []string, sr *rules.SourceRules) {
	t.AddColumns(BrokenRulesColumn)
	t.ForEach(func(row *tables.Row) bool {
		var broken []string
		for _, source := range sourceOrder {
			if !row.FromSource(source) {
				continue
			}
			for _, rule := range sr.ForSource(source) {
				if !rule.Matches(row.Value(rule.Column)) {
					broken = append(broken, rule.ID())
				}
			}
		}
		if len(broken) == 0 {
			row.Set(BrokenRulesColumn, NoBrokenRules)
		} else {
			row.Set(BrokenRulesColumn, strings.Join(broken, brokenRulesSeparator))
		}
		return true
	})
}
