// Package rules compiles and evaluates the regular-expression rules that
// gate and annotate merged rows.
//
// Field rules run before a row is transferred into the output table and
// reject the whole row when any checked column fails. Source rules run
// after the merge and only annotate; they never remove rows.
//
// Every pattern matches against the full cell value: a pattern like
// `\d+` does not pass on "abc123". Malformed patterns surface as
// RuleError at compile time, before any row is processed.
package rules

import (
	"fmt"
	"regexp"
	"sort"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
	"github.com/tabfuse/tabfuse/pkg/tables"
)

// Rule is a compiled full-string pattern bound to an output column.
type Rule struct {
	// Source is the owning source name; empty for field rules.
	Source string

	// Column is the output column the rule checks.
	Column string

	// Pattern is the pattern as configured, before anchoring.
	Pattern string

	re *regexp.Regexp
}

// compile anchors pattern so it must cover the entire value.
func compile(source, column, pattern string) (Rule, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return Rule{}, pkgerrors.NewRuleError(source, column, pattern, err)
	}
	return Rule{
		Source:  source,
		Column:  column,
		Pattern: pattern,
		re:      re,
	}, nil
}

// Matches reports whether value satisfies the rule over its full length.
func (r Rule) Matches(value string) bool {
	return r.re.MatchString(value)
}

// ID returns the identifier recorded when the rule is broken:
// "<source>.<column>" for source rules, the bare column for field rules.
func (r Rule) ID() string {
	if r.Source == "" {
		return r.Column
	}
	return r.Source + "." + r.Column
}

// FieldRules holds the pre-transfer rules, keyed by output column.
type FieldRules struct {
	rules    []Rule
	byColumn map[string]Rule
}

// NewFieldRules compiles one rule per output column. Columns are kept in
// sorted order so evaluation and error reporting are deterministic.
func NewFieldRules(patterns map[string]string) (*FieldRules, error) {
	fr := &FieldRules{
		byColumn: make(map[string]Rule, len(patterns)),
	}

	columns := make([]string, 0, len(patterns))
	for column := range patterns {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		rule, err := compile("", column, patterns[column])
		if err != nil {
			return nil, err
		}
		fr.rules = append(fr.rules, rule)
		fr.byColumn[column] = rule
	}
	return fr, nil
}

// Len returns the number of field rules.
func (fr *FieldRules) Len() int {
	if fr == nil {
		return 0
	}
	return len(fr.rules)
}

// Rules returns the field rules in column order.
func (fr *FieldRules) Rules() []Rule {
	if fr == nil {
		return nil
	}
	out := make([]Rule, len(fr.rules))
	copy(out, fr.rules)
	return out
}

// Validate checks every rule whose column is present in the row. Columns
// the row does not carry are skipped. It returns nil when the row passes,
// otherwise an error naming every failing column, its value, and the
// pattern it missed. A non-nil result means the whole row is rejected.
func (fr *FieldRules) Validate(row *tables.Row) error {
	if fr == nil || row == nil {
		return nil
	}

	var errs []error
	for _, rule := range fr.rules {
		value, ok := row.Lookup(rule.Column)
		if !ok {
			continue
		}
		if !rule.Matches(value) {
			errs = append(errs, &pkgerrors.ValidationError{
				Field:   rule.Column,
				Value:   value,
				Message: fmt.Sprintf("value %q does not match %q", value, rule.Pattern),
			})
		}
	}
	return pkgerrors.Join(errs...)
}

// SourceRules holds the post-transfer annotation rules grouped by source.
type SourceRules struct {
	bySource map[string][]Rule
	total    int
}

// NewSourceRules compiles the rules of every source. Within a source the
// rules are kept in column order so annotations are deterministic.
func NewSourceRules(patterns map[string]map[string]string) (*SourceRules, error) {
	sr := &SourceRules{
		bySource: make(map[string][]Rule, len(patterns)),
	}

	sources := make([]string, 0, len(patterns))
	for source := range patterns {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		columns := make([]string, 0, len(patterns[source]))
		for column := range patterns[source] {
			columns = append(columns, column)
		}
		sort.Strings(columns)

		rules := make([]Rule, 0, len(columns))
		for _, column := range columns {
			rule, err := compile(source, column, patterns[source][column])
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		if len(rules) > 0 {
			sr.bySource[source] = rules
			sr.total += len(rules)
		}
	}
	return sr, nil
}

// ForSource returns the rules of the named source in column order.
func (sr *SourceRules) ForSource(name string) []Rule {
	if sr == nil {
		return nil
	}
	return sr.bySource[name]
}

// Sources returns the names of sources that carry rules, sorted.
func (sr *SourceRules) Sources() []string {
	if sr == nil {
		return nil
	}
	out := make([]string, 0, len(sr.bySource))
	for source := range sr.bySource {
		out = append(out, source)
	}
	sort.Strings(out)
	return out
}

// Len returns the total number of source rules.
func (sr *SourceRules) Len() int {
	if sr == nil {
		return 0
	}
	return sr.total
}
