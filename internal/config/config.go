// Package config defines and loads the merge run configuration:
// prioritized sources with their column pairings and rules, output
// destinations, and watch settings. YAML and TOML files are accepted,
// selected by extension.
package config

import (
	"strings"
	"time"

	"github.com/tabfuse/tabfuse/internal/csvio"
	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
	"github.com/tabfuse/tabfuse/pkg/merge"
	"github.com/tabfuse/tabfuse/pkg/rules"
)

// Config is one merge run, start to finish: which sources to read, how
// to pair their columns, which rules to apply, and where results go.
type Config struct {
	// Strict routes non-matching rows of later sources to the unmatched
	// table instead of appending them.
	Strict bool `yaml:"strict" toml:"strict" json:"strict"`

	// Sources in priority order; the first seeds the output table.
	Sources []Source `yaml:"sources" toml:"sources" json:"sources"`

	// FieldRules map output columns to regex patterns every transferred
	// row must satisfy; failing rows are dropped to the unmatched table.
	FieldRules map[string]string `yaml:"field_rules,omitempty" toml:"field_rules,omitempty" json:"field_rules,omitempty"`

	// Output says where and how results are written.
	Output Output `yaml:"output" toml:"output" json:"output"`

	// Watch configures optional periodic re-merging in watch mode.
	Watch Watch `yaml:"watch,omitempty" toml:"watch,omitempty" json:"watch,omitempty"`

	path string
}

// Source is one prioritized input file.
type Source struct {
	// Name identifies the source in provenance, annotations, logs, and
	// reports. Required, unique, and free of reserved characters.
	Name string `yaml:"name" toml:"name" json:"name"`

	// Path of the delimited file, absolute or relative to the working
	// directory.
	Path string `yaml:"path" toml:"path" json:"path"`

	// HeaderRow is the 0-based physical record index of the header.
	HeaderRow int `yaml:"header_row" toml:"header_row" json:"header_row"`

	// IgnoredRows are 0-based physical record indices to skip, header
	// counted.
	IgnoredRows []int `yaml:"ignored_rows,omitempty" toml:"ignored_rows,omitempty" json:"ignored_rows,omitempty"`

	// Encoding of the file's text. Empty means UTF-8.
	Encoding string `yaml:"encoding,omitempty" toml:"encoding,omitempty" json:"encoding,omitempty"`

	// Delimiter is the field separator, a single character. Empty means
	// sniff it; the literal \t means tab.
	Delimiter string `yaml:"delimiter,omitempty" toml:"delimiter,omitempty" json:"delimiter,omitempty"`

	// TargetColumns are the value columns to transfer, as named in the
	// file.
	TargetColumns []string `yaml:"target_columns,omitempty" toml:"target_columns,omitempty" json:"target_columns,omitempty"`

	// ColumnNames rename the target columns in the output, positionally.
	// Missing or empty entries keep the file's column name.
	ColumnNames []string `yaml:"column_names,omitempty" toml:"column_names,omitempty" json:"column_names,omitempty"`

	// MatchBy are the key columns used to match rows across sources, as
	// named in the file. Required for every source after the first.
	MatchBy []string `yaml:"match_by,omitempty" toml:"match_by,omitempty" json:"match_by,omitempty"`

	// MatchByNames rename the key columns in the output, positionally.
	MatchByNames []string `yaml:"match_by_names,omitempty" toml:"match_by_names,omitempty" json:"match_by_names,omitempty"`

	// Rules map output columns to regex patterns; merged rows this
	// source contributed to are annotated when a value breaks one.
	Rules map[string]string `yaml:"rules,omitempty" toml:"rules,omitempty" json:"rules,omitempty"`
}

// Output configures the run's destinations.
type Output struct {
	// Path of the merged output file.
	Path string `yaml:"path" toml:"path" json:"path"`

	// UnmatchedPath receives unmatched rows. Empty means they are
	// counted but not written.
	UnmatchedPath string `yaml:"unmatched_path,omitempty" toml:"unmatched_path,omitempty" json:"unmatched_path,omitempty"`

	// Dialect of the output files: unix, excel, or excel_tab. Empty
	// means unix.
	Dialect string `yaml:"dialect,omitempty" toml:"dialect,omitempty" json:"dialect,omitempty"`

	// ReportPath receives a markdown merge report. Empty means no
	// report.
	ReportPath string `yaml:"report_path,omitempty" toml:"report_path,omitempty" json:"report_path,omitempty"`
}

// Watch configures watch mode.
type Watch struct {
	// Interval re-runs the merge periodically, e.g. "30s". Empty means
	// re-run only on file changes.
	Interval string `yaml:"interval,omitempty" toml:"interval,omitempty" json:"interval,omitempty"`
}

// Path returns where the config was loaded from, if it was loaded from a
// file.
func (c *Config) Path() string {
	return c.path
}

// WatchPaths returns the files watch mode should observe: the config
// file itself plus every source file.
func (c *Config) WatchPaths() []string {
	paths := make([]string, 0, len(c.Sources)+1)
	seen := make(map[string]struct{}, len(c.Sources)+1)
	if c.path != "" {
		paths = append(paths, c.path)
		seen[c.path] = struct{}{}
	}
	for _, src := range c.Sources {
		if src.Path == "" {
			continue
		}
		if _, dup := seen[src.Path]; dup {
			continue
		}
		seen[src.Path] = struct{}{}
		paths = append(paths, src.Path)
	}
	return paths
}

// SourceByName returns the named source.
func (c *Config) SourceByName(name string) (*Source, bool) {
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			return &c.Sources[i], true
		}
	}
	return nil, false
}

// SourceNames returns the source names in priority order.
func (c *Config) SourceNames() []string {
	names := make([]string, len(c.Sources))
	for i, src := range c.Sources {
		names[i] = src.Name
	}
	return names
}

// CompiledFieldRules compiles the global field rules.
func (c *Config) CompiledFieldRules() (*rules.FieldRules, error) {
	return rules.NewFieldRules(c.FieldRules)
}

// CompiledSourceRules compiles every source's annotation rules.
func (c *Config) CompiledSourceRules() (*rules.SourceRules, error) {
	patterns := make(map[string]map[string]string)
	for _, src := range c.Sources {
		if len(src.Rules) > 0 {
			patterns[src.Name] = src.Rules
		}
	}
	return rules.NewSourceRules(patterns)
}

// OutputDialect resolves the configured output dialect.
func (c *Config) OutputDialect() (csvio.Dialect, error) {
	return csvio.ParseDialect(c.Output.Dialect)
}

// Spec assembles the source's merge spec: identity plus paired target
// and match-by columns.
func (s *Source) Spec() merge.SourceSpec {
	return merge.SourceSpec{
		Name:    s.Name,
		Path:    s.Path,
		Targets: merge.PairColumns(s.TargetColumns, s.ColumnNames),
		MatchBy: merge.PairColumns(s.MatchBy, s.MatchByNames),
	}
}

// ReaderOptions assembles the source's file reading options.
func (s *Source) ReaderOptions() (csvio.Options, error) {
	delim, err := s.DelimiterRune()
	if err != nil {
		return csvio.Options{}, err
	}
	return csvio.Options{
		HeaderRow:   s.HeaderRow,
		IgnoredRows: s.IgnoredRows,
		Encoding:    s.Encoding,
		Delimiter:   delim,
	}, nil
}

// DelimiterRune resolves the configured delimiter. Zero means sniff.
func (s *Source) DelimiterRune() (rune, error) {
	switch s.Delimiter {
	case "":
		return 0, nil
	case `\t`:
		return '\t', nil
	}
	runes := []rune(s.Delimiter)
	if len(runes) != 1 {
		return 0, pkgerrors.NewValidationError("delimiter", s.Delimiter, "must be a single character")
	}
	return runes[0], nil
}

// IntervalDuration parses the watch interval. Empty means zero, which
// disables periodic re-merging.
func (w Watch) IntervalDuration() (time.Duration, error) {
	raw := strings.TrimSpace(w.Interval)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, pkgerrors.NewValidationError("interval", w.Interval, "must be a duration like 30s or 5m")
	}
	if d < 0 {
		return 0, pkgerrors.NewValidationError("interval", w.Interval, "must not be negative")
	}
	return d, nil
}
