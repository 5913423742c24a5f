package merge

// ColumnPair binds a column in a source file to its name in the output
// table.
type ColumnPair struct {
	// Source is the column name in the source file.
	Source string

	// Output is the column name in the output table.
	Output string
}

// SourceSpec describes one prioritized input table: its identity and how
// its columns map into the output schema. Priority is positional; the
// engine receives specs in priority order.
type SourceSpec struct {
	// Name identifies the source in provenance, annotations, and logs.
	// Names must be unique and non-empty.
	Name string

	// Path is where the source was read from. The engine does not touch
	// it; it exists for reporting.
	Path string

	// Targets are the value columns transferred into the output table.
	Targets []ColumnPair

	// MatchBy are the key columns used to match rows across sources.
	// Every non-first source needs at least one.
	MatchBy []ColumnPair
}

// PairColumns zips source columns with configured output names
// positionally. A column without a configured name (or with an empty
// one) keeps its own name; surplus configured names are ignored.
func PairColumns(sourceCols, outputNames []string) []ColumnPair {
	pairs := make([]ColumnPair, 0, len(sourceCols))
	for i, col := range sourceCols {
		out := col
		if i < len(outputNames) && outputNames[i] != "" {
			out = outputNames[i]
		}
		pairs = append(pairs, ColumnPair{Source: col, Output: out})
	}
	return pairs
}

// OutputColumns returns the source's output columns, targets first and
// match-by columns after, deduplicated in declaration order.
func (s *SourceSpec) OutputColumns() []string {
	seen := make(map[string]struct{}, len(s.Targets)+len(s.MatchBy))
	out := make([]string, 0, len(s.Targets)+len(s.MatchBy))
	for _, p := range s.Targets {
		if _, ok := seen[p.Output]; ok {
			continue
		}
		seen[p.Output] = struct{}{}
		out = append(out, p.Output)
	}
	for _, p := range s.MatchBy {
		if _, ok := seen[p.Output]; ok {
			continue
		}
		seen[p.Output] = struct{}{}
		out = append(out, p.Output)
	}
	return out
}

// MatchByOutputs returns the output names of the match-by columns,
// deduplicated in declaration order.
func (s *SourceSpec) MatchByOutputs() []string {
	seen := make(map[string]struct{}, len(s.MatchBy))
	out := make([]string, 0, len(s.MatchBy))
	for _, p := range s.MatchBy {
		if _, ok := seen[p.Output]; ok {
			continue
		}
		seen[p.Output] = struct{}{}
		out = append(out, p.Output)
	}
	return out
}

// SourceColumns returns every source-file column the spec reads,
// deduplicated in declaration order.
func (s *SourceSpec) SourceColumns() []string {
	seen := make(map[string]struct{}, len(s.Targets)+len(s.MatchBy))
	out := make([]string, 0, len(s.Targets)+len(s.MatchBy))
	for _, p := range s.Targets {
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		out = append(out, p.Source)
	}
	for _, p := range s.MatchBy {
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		out = append(out, p.Source)
	}
	return out
}
