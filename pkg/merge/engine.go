// Package merge implements the single-pass merge engine. Sources are
// consumed strictly in priority order: each row either starts a new
// output row or fills the empty cells of the row it matched, and a cell
// once written is never overwritten. Rows that cannot participate are
// routed to an unmatched table instead of stopping the run.
package merge

import (
	"context"
	"io"
	"strconv"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
	"github.com/tabfuse/tabfuse/pkg/logging"
	"github.com/tabfuse/tabfuse/pkg/rules"
	"github.com/tabfuse/tabfuse/pkg/tables"
)

// Source bundles a resolved spec with the reader that yields its rows.
type Source struct {
	Spec SourceSpec
	Rows RowReader
}

// Engine merges prioritized sources into one output table. A zero-option
// engine runs in relaxed mode with no rules. Engines are stateless across
// runs and safe to reuse.
type Engine struct {
	strict      bool
	fieldRules  *rules.FieldRules
	sourceRules *rules.SourceRules
}

// Option configures an Engine.
type Option func(*Engine) error

// WithStrict routes rows of non-first sources that match no existing
// output row to the unmatched table instead of appending them.
func WithStrict(strict bool) Option {
	return func(e *Engine) error {
		e.strict = strict
		return nil
	}
}

// WithFieldRules installs global pre-transfer rules. A row failing any
// applicable field rule is rejected whole.
func WithFieldRules(fr *rules.FieldRules) Option {
	return func(e *Engine) error {
		e.fieldRules = fr
		return nil
	}
}

// WithSourceRules installs per-source post-transfer rules. They never
// block a row; breaches are recorded in the broken-rules column.
func WithSourceRules(sr *rules.SourceRules) Option {
	return func(e *Engine) error {
		e.sourceRules = sr
		return nil
	}
}

// New creates an engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Merge runs the sources through the engine in the order given and
// returns the merged result. The first source seeds the output table;
// every later source fills or extends it. Merge fails fast on invalid
// source specs, on reader errors, and on context cancellation.
func (e *Engine) Merge(ctx context.Context, sources []Source) (*Result, error) {
	if err := validateSources(sources); err != nil {
		return nil, err
	}

	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := logging.FromContext(ctx)

	result := &Result{
		RunID:     runID,
		Table:     tables.New(),
		Unmatched: tables.NewUnmatched(),
		Strict:    e.strict,
		Started:   utc.Now(),
	}

	for i, src := range sources {
		stats, err := e.mergeSource(ctx, result, i, src)
		if err != nil {
			return nil, err
		}
		result.Sources = append(result.Sources, stats)
		logger.Info().
			Str("run_id", runID).
			Str("source", src.Spec.Name).
			Int("rows_read", stats.RowsRead).
			Int("appended", stats.Appended).
			Int("matched", stats.Matched).
			Int("cells_filled", stats.CellsFilled).
			Int("rejected", stats.Rejected).
			Int("unmatched", stats.Unmatched).
			Msg("Source merged")
	}

	Annotate(result.Table, sourceNames(sources), e.sourceRules)

	result.Finished = utc.Now()
	logger.Info().
		Str("run_id", runID).
		Int("rows", result.Table.Len()).
		Int("unmatched", result.Unmatched.Len()).
		Dur("duration", result.Duration()).
		Msg("Merge complete")
	return result, nil
}

// mergeSource consumes one source. The first source (position 0) seeds
// the table; later sources match against it.
func (e *Engine) mergeSource(ctx context.Context, result *Result, position int, src Source) (SourceStats, error) {
	name := src.Spec.Name
	stats := SourceStats{Source: name}
	logger := logging.FromContext(ctx)

	// Declare the source's columns before any row lands so the output
	// schema is stable even when every row is rejected.
	result.Table.AddColumns(src.Spec.OutputColumns()...)

	idx := NewIndex(src.Spec.MatchByOutputs())
	idx.Build(result.Table)

	for {
		if err := ctx.Err(); err != nil {
			return stats, pkgerrors.NewMergeError(name, "read",
				pkgerrors.Join(pkgerrors.ErrCanceled, err))
		}

		raw, err := src.Rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, pkgerrors.WrapMerge(name, "read", err)
		}
		stats.RowsRead++

		row := MapRow(raw, &src.Spec)

		if err := e.fieldRules.Validate(row); err != nil {
			logger.Debug().
				Str("source", name).
				Int("row", stats.RowsRead).
				Err(err).
				Msg("Row rejected by field rules")
			result.Unmatched.Append(name, row)
			stats.Rejected++
			continue
		}

		if existing, ok := idx.Match(row); ok {
			stats.Matched++
			stats.CellsFilled += fillRow(existing, row)
			existing.MarkOrigin(name)
			continue
		}

		if e.strict && position > 0 {
			result.Unmatched.Append(name, row)
			stats.Unmatched++
			continue
		}

		row.MarkOrigin(name)
		result.Table.Append(row)
		idx.Add(row)
		stats.Appended++
	}

	return stats, nil
}

// fillRow copies candidate values into dst wherever dst is still empty
// and returns how many cells gained a non-empty value.
func fillRow(dst, candidate *tables.Row) int {
	filled := 0
	for _, col := range candidate.Columns() {
		if dst.Fill(col, candidate.Value(col)) {
			filled++
		}
	}
	return filled
}

// validateSources rejects source lists the engine cannot run: empty
// lists, blank or duplicate names, missing readers, and non-first
// sources without match-by columns.
func validateSources(sources []Source) error {
	if len(sources) == 0 {
		return pkgerrors.NewConfigError("sources", "at least one source is required", pkgerrors.ErrNoSources)
	}
	seen := make(map[string]struct{}, len(sources))
	for i, src := range sources {
		component := sourceComponent(i)
		name := src.Spec.Name
		if name == "" {
			return pkgerrors.NewConfigError(component, "source name must not be empty", pkgerrors.ErrInvalidInput)
		}
		if _, dup := seen[name]; dup {
			return pkgerrors.NewConfigError(component, "duplicate source name "+name, pkgerrors.ErrAlreadyExists)
		}
		seen[name] = struct{}{}
		if src.Rows == nil {
			return pkgerrors.NewConfigError(component, "source "+name+" has no row reader", pkgerrors.ErrInvalidInput)
		}
		if len(src.Spec.Targets) == 0 && len(src.Spec.MatchBy) == 0 {
			return pkgerrors.NewConfigError(component, "source "+name+" declares no columns", pkgerrors.ErrInvalidInput)
		}
		if i > 0 && len(src.Spec.MatchBy) == 0 {
			return pkgerrors.NewConfigError(component, "source "+name+" needs match-by columns to merge", pkgerrors.ErrInvalidInput)
		}
	}
	return nil
}

func sourceComponent(i int) string {
	return "sources[" + strconv.Itoa(i) + "]"
}

// sourceNames returns the source names in priority order.
func sourceNames(sources []Source) []string {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Spec.Name
	}
	return names
}
