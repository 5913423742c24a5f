// Package tabfuse merges prioritized delimited files into a single
// output table. Sources are read in priority order; the first source
// seeds the table and later sources fill only the cells earlier sources
// left empty, matched row-to-row on configured key columns.
//
// The package wraps the merge engine with file handling: it loads a
// YAML or TOML configuration, opens and decodes every source, runs the
// merge, and writes the merged table, the unmatched rows, and an
// optional markdown report.
//
// Example usage:
//
//	// Create a runner from a config file
//	runner, err := tabfuse.New(tabfuse.WithConfigFile("tabfuse.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Execute one merge run
//	result, err := runner.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
//	// Or keep re-merging while the inputs change
//	err = runner.Watch(ctx)
package tabfuse

import (
	"context"

	"github.com/google/uuid"

	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/internal/csvio"
	"github.com/tabfuse/tabfuse/internal/report"
	"github.com/tabfuse/tabfuse/pkg/constants"
	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
	"github.com/tabfuse/tabfuse/pkg/logging"
	"github.com/tabfuse/tabfuse/pkg/merge"
)

// Compile-time interface check to ensure proper implementation.
var _ Runner = (*runner)(nil)

// Runner executes configured merge runs. A Runner is not safe for
// concurrent use; Watch owns it while active.
type Runner interface {
	// Config returns the resolved run configuration.
	Config() *config.Config

	// Run executes one merge: read every source, merge, write outputs.
	Run(ctx context.Context) (*merge.Result, error)

	// Watch re-runs the merge whenever the config or a source file
	// changes, until the context ends.
	Watch(ctx context.Context) error
}

// runner is the internal implementation of the Runner interface.
type runner struct {
	options *options
	cfg     *config.Config
}

// New creates a new Runner instance with the given options.
func New(opts ...Option) (Runner, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	r := &runner{options: o}

	switch {
	case o.cfg != nil:
		r.cfg = o.cfg
	case o.configPath != "":
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		r.cfg = cfg
	default:
		cfg, err := config.Load(constants.DefaultConfigFile)
		if err != nil {
			return nil, err
		}
		r.cfg = cfg
	}

	return r, nil
}

// Config returns the resolved run configuration.
func (r *runner) Config() *config.Config {
	return r.cfg
}

// Run executes one merge run.
func (r *runner) Run(ctx context.Context) (*merge.Result, error) {
	if logging.RunID(ctx) == "" {
		ctx = logging.WithRunID(ctx, uuid.NewString())
	}
	log := logging.FromContext(ctx)

	fieldRules, err := r.cfg.CompiledFieldRules()
	if err != nil {
		return nil, err
	}
	sourceRules, err := r.cfg.CompiledSourceRules()
	if err != nil {
		return nil, err
	}
	dialect, err := r.cfg.OutputDialect()
	if err != nil {
		return nil, err
	}

	engine, err := merge.New(
		merge.WithStrict(r.strict()),
		merge.WithFieldRules(fieldRules),
		merge.WithSourceRules(sourceRules),
	)
	if err != nil {
		return nil, err
	}

	sources, closeSources, err := r.openSources()
	if err != nil {
		return nil, err
	}
	defer closeSources()

	result, err := engine.Merge(ctx, sources)
	if err != nil {
		return nil, err
	}

	if r.options.dryRun {
		log.Info().
			Str("run_id", result.RunID).
			Int("rows", result.Table.Len()).
			Msg("Dry run, skipping writes")
	} else if err := r.writeOutputs(ctx, result, dialect); err != nil {
		return nil, err
	}

	if r.options.onResult != nil {
		r.options.onResult(result)
	}
	return result, nil
}

// strict resolves the effective strict flag: option override first,
// then the config value.
func (r *runner) strict() bool {
	if r.options.strict != nil {
		return *r.options.strict
	}
	return r.cfg.Strict
}

// outputPath resolves where the merged table goes.
func (r *runner) outputPath() string {
	if r.options.outputPath != "" {
		return r.options.outputPath
	}
	if r.cfg.Output.Path != "" {
		return r.cfg.Output.Path
	}
	return constants.DefaultOutputFile
}

// unmatchedPath resolves where unmatched rows go. Empty means they are
// not written.
func (r *runner) unmatchedPath() string {
	if r.options.unmatchedPath != "" {
		return r.options.unmatchedPath
	}
	return r.cfg.Output.UnmatchedPath
}

// reportPath resolves where the markdown report goes. Empty means no
// report.
func (r *runner) reportPath() string {
	if r.options.reportPath != "" {
		return r.options.reportPath
	}
	return r.cfg.Output.ReportPath
}

// openSources opens a streaming reader for every configured source in
// priority order. The returned func closes them all.
func (r *runner) openSources() ([]merge.Source, func(), error) {
	sources := make([]merge.Source, 0, len(r.cfg.Sources))
	readers := make([]*csvio.Reader, 0, len(r.cfg.Sources))
	closeAll := func() {
		for _, rd := range readers {
			_ = rd.Close()
		}
	}

	for i := range r.cfg.Sources {
		src := &r.cfg.Sources[i]
		opts, err := src.ReaderOptions()
		if err != nil {
			closeAll()
			return nil, nil, pkgerrors.WrapConfig(src.Name, err)
		}
		reader, err := csvio.Open(src.Path, opts)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		readers = append(readers, reader)
		sources = append(sources, merge.Source{Spec: src.Spec(), Rows: reader})
	}
	return sources, closeAll, nil
}

// writeOutputs writes the merged table, the unmatched rows when a path
// is configured and any exist, and the optional report.
func (r *runner) writeOutputs(ctx context.Context, result *merge.Result, dialect csvio.Dialect) error {
	log := logging.FromContext(ctx)

	outPath := r.outputPath()
	if err := csvio.WriteTable(outPath, dialect, result.Table); err != nil {
		return err
	}
	log.Info().
		Str("path", outPath).
		Str("dialect", dialect.Name).
		Int("rows", result.Table.Len()).
		Msg("Merged table written")

	unmatchedWritten := ""
	if p := r.unmatchedPath(); p != "" && result.Unmatched.Len() > 0 {
		if err := csvio.WriteUnmatched(p, dialect, result.Unmatched); err != nil {
			return err
		}
		unmatchedWritten = p
		log.Info().
			Str("path", p).
			Int("rows", result.Unmatched.Len()).
			Msg("Unmatched rows written")
	}

	if p := r.reportPath(); p != "" {
		info := report.Info{
			Result:        result,
			ConfigPath:    r.cfg.Path(),
			OutputPath:    outPath,
			UnmatchedPath: unmatchedWritten,
		}
		if err := report.WriteFile(p, info); err != nil {
			return err
		}
		log.Info().Str("path", p).Msg("Merge report written")
	}
	return nil
}
