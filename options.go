package tabfuse

import (
	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/pkg/errors"
	"github.com/tabfuse/tabfuse/pkg/merge"
)

// options configures a Runner.
type options struct {
	configPath    string
	cfg           *config.Config
	strict        *bool
	dryRun        bool
	outputPath    string
	unmatchedPath string
	reportPath    string
	onResult      func(*merge.Result)
}

func defaultOptions() *options {
	return &options{}
}

// Option is a function that configures a Runner.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns runner options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithConfigFile loads the run configuration from path.
func WithConfigFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "config",
				Message: "path cannot be empty",
			}
		}
		o.configPath = path
		return nil
	}
}

// WithConfig uses an already loaded configuration. It must have passed
// validation.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return &errors.ValidationError{
				Field:   "config",
				Message: "cannot be nil",
			}
		}
		o.cfg = cfg
		return nil
	}
}

// WithStrict overrides the configured strict flag.
func WithStrict(enabled bool) Option {
	return func(o *options) error {
		o.strict = &enabled
		return nil
	}
}

// WithDryRun merges without writing any output file.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithOutputPath overrides the configured merged output path.
func WithOutputPath(path string) Option {
	return func(o *options) error {
		o.outputPath = path
		return nil
	}
}

// WithUnmatchedPath overrides where unmatched rows are written.
func WithUnmatchedPath(path string) Option {
	return func(o *options) error {
		o.unmatchedPath = path
		return nil
	}
}

// WithReportPath overrides where the markdown merge report is written.
func WithReportPath(path string) Option {
	return func(o *options) error {
		o.reportPath = path
		return nil
	}
}

// WithOnResult registers a callback invoked after every successful run,
// watch-triggered runs included.
func WithOnResult(fn func(*merge.Result)) Option {
	return func(o *options) error {
		if fn == nil {
			return &errors.ValidationError{
				Field:   "onResult",
				Message: "cannot be nil",
			}
		}
		o.onResult = fn
		return nil
	}
}
