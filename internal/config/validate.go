package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/tabfuse/tabfuse/internal/csvio"
	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

// reservedNameChars never appear in source names. They clash with
// provenance annotations, shells, and file names.
const reservedNameChars = "*'\"?!^`$/\\#&@|"

// Validate checks the whole configuration and reports every problem at
// once, joined into a single error.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Sources) == 0 {
		errs = append(errs, pkgerrors.NewConfigError("sources", "at least one source is required", pkgerrors.ErrNoSources))
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for i := range c.Sources {
		src := &c.Sources[i]
		component := fmt.Sprintf("sources[%d]", i)

		switch {
		case src.Name == "":
			errs = append(errs, pkgerrors.NewConfigError(component, "name is required", pkgerrors.ErrInvalidInput))
		default:
			if idx := strings.IndexAny(src.Name, reservedNameChars); idx >= 0 {
				errs = append(errs, pkgerrors.NewConfigError(component,
					fmt.Sprintf("name %q contains reserved character %q", src.Name, rune(src.Name[idx])),
					pkgerrors.ErrInvalidInput))
			}
			if _, dup := seen[src.Name]; dup {
				errs = append(errs, pkgerrors.NewConfigError(component,
					fmt.Sprintf("duplicate source name %q", src.Name), pkgerrors.ErrAlreadyExists))
			}
			seen[src.Name] = struct{}{}
		}

		if src.Path == "" {
			errs = append(errs, pkgerrors.NewConfigError(component, "path is required", pkgerrors.ErrInvalidInput))
		}
		if src.HeaderRow < 0 {
			errs = append(errs, pkgerrors.NewConfigError(component, "header_row must not be negative", pkgerrors.ErrInvalidInput))
		}
		for _, row := range src.IgnoredRows {
			if row < 0 {
				errs = append(errs, pkgerrors.NewConfigError(component,
					fmt.Sprintf("ignored_rows entry %d must not be negative", row), pkgerrors.ErrInvalidInput))
			}
		}
		if _, err := src.DelimiterRune(); err != nil {
			errs = append(errs, pkgerrors.WrapConfig(component, err))
		}
		if err := csvio.ValidateEncoding(src.Encoding); err != nil {
			errs = append(errs, pkgerrors.WrapConfig(component, err))
		}
		if len(src.TargetColumns) == 0 && len(src.MatchBy) == 0 {
			errs = append(errs, pkgerrors.NewConfigError(component, "declares no columns", pkgerrors.ErrInvalidInput))
		}
		if i > 0 && len(src.MatchBy) == 0 {
			errs = append(errs, pkgerrors.NewConfigError(component,
				"a source after the first needs match_by columns", pkgerrors.ErrInvalidInput))
		}
	}

	if _, err := c.CompiledFieldRules(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.CompiledSourceRules(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.OutputDialect(); err != nil {
		errs = append(errs, pkgerrors.WrapConfig("output", err))
	}
	if _, err := c.Watch.IntervalDuration(); err != nil {
		errs = append(errs, pkgerrors.WrapConfig("watch", err))
	}

	return pkgerrors.Join(errs...)
}

// CheckFiles verifies that every source file exists and is readable.
// It is separate from Validate so a config can be validated before its
// data files are in place.
func (c *Config) CheckFiles() error {
	var errs []error
	for _, src := range c.Sources {
		if src.Path == "" {
			continue
		}
		info, err := os.Stat(src.Path)
		if err != nil {
			errs = append(errs, pkgerrors.NewIOError("stat", src.Path, err))
			continue
		}
		if info.IsDir() {
			errs = append(errs, pkgerrors.NewValidationError("path", src.Path, "is a directory, not a file"))
		}
	}
	return pkgerrors.Join(errs...)
}
