package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "source",
			ID:       "inventory",
		}
		assert.Equal(t, "source with name inventory not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("column", "Serial")
		assert.Equal(t, "column with name Serial not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("source", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "name",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field name: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("header_row", -3, "must not be negative")
		assert.Contains(t, err.Error(), "header_row")
		assert.Contains(t, err.Error(), "must not be negative")
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "sources[1]",
			Message:   "match_by: at least one column required",
		}
		assert.Contains(t, err.Error(), "sources[1]")
		assert.Contains(t, err.Error(), "match_by")
		assert.True(t, pkgerrors.IsConfigError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewConfigError("output", "path cannot be empty", nil)
		assert.Contains(t, err.Error(), "output")
		assert.Contains(t, err.Error(), "path cannot be empty")
	})

	t.Run("without component", func(t *testing.T) {
		err := pkgerrors.NewConfigError("", "no sources", nil)
		assert.Equal(t, "configuration error: no sources", err.Error())
	})
}

func TestRuleError(t *testing.T) {
	t.Run("source rule", func(t *testing.T) {
		base := errors.New("missing closing )")
		err := pkgerrors.NewRuleError("inventory", "Serial", `(\d+`, base)
		assert.Contains(t, err.Error(), "inventory.Serial")
		assert.Contains(t, err.Error(), `(\d+`)
		assert.Equal(t, base, err.Unwrap())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("field rule", func(t *testing.T) {
		err := pkgerrors.NewRuleError("", "Serial", `[`, errors.New("missing closing ]"))
		assert.Contains(t, err.Error(), "field rule")
		assert.Contains(t, err.Error(), "Serial")
		assert.True(t, pkgerrors.IsRuleError(err))
	})
}

func TestMergeError(t *testing.T) {
	t.Run("with source", func(t *testing.T) {
		base := errors.New("record on line 7: wrong number of fields")
		err := pkgerrors.NewMergeError("audit", "read", base)
		assert.Contains(t, err.Error(), "audit")
		assert.Contains(t, err.Error(), "read")
		assert.Equal(t, base, err.Unwrap())
	})

	t.Run("without source", func(t *testing.T) {
		err := pkgerrors.NewMergeError("", "annotate", errors.New("boom"))
		assert.Equal(t, "merge error during annotate: boom", err.Error())
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file and position", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "data.csv",
			Line:    10,
			Column:  5,
			Message: "bare quote in field",
		}
		assert.Contains(t, err.Error(), "csv")
		assert.Contains(t, err.Error(), "data.csv")
		assert.Contains(t, err.Error(), "10:5")
		assert.Contains(t, err.Error(), "bare quote")
	})

	t.Run("with file only", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "yaml",
			File:    "tabfuse.yaml",
			Message: "invalid indentation",
		}
		assert.Contains(t, err.Error(), "yaml")
		assert.Contains(t, err.Error(), "tabfuse.yaml")
		assert.Contains(t, err.Error(), "invalid indentation")
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "toml",
			Message: "syntax error",
		}
		assert.Contains(t, err.Error(), "toml parse error")
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("constructor and wrap", func(t *testing.T) {
		baseErr := errors.New("EOF")
		err := pkgerrors.NewParseError("csv", "short.csv", "unexpected end", baseErr)
		assert.Contains(t, err.Error(), "csv")
		assert.Equal(t, baseErr, err.Unwrap())

		wrapped := pkgerrors.WrapParse("toml", "tabfuse.toml", baseErr)
		parseErr, ok := wrapped.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "toml", parseErr.Format)
		assert.Equal(t, "tabfuse.toml", parseErr.File)
	})
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "read",
			Path:      "/tmp/test.csv",
			Message:   "permission denied",
			Err:       errors.New("permission denied"),
		}
		assert.Contains(t, err.Error(), "read")
		assert.Contains(t, err.Error(), "/tmp/test.csv")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/merged.csv", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		baseErr := errors.New("no such file")
		err := pkgerrors.WrapIO("open", "missing.csv", baseErr)
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "open", ioErr.Operation)
		assert.Equal(t, "missing.csv", ioErr.Path)
	})
}

func TestWrapHelpers(t *testing.T) {
	t.Run("WrapValidation", func(t *testing.T) {
		err := pkgerrors.WrapValidation("delimiter", errors.New("must be one character"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "delimiter")
		assert.Contains(t, err.Error(), "must be one character")

		// nil error returns nil
		assert.Nil(t, pkgerrors.WrapValidation("field", nil))
	})

	t.Run("WrapIO", func(t *testing.T) {
		err := pkgerrors.WrapIO("write", "/tmp/file", errors.New("disk full"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "write")
		assert.Contains(t, err.Error(), "/tmp/file")

		assert.Nil(t, pkgerrors.WrapIO("read", "file", nil))
	})

	t.Run("WrapConfig", func(t *testing.T) {
		err := pkgerrors.WrapConfig("watch", errors.New("interval must not be negative"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "watch")
		assert.True(t, pkgerrors.IsConfigError(err))

		assert.Nil(t, pkgerrors.WrapConfig("watch", nil))
	})

	t.Run("WrapMerge", func(t *testing.T) {
		err := pkgerrors.WrapMerge("audit", "read", errors.New("short record"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "audit")

		assert.Nil(t, pkgerrors.WrapMerge("audit", "read", nil))
	})
}

func TestErrorChaining(t *testing.T) {
	t.Run("multiple wrapping", func(t *testing.T) {
		baseErr := errors.New("connection reset")
		ioErr := pkgerrors.WrapIO("read", "data.csv", baseErr)
		mergeErr := &pkgerrors.MergeError{
			Source: "inventory",
			Stage:  "read",
			Err:    ioErr,
		}

		// errors.As should work through the chain
		var targetIOErr *pkgerrors.IOError
		assert.True(t, errors.As(mergeErr, &targetIOErr))
		assert.Equal(t, "read", targetIOErr.Operation)
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", pkgerrors.ErrNotFound},
		{"ErrAlreadyExists", pkgerrors.ErrAlreadyExists},
		{"ErrInvalidInput", pkgerrors.ErrInvalidInput},
		{"ErrNoSources", pkgerrors.ErrNoSources},
		{"ErrUnsupported", pkgerrors.ErrUnsupported},
		{"ErrCanceled", pkgerrors.ErrCanceled},
	}

	for _, tc := range sentinels {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotNil(t, tc.err)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}
