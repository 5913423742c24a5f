package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabfuse/tabfuse/internal/config"
	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

func validConfig() *config.Config {
	return &config.Config{
		Sources: []config.Source{
			{Name: "payroll", Path: "payroll.csv", TargetColumns: []string{"salary"}, MatchBy: []string{"id"}},
			{Name: "badges", Path: "badges.csv", TargetColumns: []string{"color"}, MatchBy: []string{"id"}},
		},
		Output: config.Output{Path: "merged.csv"},
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*config.Config)
		wantContains string
	}{
		{
			name:         "no sources",
			mutate:       func(c *config.Config) { c.Sources = nil },
			wantContains: "at least one source",
		},
		{
			name:         "empty name",
			mutate:       func(c *config.Config) { c.Sources[0].Name = "" },
			wantContains: "name is required",
		},
		{
			name:         "reserved character in name",
			mutate:       func(c *config.Config) { c.Sources[0].Name = "pay/roll" },
			wantContains: "reserved character",
		},
		{
			name:         "duplicate names",
			mutate:       func(c *config.Config) { c.Sources[1].Name = "payroll" },
			wantContains: `duplicate source name "payroll"`,
		},
		{
			name:         "empty path",
			mutate:       func(c *config.Config) { c.Sources[1].Path = "" },
			wantContains: "path is required",
		},
		{
			name:         "negative header row",
			mutate:       func(c *config.Config) { c.Sources[0].HeaderRow = -1 },
			wantContains: "header_row must not be negative",
		},
		{
			name:         "negative ignored row",
			mutate:       func(c *config.Config) { c.Sources[0].IgnoredRows = []int{2, -2} },
			wantContains: "ignored_rows entry -2",
		},
		{
			name:         "multi character delimiter",
			mutate:       func(c *config.Config) { c.Sources[0].Delimiter = ";;" },
			wantContains: "must be a single character",
		},
		{
			name:         "unknown encoding",
			mutate:       func(c *config.Config) { c.Sources[0].Encoding = "ebcdic" },
			wantContains: "must be one of",
		},
		{
			name: "source without columns",
			mutate: func(c *config.Config) {
				c.Sources[0].TargetColumns = nil
				c.Sources[0].MatchBy = nil
			},
			wantContains: "declares no columns",
		},
		{
			name:         "later source without match_by",
			mutate:       func(c *config.Config) { c.Sources[1].MatchBy = nil },
			wantContains: "needs match_by columns",
		},
		{
			name:         "bad field rule pattern",
			mutate:       func(c *config.Config) { c.FieldRules = map[string]string{"ID": "("} },
			wantContains: "ID",
		},
		{
			name:         "bad source rule pattern",
			mutate:       func(c *config.Config) { c.Sources[0].Rules = map[string]string{"Salary": "["} },
			wantContains: "payroll",
		},
		{
			name:         "unknown dialect",
			mutate:       func(c *config.Config) { c.Output.Dialect = "parquet" },
			wantContains: "parquet",
		},
		{
			name:         "bad watch interval",
			mutate:       func(c *config.Config) { c.Watch.Interval = "whenever" },
			wantContains: "must be a duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Sources[0].Path = ""
	cfg.Sources[1].MatchBy = nil
	cfg.Output.Dialect = "parquet"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
	assert.Contains(t, err.Error(), "needs match_by columns")
	assert.Contains(t, err.Error(), "parquet")
}

func TestValidateErrorKinds(t *testing.T) {
	cfg := validConfig()
	cfg.Sources = nil
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConfigError(err))

	cfg = validConfig()
	cfg.Sources[1].Name = "payroll"
	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsAlreadyExists(err))
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(present, []byte("id\n1\n"), 0o644))

	cfg := &config.Config{
		Sources: []config.Source{
			{Name: "present", Path: present},
		},
	}
	require.NoError(t, cfg.CheckFiles())

	cfg.Sources = append(cfg.Sources, config.Source{Name: "absent", Path: filepath.Join(dir, "absent.csv")})
	err := cfg.CheckFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.csv")

	cfg.Sources = []config.Source{{Name: "dir", Path: dir}}
	err = cfg.CheckFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
