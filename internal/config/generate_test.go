package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/pkg/constants"
	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

func TestScaffoldRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabfuse.yaml")
	require.NoError(t, config.WriteScaffold(path, 3, false))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Sources, 3)
	assert.Equal(t, "source2", cfg.Sources[1].Name)
	assert.Equal(t, "data/source3.csv", cfg.Sources[2].Path)
	assert.Equal(t, []string{"ID"}, cfg.Sources[0].MatchBy)
	assert.Equal(t, constants.DefaultOutputFile, cfg.Output.Path)
	assert.Equal(t, constants.DefaultDialect, cfg.Output.Dialect)
	assert.False(t, cfg.Strict)
}

func TestScaffoldClampsToOneSource(t *testing.T) {
	scaffold := config.Scaffold(0)
	assert.Contains(t, scaffold, "name: source1")
	assert.NotContains(t, scaffold, "name: source2")
}

func TestWriteScaffoldRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabfuse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

	err := config.WriteScaffold(path, 1, false)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsAlreadyExists(err))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "keep", string(data))

	require.NoError(t, config.WriteScaffold(path, 1, true))
	data, readErr = os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "name: source1")
}
