package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "fifa_players.csv", c.InputPath)
	require.Equal(t, ".", c.OutputDir)
	require.Equal(t, 300.0, c.DPI)
	require.Equal(t, 5, c.HeadRows)
	require.Equal(t, 1, c.SheetIndex)
	require.False(t, c.Parallel)
	require.False(t, c.WriteManifest)
}

func TestSaveAndLoad_RoundTripFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "fifaviz.yaml")

	c := Default()
	c.OutputDir = "charts"
	c.DPI = 150
	c.Parallel = true
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "charts", got.OutputDir)
	require.Equal(t, 150.0, got.DPI)
	require.True(t, got.Parallel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "fifaviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("head_rows: 3\n"), 0o644))
	t.Setenv("FIFAVIZ_HEAD_ROWS", "8")

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, got.HeadRows)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	c := Default()
	c.DPI = 0
	require.Error(t, c.Validate())

	c = Default()
	c.Delimiter = "pipe"
	require.Error(t, c.Validate())

	c = Default()
	c.Delimiter = "tab"
	require.NoError(t, c.Validate())
	require.Equal(t, '\t', c.DelimiterRune())
}
