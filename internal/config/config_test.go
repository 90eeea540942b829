package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "$_gen_", cfg.FreshNamePrefix)
	require.Equal(t, "hn", cfg.HasNextField)
	require.Equal(t, "next", cfg.NextField)
	require.Equal(t, "state", cfg.StateField)
	require.Equal(t, 2, cfg.IndentWidth)
}

func TestLoadOverridesPartialFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indentWidth: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.IndentWidth)
	require.Equal(t, "$_gen_", cfg.FreshNamePrefix, "fields the file doesn't mention keep their default")
}

func TestLoadRejectsNonPositiveIndentWidth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indentWidth: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "indentWidth must be positive")
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
