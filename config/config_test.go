package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mlnotes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1, cfg.K)
	assert.Equal(t, IndexBrute, cfg.Index)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
k: 3
normalize: minmax
features: [sweetness, crunchiness]
skip_degenerate: true
index: cover
set: ingredients
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.K)
	assert.Equal(t, "minmax", cfg.Normalize)
	assert.Equal(t, []string{"sweetness", "crunchiness"}, cfg.Features)
	assert.True(t, cfg.SkipDegenerate)
	assert.Equal(t, IndexCover, cfg.Index)
	assert.Equal(t, "ingredients", cfg.Set)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "normalize: zscore\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.K)
	assert.Equal(t, "zscore", cfg.Normalize)
	assert.Equal(t, IndexBrute, cfg.Index)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	// a directory exists but cannot be read as a file
	_, err := Load(t.TempDir())
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "k: [1, 2\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "k: 0\n"))
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Normalize = "log"
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalid))

	cfg = Default()
	cfg.Index = "kdtree"
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalid))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err := ExpandPath("~/notes.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes.db"), got)

	got, err = ExpandPath("/tmp/notes.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/notes.db", got)
}
