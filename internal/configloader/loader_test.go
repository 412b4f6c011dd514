package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtty/internal/configloader"
)

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pager: more\ncolumns: 100\nlocal_only: true\n"), 0o644))

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{ExplicitPath: path})
	require.NoError(t, err)

	assert.Equal(t, "more", result.Config.Pager)
	assert.Equal(t, 100, result.Config.Columns)
	assert.True(t, result.Config.LocalOnly)
	assert.Equal(t, []string{path}, result.LoadedFrom)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := configloader.Load(context.Background(), configloader.LoadOptions{
		ExplicitPath: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	require.Error(t, err)
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	// No user config interference.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".mdtty.yml"), []byte("line_numbers: true\n"), 0o644))

	nested := filepath.Join(root, "docs", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{WorkingDir: nested})
	require.NoError(t, err)

	assert.True(t, result.Config.LineNumbers)
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_SearchStopsAtVCSRoot(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, ".mdtty.yml"), []byte("stats: true\n"), 0o644))

	// The repo root below outer has a .git dir; the search must not escape it.
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{WorkingDir: repo})
	require.NoError(t, err)

	assert.False(t, result.Config.Stats)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pager: [unclosed\n"), 0o644))

	_, err := configloader.Load(context.Background(), configloader.LoadOptions{ExplicitPath: path})
	require.Error(t, err)
}

func TestLoad_NothingDiscovered(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, configloader.Config{}, result.Config)
	assert.Empty(t, result.LoadedFrom)
}
