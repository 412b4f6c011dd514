package resources_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtty/pkg/resources"
)

func TestFileResolver(t *testing.T) {
	t.Parallel()

	t.Run("resolves a plain path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

		r := resources.NewFileResolver(resources.DefaultReadLimit)
		data, err := r.Resolve(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("resolves a file URL with escapes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "with space.txt")
		require.NoError(t, os.WriteFile(path, []byte("spaced"), 0o644))

		r := resources.NewFileResolver(resources.DefaultReadLimit)
		escaped := "file://" + filepath.Dir(path) + "/with%20space.txt"
		data, err := r.Resolve(context.Background(), escaped)

		require.NoError(t, err)
		assert.Equal(t, []byte("spaced"), data)
	})

	t.Run("declines remote schemes", func(t *testing.T) {
		t.Parallel()

		r := resources.NewFileResolver(resources.DefaultReadLimit)
		_, err := r.Resolve(context.Background(), "http://example.com/a.png")

		assert.ErrorIs(t, err, resources.ErrNotApplicable)
	})

	t.Run("enforces the size ceiling", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "big.bin")
		require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

		r := resources.NewFileResolver(16)
		_, err := r.Resolve(context.Background(), path)

		assert.ErrorIs(t, err, resources.ErrTooLarge)
	})

	t.Run("content at exactly the ceiling passes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "exact.bin")
		require.NoError(t, os.WriteFile(path, make([]byte, 16), 0o644))

		r := resources.NewFileResolver(16)
		data, err := r.Resolve(context.Background(), path)

		require.NoError(t, err)
		assert.Len(t, data, 16)
	})

	t.Run("missing file is a failure, not a decline", func(t *testing.T) {
		t.Parallel()

		r := resources.NewFileResolver(resources.DefaultReadLimit)
		_, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "absent.png"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, resources.ErrNotApplicable)
	})
}
