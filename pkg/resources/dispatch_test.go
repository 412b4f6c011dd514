package resources_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtty/pkg/resources"
)

// spyResolver records calls and plays back a canned response.
type spyResolver struct {
	calls int
	data  []byte
	err   error
}

func (s *spyResolver) Resolve(_ context.Context, _ string) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

func TestDispatcher_ChainOrder(t *testing.T) {
	t.Parallel()

	t.Run("file URL never reaches the network strategy", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "img.png")
		require.NoError(t, os.WriteFile(path, []byte("pixels"), 0o644))

		network := &spyResolver{data: []byte("wrong")}
		d := resources.NewDispatcher(resources.Remote,
			resources.NewFileResolver(resources.DefaultReadLimit),
			network,
		)

		data, err := d.Resolve(context.Background(), "file://"+path)
		require.NoError(t, err)
		assert.Equal(t, []byte("pixels"), data)
		assert.Equal(t, 0, network.calls, "network strategy must not be invoked")
	})

	t.Run("first success wins", func(t *testing.T) {
		t.Parallel()

		first := &spyResolver{data: []byte("one")}
		second := &spyResolver{data: []byte("two")}
		d := resources.NewDispatcher(resources.Remote, first, second)

		data, err := d.Resolve(context.Background(), "anything")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), data)
		assert.Equal(t, 0, second.calls)
	})

	t.Run("decline falls through, failure does not", func(t *testing.T) {
		t.Parallel()

		declining := &spyResolver{err: fmt.Errorf("%w: nope", resources.ErrNotApplicable)}
		failing := &spyResolver{err: errors.New("connection reset")}
		last := &spyResolver{data: []byte("unreachable")}
		d := resources.NewDispatcher(resources.Remote, declining, failing, last)

		_, err := d.Resolve(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, 1, declining.calls)
		assert.Equal(t, 1, failing.calls)
		assert.Equal(t, 0, last.calls, "failure must stop the chain")
	})
}

func TestDispatcher_LocalOnlyPolicy(t *testing.T) {
	t.Parallel()

	d := resources.ForAccess(resources.LocalOnly, resources.DefaultReadLimit, "mdtty/test")

	_, err := d.Resolve(context.Background(), "http://example.com/image.png")
	assert.ErrorIs(t, err, resources.ErrRemoteDisabled)

	_, err = d.Resolve(context.Background(), "https://example.com/image.png")
	assert.ErrorIs(t, err, resources.ErrRemoteDisabled)
}

func TestDispatcher_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	d := resources.ForAccess(resources.Remote, resources.DefaultReadLimit, "mdtty/test")

	_, err := d.Resolve(context.Background(), "ftp://example.com/file")
	assert.ErrorIs(t, err, resources.ErrUnsupportedScheme)
}

func TestAccessFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, resources.LocalOnly, resources.AccessFor(true))
	assert.Equal(t, resources.Remote, resources.AccessFor(false))
}
