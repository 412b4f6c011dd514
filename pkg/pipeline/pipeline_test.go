package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdtty/pkg/pipeline"
	"github.com/yaklabco/mdtty/pkg/render"
	"github.com/yaklabco/mdtty/pkg/resources"
)

// fakeRenderer records render calls and plays back a canned response.
type fakeRenderer struct {
	calls  int
	source []byte
	out    string
	err    error
}

func (f *fakeRenderer) Render(_ context.Context, _ render.Settings, _ render.Environment,
	_ resources.Resolver, w io.Writer, _ ast.Node, source []byte,
) error {
	f.calls++
	f.source = source
	if f.out != "" {
		if _, err := io.WriteString(w, f.out); err != nil {
			return err
		}
	}
	return f.err
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newPipeline(r render.Renderer) *pipeline.Pipeline {
	resolver := resources.ForAccess(resources.LocalOnly, resources.DefaultReadLimit, "mdtty/test")
	return pipeline.New(r, resolver, render.Settings{Columns: 80})
}

func TestProcessFile_StatsOnlySkipsRendering(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "# Title\n\nwords here\n")
	renderer := &fakeRenderer{}
	var sink strings.Builder

	err := newPipeline(renderer).ProcessFile(context.Background(), path, &sink,
		pipeline.Options{ShowStats: true})

	require.NoError(t, err)
	assert.Equal(t, 0, renderer.calls, "stats-only mode must not render")
	assert.Contains(t, sink.String(), "Document Statistics:")
	// The "#" marker is whitespace-delimited, so it counts as a word.
	assert.Contains(t, sink.String(), "Words: 4")
}

func TestProcessFile_StatsAndLineNumbersRenders(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "line one\nline two\n")
	renderer := &fakeRenderer{out: "rendered\n"}
	var sink strings.Builder

	err := newPipeline(renderer).ProcessFile(context.Background(), path, &sink,
		pipeline.Options{ShowStats: true, ShowLineNumbers: true})

	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Contains(t, sink.String(), "Document Statistics:")
	assert.Contains(t, sink.String(), "rendered")
}

func TestProcessFile_LineNumbersAnnotateSource(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "alpha\nbeta\n")
	renderer := &fakeRenderer{}
	var sink strings.Builder

	err := newPipeline(renderer).ProcessFile(context.Background(), path, &sink,
		pipeline.Options{ShowLineNumbers: true})

	require.NoError(t, err)
	assert.Contains(t, string(renderer.source), "1 │ alpha")
	assert.Contains(t, string(renderer.source), "2 │ beta")
}

func TestProcessFile_PlainRender(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "plain text\n")
	renderer := &fakeRenderer{out: "styled output\n"}
	var sink strings.Builder

	err := newPipeline(renderer).ProcessFile(context.Background(), path, &sink, pipeline.Options{})

	require.NoError(t, err)
	assert.Equal(t, "styled output\n", sink.String())
	assert.Equal(t, "plain text\n", string(renderer.source), "source must be untouched without line numbers")
}

func TestProcessFile_BrokenPipeIsSuccess(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "content\n")
	renderer := &fakeRenderer{err: fmt.Errorf("write: %w", syscall.EPIPE)}
	var sink strings.Builder

	err := newPipeline(renderer).ProcessFile(context.Background(), path, &sink, pipeline.Options{})

	assert.NoError(t, err, "broken pipe must be swallowed")
}

func TestProcessFile_OtherWriteErrorFails(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "content\n")
	cause := errors.New("disk full")
	renderer := &fakeRenderer{err: cause}
	var sink strings.Builder

	err := newPipeline(renderer).ProcessFile(context.Background(), path, &sink, pipeline.Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause, "original cause must be preserved")
	assert.Contains(t, err.Error(), filepath.Base(path), "failure must name the file")
}

func TestProcessFile_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "absent.md")
	renderer := &fakeRenderer{}
	var sink strings.Builder

	err := newPipeline(renderer).ProcessFile(context.Background(), missing, &sink, pipeline.Options{})

	require.Error(t, err)
	assert.Equal(t, 0, renderer.calls)
	assert.Contains(t, err.Error(), "absent.md")
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pipeline.OutcomeOK, pipeline.Classify(nil))
	assert.Equal(t, pipeline.OutcomeBrokenPipe, pipeline.Classify(syscall.EPIPE))
	assert.Equal(t, pipeline.OutcomeBrokenPipe,
		pipeline.Classify(fmt.Errorf("flush: %w", syscall.EPIPE)))
	assert.Equal(t, pipeline.OutcomeBrokenPipe, pipeline.Classify(io.ErrClosedPipe))
	assert.Equal(t, pipeline.OutcomeFatal, pipeline.Classify(errors.New("disk full")))
}
