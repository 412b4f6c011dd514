// Package render defines the renderer boundary the pipeline drives, plus a
// plain ANSI terminal renderer.
//
// The pipeline treats the renderer as a black box: it hands over settings,
// an environment, a resource resolver, a byte sink, and a parsed document,
// and gets back rendered output or an I/O error.
package render

import (
	"context"
	"io"
	"net/url"
	"path/filepath"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdtty/pkg/resources"
)

// Settings carries renderer configuration derived from the CLI.
type Settings struct {
	// Columns is the maximum output width in terminal cells.
	Columns int

	// ColorEnabled selects styled or plain output.
	ColorEnabled bool
}

// Environment describes where a document came from, so relative resource
// references can be resolved against its location.
type Environment struct {
	// BaseDir is the directory relative references resolve against.
	BaseDir string
}

// NewEnvironment creates an environment rooted at the given base directory.
func NewEnvironment(baseDir string) Environment {
	return Environment{BaseDir: baseDir}
}

// ResolveReference turns a resource reference from the document into
// something a resolver can act on: absolute URLs pass through, relative
// paths are anchored at the base directory.
func (e Environment) ResolveReference(ref string) string {
	if u, err := url.Parse(ref); err == nil && len(u.Scheme) > 1 {
		return ref
	}
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(e.BaseDir, ref)
}

// Renderer renders a parsed markdown document to a byte sink.
type Renderer interface {
	Render(ctx context.Context, settings Settings, env Environment,
		resolver resources.Resolver, w io.Writer, doc ast.Node, source []byte) error
}
