// Package markdown provides the shared goldmark parser used by the stats
// engine and the terminal renderer.
package markdown

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parser wraps a configured goldmark instance.
//
// Every document goes through the same extension set: tables, strikethrough,
// and task lists. Malformed markdown never fails to parse; constructs that
// do not match a known node kind simply come back as plain text.
type Parser struct {
	md goldmark.Markdown
}

// New creates a parser with the table, strikethrough, and task list
// extensions enabled.
func New() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.TaskList,
			),
		),
	}
}

// Parse converts raw markdown into a goldmark AST rooted at the document
// node. The returned tree references source, which must not be mutated while
// the tree is in use.
func (p *Parser) Parse(ctx context.Context, source []byte) (ast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	reader := text.NewReader(source)
	doc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	return doc, nil
}
