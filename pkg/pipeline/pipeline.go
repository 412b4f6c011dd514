// Package pipeline drives one document through the viewer: acquire input,
// optionally emit statistics, optionally annotate with line numbers, render,
// and flush with broken-pipe tolerance.
package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/yaklabco/mdtty/internal/logging"
	"github.com/yaklabco/mdtty/pkg/document"
	"github.com/yaklabco/mdtty/pkg/linenum"
	"github.com/yaklabco/mdtty/pkg/markdown"
	"github.com/yaklabco/mdtty/pkg/render"
	"github.com/yaklabco/mdtty/pkg/resources"
)

// Options selects the optional per-file transforms.
type Options struct {
	// ShowLineNumbers annotates the source with line numbers before
	// rendering.
	ShowLineNumbers bool

	// ShowStats writes the document statistics block. Without
	// ShowLineNumbers this short-circuits rendering entirely.
	ShowStats bool
}

// Outcome classifies a write failure at the sink boundary.
type Outcome int

const (
	// OutcomeOK means no failure.
	OutcomeOK Outcome = iota
	// OutcomeBrokenPipe means the consumer closed the output early; the
	// file still counts as successfully processed.
	OutcomeBrokenPipe
	// OutcomeFatal means a genuine I/O failure.
	OutcomeFatal
)

// Classify maps a rendering or flush error to an outcome. Broken-pipe
// conditions are benign: the consumer (typically a pager) quit early.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, syscall.EPIPE), errors.Is(err, io.ErrClosedPipe):
		return OutcomeBrokenPipe
	default:
		return OutcomeFatal
	}
}

// Pipeline processes files one at a time: the output for one file is fully
// flushed before the next begins.
type Pipeline struct {
	parser   *markdown.Parser
	renderer render.Renderer
	resolver resources.Resolver
	settings render.Settings
}

// New creates a pipeline around the given renderer and resource resolver.
func New(renderer render.Renderer, resolver resources.Resolver, settings render.Settings) *Pipeline {
	return &Pipeline{
		parser:   markdown.New(),
		renderer: renderer,
		resolver: resolver,
		settings: settings,
	}
}

// ProcessFile reads, transforms, renders, and flushes a single file to sink.
//
// Acquisition failures and genuine I/O failures are returned with the
// filename attached; a broken pipe is swallowed and reported as success.
func (p *Pipeline) ProcessFile(ctx context.Context, filename string, sink io.Writer, opts Options) error {
	logger := logging.Default()

	input, err := document.ReadInput(ctx, filename)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	logger.Debug("read input", logging.FieldFile, filename, logging.FieldBaseDir, input.BaseDir)

	bw := bufio.NewWriter(sink)

	if opts.ShowStats {
		stats := document.Scan(input.Text)
		fmt.Fprintln(bw, stats.Format())
		if !opts.ShowLineNumbers {
			// Statistics-only mode: no rendering.
			return p.finish(filename, bw.Flush())
		}
	}

	text := input.Text
	if opts.ShowLineNumbers {
		text = linenum.Annotate(text)
	}

	source := []byte(text)
	doc, err := p.parser.Parse(ctx, source)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	env := render.NewEnvironment(input.BaseDir)

	err = p.renderer.Render(ctx, p.settings, env, p.resolver, bw, doc, source)
	if err == nil {
		logger.Debug("finished rendering, flushing output", logging.FieldFile, filename)
		err = bw.Flush()
	}
	return p.finish(filename, err)
}

// finish applies the broken-pipe classification exactly once per file.
func (p *Pipeline) finish(filename string, err error) error {
	switch Classify(err) {
	case OutcomeOK:
		return nil
	case OutcomeBrokenPipe:
		logging.Default().Debug("ignoring broken pipe", logging.FieldFile, filename)
		return nil
	default:
		logging.Default().Error("failed to process file",
			logging.FieldFile, filename,
			logging.FieldError, err,
		)
		return fmt.Errorf("%s: %w", filename, err)
	}
}
