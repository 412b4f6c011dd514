// Package document provides input acquisition and document statistics for
// markdown sources.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// StdinFilename is the filename sentinel selecting standard input.
const StdinFilename = "-"

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the input file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrInvalidUTF8 indicates the input is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
)

// Input is the result of acquiring one document: the full text and the base
// directory against which relative resource references resolve.
type Input struct {
	// BaseDir is the parent directory of the source file, or the process
	// working directory for standard input.
	BaseDir string

	// Text is the complete document text.
	Text string
}

// ReadInput resolves a filename token into an Input.
//
// The sentinel "-" reads all of standard input and pairs it with the working
// directory. Any other token is opened as a file; its base directory is the
// parent of the resolved absolute path, falling back to the working directory
// when no parent can be derived.
func ReadInput(ctx context.Context, filename string) (*Input, error) {
	return readInput(ctx, filename, os.Stdin)
}

// readInput is the testable core of ReadInput with an injectable stdin.
func readInput(ctx context.Context, filename string, stdin io.Reader) (*Input, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read input: %w", ctx.Err())
	default:
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	if filename == StdinFilename {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		text, err := decodeText(raw)
		if err != nil {
			return nil, fmt.Errorf("standard input: %w", err)
		}
		return &Input{BaseDir: workDir, Text: text}, nil
	}

	raw, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	baseDir := workDir
	if abs, err := filepath.Abs(filename); err == nil {
		if dir := filepath.Dir(abs); dir != "" {
			baseDir = dir
		}
	}

	return &Input{BaseDir: baseDir, Text: text}, nil
}

// readFile reads a file, mapping common failures to sentinel errors.
func readFile(path string) ([]byte, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, nil
}

// decodeText validates raw bytes as UTF-8 text.
func decodeText(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}
