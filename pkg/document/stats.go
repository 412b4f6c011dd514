package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdtty/pkg/markdown"
)

// wordsPerMinute is the assumed reading speed for the reading time estimate.
const wordsPerMinute = 225

// Stats holds counters describing a markdown document.
//
// All counts are derived once from the source text and never change
// afterwards. CharacterCount is the UTF-8 byte length of the source, not the
// codepoint count, so counts stay reproducible across environments.
type Stats struct {
	// CharacterCount is the total byte length, including whitespace.
	CharacterCount int
	// WordCount is the number of whitespace-delimited tokens.
	WordCount int
	// LineCount is the number of lines; a trailing newline does not add an
	// empty line.
	LineCount int
	// HeadingCount is the number of headings of any level.
	HeadingCount int
	// CodeBlockCount is the number of fenced and indented code blocks.
	CodeBlockCount int
	// LinkCount is the number of links, including autolinks.
	LinkCount int
	// ImageCount is the number of images.
	ImageCount int
	// ListCount is the number of lists (not list items).
	ListCount int
	// TableCount is the number of tables (not rows or cells).
	TableCount int
}

// Scan computes statistics for a markdown document.
//
// The structural counts come from a goldmark parse with the table,
// strikethrough, and task list extensions enabled. Malformed markdown never
// fails: constructs that do not parse as a known node simply are not counted.
func Scan(content string) Stats {
	stats := Stats{
		CharacterCount: len(content),
		LineCount:      countLines(content),
		WordCount:      len(strings.Fields(content)),
	}

	parser := markdown.New()
	doc, err := parser.Parse(context.Background(), []byte(content))
	if err != nil {
		// Only a cancelled context can fail the parse; with Background it
		// cannot happen, and structural counts stay zero if it ever does.
		return stats
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			stats.HeadingCount++
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			stats.CodeBlockCount++
		case ast.KindLink, ast.KindAutoLink:
			stats.LinkCount++
		case ast.KindImage:
			stats.ImageCount++
		case ast.KindList:
			stats.ListCount++
		case east.KindTable:
			stats.TableCount++
		}
		return ast.WalkContinue, nil
	})

	return stats
}

// ReadingTimeMinutes estimates reading time as ceiling(words / 225).
// A zero-word document reads in zero minutes.
func (s Stats) ReadingTimeMinutes() int {
	return (s.WordCount + wordsPerMinute - 1) / wordsPerMinute
}

// Format renders the statistics as a fixed-layout text block.
func (s Stats) Format() string {
	readingTime := s.ReadingTimeMinutes()
	plural := "s"
	if readingTime == 1 {
		plural = ""
	}

	var b strings.Builder
	b.WriteString("Document Statistics:\n")
	b.WriteString("───────────────────\n")
	fmt.Fprintf(&b, "Characters: %d\n", s.CharacterCount)
	fmt.Fprintf(&b, "Words: %d\n", s.WordCount)
	fmt.Fprintf(&b, "Lines: %d\n", s.LineCount)
	fmt.Fprintf(&b, "Headings: %d\n", s.HeadingCount)
	fmt.Fprintf(&b, "Code blocks: %d\n", s.CodeBlockCount)
	fmt.Fprintf(&b, "Links: %d\n", s.LinkCount)
	fmt.Fprintf(&b, "Images: %d\n", s.ImageCount)
	fmt.Fprintf(&b, "Lists: %d\n", s.ListCount)
	fmt.Fprintf(&b, "Tables: %d\n", s.TableCount)
	fmt.Fprintf(&b, "Estimated reading time: %d minute%s\n", readingTime, plural)
	return b.String()
}

// countLines counts line-terminator-delimited segments. A trailing newline
// does not produce an extra empty segment.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
