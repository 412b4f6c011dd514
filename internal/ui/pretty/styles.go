// Package pretty provides Lipgloss-based styled output utilities for the
// terminal renderer.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for markdown output.
type Styles struct {
	// Block styles
	Heading    lipgloss.Style
	CodeBlock  lipgloss.Style
	CodeLabel  lipgloss.Style
	Blockquote lipgloss.Style
	Rule       lipgloss.Style

	// Inline styles
	Emphasis      lipgloss.Style
	Strong        lipgloss.Style
	Strikethrough lipgloss.Style
	CodeSpan      lipgloss.Style
	LinkText      lipgloss.Style
	LinkURL       lipgloss.Style
	ImageNote     lipgloss.Style

	// List styles
	ListMarker lipgloss.Style
	TaskDone   lipgloss.Style
	TaskOpen   lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableBorder lipgloss.Style

	// Misc
	Dim   lipgloss.Style
	Error lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}

	return &Styles{
		Heading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		CodeBlock:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		CodeLabel:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("3")),
		Blockquote: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
		Rule:       lipgloss.NewStyle().Faint(true),

		Emphasis:      lipgloss.NewStyle().Italic(true),
		Strong:        lipgloss.NewStyle().Bold(true),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true),
		CodeSpan:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LinkText:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("4")),
		LinkURL:       lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("4")),
		ImageNote:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("5")),

		ListMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		TaskDone:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		TaskOpen:   lipgloss.NewStyle().Faint(true),

		TableHeader: lipgloss.NewStyle().Bold(true),
		TableBorder: lipgloss.NewStyle().Faint(true),

		Dim:   lipgloss.NewStyle().Faint(true),
		Error: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// newNoColorStyles creates styles that pass text through unchanged.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Heading:    plain,
		CodeBlock:  plain,
		CodeLabel:  plain,
		Blockquote: plain,
		Rule:       plain,

		Emphasis:      plain,
		Strong:        plain,
		Strikethrough: plain,
		CodeSpan:      plain,
		LinkText:      plain,
		LinkURL:       plain,
		ImageNote:     plain,

		ListMarker: plain,
		TaskDone:   plain,
		TaskOpen:   plain,

		TableHeader: plain,
		TableBorder: plain,

		Dim:   plain,
		Error: plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Check if output is a TTY
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
