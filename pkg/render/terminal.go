package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	enry "github.com/go-enry/go-enry/v2"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdtty/internal/logging"
	"github.com/yaklabco/mdtty/internal/ui/pretty"
	"github.com/yaklabco/mdtty/pkg/resources"
)

// defaultRuleWidth is the thematic break width when no column limit is set.
const defaultRuleWidth = 40

// TerminalRenderer renders markdown as styled text for terminals.
//
// The output is deliberately simple: headings keep their markers, code
// blocks are indented with a language label, links show their destination,
// and images are fetched through the resolver and reported inline.
type TerminalRenderer struct{}

// NewTerminalRenderer creates a terminal renderer.
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(ctx context.Context, settings Settings, env Environment,
	resolver resources.Resolver, w io.Writer, doc ast.Node, source []byte,
) error {
	s := &session{
		ctx:      ctx,
		settings: settings,
		env:      env,
		resolver: resolver,
		styles:   pretty.NewStyles(settings.ColorEnabled),
		source:   source,
		w:        &stickyWriter{w: w},
	}

	s.renderBlocks(doc, "")
	return s.w.err
}

var _ Renderer = (*TerminalRenderer)(nil)

// stickyWriter remembers the first write error so rendering can stop
// producing output without error plumbing at every call site.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (sw *stickyWriter) WriteString(str string) {
	if sw.err != nil {
		return
	}
	_, sw.err = io.WriteString(sw.w, str)
}

// session holds per-render state.
type session struct {
	ctx      context.Context
	settings Settings
	env      Environment
	resolver resources.Resolver
	styles   *pretty.Styles
	source   []byte
	w        *stickyWriter
}

// renderBlocks renders the children of parent, separating sibling blocks
// with a blank line.
func (s *session) renderBlocks(parent ast.Node, indent string) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c != parent.FirstChild() {
			s.w.WriteString("\n")
		}
		s.renderBlock(c, indent)
	}
}

func (s *session) renderBlock(n ast.Node, indent string) {
	switch n.Kind() {
	case ast.KindHeading:
		h := n.(*ast.Heading)
		marker := strings.Repeat("#", h.Level)
		s.w.WriteString(indent + s.styles.Heading.Render(marker+" "+s.inline(n)) + "\n")

	case ast.KindParagraph, ast.KindTextBlock:
		s.writeWrapped(s.inline(n), indent)

	case ast.KindFencedCodeBlock:
		cb := n.(*ast.FencedCodeBlock)
		s.renderCode(string(cb.Language(s.source)), n, indent)

	case ast.KindCodeBlock:
		s.renderCode("", n, indent)

	case ast.KindBlockquote:
		s.renderBlockquote(n, indent)

	case ast.KindList:
		s.renderList(n.(*ast.List), indent)

	case ast.KindThematicBreak:
		s.w.WriteString(indent + s.styles.Rule.Render(strings.Repeat("─", s.ruleWidth())) + "\n")

	case ast.KindHTMLBlock:
		hb := n.(*ast.HTMLBlock)
		for i := 0; i < hb.Lines().Len(); i++ {
			seg := hb.Lines().At(i)
			s.w.WriteString(indent + s.styles.Dim.Render(strings.TrimRight(string(seg.Value(s.source)), "\n")) + "\n")
		}

	case east.KindTable:
		s.renderTable(n, indent)

	default:
		// Unknown blocks render their children flat.
		s.renderBlocks(n, indent)
	}
}

func (s *session) renderCode(lang string, n ast.Node, indent string) {
	if lang != "" {
		label := lang
		if name, ok := enry.GetLanguageByAlias(lang); ok {
			label = name
		}
		s.w.WriteString(indent + s.styles.CodeLabel.Render("["+label+"]") + "\n")
	}
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		line := strings.TrimRight(string(seg.Value(s.source)), "\n")
		s.w.WriteString(indent + "    " + s.styles.CodeBlock.Render(line) + "\n")
	}
}

func (s *session) renderBlockquote(n ast.Node, indent string) {
	var buf strings.Builder
	nested := &session{
		ctx:      s.ctx,
		settings: s.settings,
		env:      s.env,
		resolver: s.resolver,
		styles:   s.styles,
		source:   s.source,
		w:        &stickyWriter{w: &buf},
	}
	nested.renderBlocks(n, "")

	prefix := s.styles.Blockquote.Render("│ ")
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		s.w.WriteString(indent + prefix + line + "\n")
	}
}

func (s *session) renderList(l *ast.List, indent string) {
	number := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		var marker string
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d.", number)
			number++
		} else {
			marker = "•"
		}

		itemIndent := indent + strings.Repeat(" ", len(marker)+1)

		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if first {
				switch c.Kind() {
				case ast.KindParagraph, ast.KindTextBlock:
					s.w.WriteString(indent + s.styles.ListMarker.Render(marker) + " ")
					s.writeContinuation(s.inline(c), itemIndent)
					first = false
					continue
				}
				s.w.WriteString(indent + s.styles.ListMarker.Render(marker) + "\n")
				first = false
			}
			s.renderBlock(c, itemIndent)
		}
		if first {
			// Empty list item.
			s.w.WriteString(indent + s.styles.ListMarker.Render(marker) + "\n")
		}
	}
}

func (s *session) renderTable(n ast.Node, indent string) {
	border := s.styles.TableBorder.Render(" │ ")
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		cells := make([]string, 0, 4)
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			text := s.inline(cell)
			if row.Kind() == east.KindTableHeader {
				text = s.styles.TableHeader.Render(text)
			}
			cells = append(cells, text)
		}
		s.w.WriteString(indent + strings.Join(cells, border) + "\n")
		if row.Kind() == east.KindTableHeader {
			s.w.WriteString(indent + s.styles.TableBorder.Render(strings.Repeat("─", s.ruleWidth())) + "\n")
		}
	}
}

// inline renders the inline children of n into a single string.
func (s *session) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s.inlineNode(&b, c)
	}
	return b.String()
}

func (s *session) inlineNode(b *strings.Builder, n ast.Node) {
	switch n.Kind() {
	case ast.KindText:
		t := n.(*ast.Text)
		b.Write(t.Segment.Value(s.source))
		if t.HardLineBreak() {
			b.WriteString("\n")
		} else if t.SoftLineBreak() {
			b.WriteString(" ")
		}

	case ast.KindString:
		b.Write(n.(*ast.String).Value)

	case ast.KindCodeSpan:
		b.WriteString(s.styles.CodeSpan.Render(s.inline(n)))

	case ast.KindEmphasis:
		e := n.(*ast.Emphasis)
		if e.Level >= 2 {
			b.WriteString(s.styles.Strong.Render(s.inline(n)))
		} else {
			b.WriteString(s.styles.Emphasis.Render(s.inline(n)))
		}

	case east.KindStrikethrough:
		b.WriteString(s.styles.Strikethrough.Render(s.inline(n)))

	case ast.KindLink:
		l := n.(*ast.Link)
		b.WriteString(s.styles.LinkText.Render(s.inline(n)))
		b.WriteString(" " + s.styles.LinkURL.Render("<"+string(l.Destination)+">"))

	case ast.KindAutoLink:
		al := n.(*ast.AutoLink)
		b.WriteString(s.styles.LinkText.Render(string(al.URL(s.source))))

	case ast.KindImage:
		s.inlineImage(b, n.(*ast.Image))

	case east.KindTaskCheckBox:
		if n.(*east.TaskCheckBox).IsChecked {
			b.WriteString(s.styles.TaskDone.Render("[✓]") + " ")
		} else {
			b.WriteString(s.styles.TaskOpen.Render("[ ]") + " ")
		}

	case ast.KindRawHTML:
		rh := n.(*ast.RawHTML)
		for i := 0; i < rh.Segments.Len(); i++ {
			seg := rh.Segments.At(i)
			b.Write(seg.Value(s.source))
		}

	default:
		// Unknown inline nodes contribute their children's text.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			s.inlineNode(b, c)
		}
	}
}

// inlineImage fetches the image through the resolver and reports it inline.
// Resolution failures degrade to a note; they never abort the render.
func (s *session) inlineImage(b *strings.Builder, img *ast.Image) {
	alt := s.inline(img)
	if alt == "" {
		alt = "image"
	}

	target := s.env.ResolveReference(string(img.Destination))
	data, err := s.resolver.Resolve(s.ctx, target)
	if err != nil {
		logging.Default().Debug("image resolution failed",
			logging.FieldURL, target,
			logging.FieldError, err,
		)
		b.WriteString(s.styles.Dim.Render("[" + alt + "] <" + string(img.Destination) + ">"))
		return
	}

	b.WriteString(s.styles.ImageNote.Render(fmt.Sprintf("[%s: %d bytes]", alt, len(data))))
}

// writeWrapped writes inline text line by line under the given indent.
func (s *session) writeWrapped(text string, indent string) {
	for _, line := range strings.Split(text, "\n") {
		s.w.WriteString(indent + line + "\n")
	}
}

// writeContinuation writes text whose first line is already positioned after
// a marker; continuation lines get the full indent.
func (s *session) writeContinuation(text string, indent string) {
	lines := strings.Split(text, "\n")
	s.w.WriteString(lines[0] + "\n")
	for _, line := range lines[1:] {
		s.w.WriteString(indent + line + "\n")
	}
}

func (s *session) ruleWidth() int {
	if s.settings.Columns > 0 {
		return s.settings.Columns
	}
	return defaultRuleWidth
}
