package linenum_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtty/pkg/linenum"
)

func TestAnnotate(t *testing.T) {
	t.Parallel()

	t.Run("numbers every line", func(t *testing.T) {
		t.Parallel()

		got := linenum.Annotate("alpha\nbeta\ngamma")
		want := "1 │ alpha\n2 │ beta\n3 │ gamma"
		assert.Equal(t, want, got)
	})

	t.Run("right-aligns to total line count width", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		for i := 0; i < 12; i++ {
			fmt.Fprintf(&b, "line %d\n", i+1)
		}

		got := linenum.Annotate(b.String())
		lines := strings.Split(got, "\n")

		assert.Len(t, lines, 12)
		assert.Equal(t, " 1 │ line 1", lines[0])
		assert.Equal(t, "12 │ line 12", lines[11])
	})

	t.Run("empty document stays empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", linenum.Annotate(""))
	})

	t.Run("single newline is one empty line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "1 │ ", linenum.Annotate("\n"))
	})

	t.Run("trailing newline adds no extra line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, linenum.Annotate("a\nb"), linenum.Annotate("a\nb\n"))
	})
}

func TestAnnotate_WidthMatchesDigits(t *testing.T) {
	t.Parallel()

	for _, total := range []int{1, 9, 10, 99, 100, 1000} {
		text := strings.TrimSuffix(strings.Repeat("x\n", total), "\n")
		lines := strings.Split(linenum.Annotate(text), "\n")

		wantWidth := len(fmt.Sprint(total))
		for i, line := range lines {
			prefix := fmt.Sprintf("%*d %s ", wantWidth, i+1, linenum.Separator)
			if !strings.HasPrefix(line, prefix) {
				t.Fatalf("total %d line %d = %q, want prefix %q", total, i+1, line, prefix)
			}
		}
	}
}

func TestFormatter(t *testing.T) {
	t.Parallel()

	t.Run("writes padded prefixes and tracks the cursor", func(t *testing.T) {
		t.Parallel()

		f := linenum.NewFormatter(true, 100)
		var b strings.Builder

		assert.NoError(t, f.WriteLineNumber(&b))
		b.WriteString("test line")
		assert.NoError(t, f.WriteNewline(&b))

		assert.NoError(t, f.WriteLineNumber(&b))
		b.WriteString("another line")
		assert.NoError(t, f.WriteNewline(&b))

		out := b.String()
		assert.Contains(t, out, "  1 │ test line\n")
		assert.Contains(t, out, "  2 │ another line\n")
		assert.Equal(t, 2, f.CurrentLine())
	})

	t.Run("disabled formatter never emits the separator", func(t *testing.T) {
		t.Parallel()

		f := linenum.NewFormatter(false, 500)
		var b strings.Builder

		for i := 0; i < 5; i++ {
			assert.NoError(t, f.WriteLineNumber(&b))
			b.WriteString("content")
			assert.NoError(t, f.WriteNewline(&b))
		}

		assert.NotContains(t, b.String(), linenum.Separator)
		assert.Equal(t, 0, f.CurrentLine())
	})

	t.Run("agrees with Annotate", func(t *testing.T) {
		t.Parallel()

		lines := []string{"one", "two", "three"}
		text := strings.Join(lines, "\n")

		f := linenum.NewFormatter(true, len(lines))
		var b strings.Builder
		for _, line := range lines {
			_ = f.WriteLineNumber(&b)
			b.WriteString(line)
			_ = f.WriteNewline(&b)
		}

		assert.Equal(t, linenum.Annotate(text)+"\n", b.String())
	})
}
