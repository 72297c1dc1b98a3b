package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ng-lang/ng/internal/lexer"
)

// positioned is implemented by errors that point into the source.
type positioned interface {
	error
	Position() lexer.Position
}

// RenderDiagnostic writes err and, when it carries a position, the offending
// source line with a caret under the column. r styles the output; a nil
// renderer writes plain text.
func RenderDiagnostic(w io.Writer, r *lipgloss.Renderer, err error, source string) {
	if r == nil {
		r = lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.Ascii)
	}
	label := r.NewStyle().Bold(true).Foreground(levelColors[LevelError]).Render("error")
	gutter := r.NewStyle().Foreground(levelColors[LevelDebug])
	caret := r.NewStyle().Bold(true).Foreground(levelColors[LevelError])

	fmt.Fprintf(w, "%s: %v\n", label, err)

	var perr positioned
	if !errors.As(err, &perr) {
		return
	}
	pos := perr.Position()
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return
	}
	text := lines[pos.Line-1]
	num := strconv.Itoa(pos.Line)
	pad := strings.Repeat(" ", len(num))

	fmt.Fprintf(w, "%s%s %s\n", pad, gutter.Render("-->"), pos)
	fmt.Fprintf(w, "%s %s\n", pad, gutter.Render("|"))
	fmt.Fprintf(w, "%s %s %s\n", num, gutter.Render("|"), text)
	fmt.Fprintf(w, "%s %s %s%s\n", pad, gutter.Render("|"), caretIndent(text, pos.Column), caret.Render("^"))
}

// caretIndent returns the blanks that put a caret under the given 1-based
// rune column, keeping tabs so the caret lines up with the source line.
func caretIndent(line string, column int) string {
	var sb strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		i++
	}
	for ; i < column; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}
