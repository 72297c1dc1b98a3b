// Package format prints ng syntax trees back to canonical source text.
package format

import (
	"bytes"
	"strings"

	"github.com/ng-lang/ng/internal/ast"
	"github.com/ng-lang/ng/internal/parser"
)

// Options controls formatting style.
type Options struct {
	// PreserveNewlineStyle: when true, CRLF in input keeps CRLF in output; else LF.
	PreserveNewlineStyle bool
	// GroupDeclarations separates runs of different declaration kinds with a blank line.
	GroupDeclarations bool
}

// DefaultOptions returns sane defaults.
func DefaultOptions() Options {
	return Options{PreserveNewlineStyle: true, GroupDeclarations: true}
}

// Program renders every declaration of p on its own line.
func Program(p *ast.Program, opts Options) string {
	var sb strings.Builder
	for i, d := range p.Decls {
		if i > 0 {
			sb.WriteByte('\n')
			if opts.GroupDeclarations && d.Kind() != p.Decls[i-1].Kind() {
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(Node(d))
	}
	return sb.String()
}

// Source parses src and returns it in canonical form. Comments do not exist
// in ng, so nothing but layout is lost.
func Source(filename, src string, opts Options) (string, error) {
	program, err := parser.ParseFile(filename, src)
	if err != nil {
		return "", err
	}
	useCRLF := opts.PreserveNewlineStyle && strings.Contains(src, "\r\n")
	return finish(Program(program, opts), useCRLF), nil
}

// FormatText cleans whitespace without parsing: trailing blanks are cut and
// the text ends in exactly one newline. ngc fmt falls back to it for source
// that does not parse.
func FormatText(text string, opts Options) string {
	return finish(text, opts.PreserveNewlineStyle && strings.Contains(text, "\r\n"))
}

func finish(text string, useCRLF bool) string {
	norm := strings.ReplaceAll(text, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")

	sep := "\n"
	if useCRLF {
		sep = "\r\n"
	}
	if norm == "" {
		return sep
	}

	lines := strings.Split(norm, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var buf bytes.Buffer
	for i, ln := range lines {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(strings.TrimRight(ln, " \t"))
	}
	buf.WriteString(sep)
	return buf.String()
}
