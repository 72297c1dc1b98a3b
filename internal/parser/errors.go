package parser

import (
	"fmt"
	"strings"

	"github.com/ng-lang/ng/internal/lexer"
)

// Error is a token mismatch: the parser found Actual where one of Expected
// was required.
type Error struct {
	Actual   lexer.Token
	Expected []lexer.TokenType
	Spelling string // required token text when the type alone is not enough, e.g. "=>"
}

func (e *Error) Error() string {
	names := make([]string, len(e.Expected))
	for i, tt := range e.Expected {
		names[i] = tt.String()
	}
	want := strings.Join(names, ", ")
	if e.Spelling != "" {
		want = fmt.Sprintf("%s %q", want, e.Spelling)
	}
	return fmt.Sprintf("parse error at %s: unexpected token %s, expect %s",
		e.Actual.Pos, describe(e.Actual), want)
}

// Position returns the position of the offending token.
func (e *Error) Position() lexer.Position {
	return e.Actual.Pos
}

func describe(tok lexer.Token) string {
	if tok.Value == "" {
		return tok.Type.String()
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Value)
}
