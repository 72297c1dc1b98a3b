package lexer

import "fmt"

// ErrorCategory categorizes lexical errors
type ErrorCategory int

const (
	CategoryUnrecognizedSymbol  ErrorCategory = iota // character starts no token
	CategoryMalformedNumber                          // non-digit inside a number run
	CategoryInvalidEscape                            // unknown escape or bad \u sequence
	CategoryMalformedChar                            // empty or multi-character char literal
	CategoryUnterminatedLiteral                      // string or char literal runs into end of input
)

var categoryNames = map[ErrorCategory]string{
	CategoryUnrecognizedSymbol:  "unrecognized symbol",
	CategoryMalformedNumber:     "malformed number",
	CategoryInvalidEscape:       "invalid escape",
	CategoryMalformedChar:       "malformed char literal",
	CategoryUnterminatedLiteral: "unterminated literal",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Error is a fatal lexical error. Lexing stops at the first one.
type Error struct {
	Category ErrorCategory
	Pos      Position
	Char     rune // offending character, eof when input ended
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexical error at %s: %s", e.Pos, e.Message)
}

// Position returns where the error was detected.
func (e *Error) Position() Position {
	return e.Pos
}

func (l *Lexer) errorf(category ErrorCategory, pos Position, format string, args ...interface{}) *Error {
	return &Error{
		Category: category,
		Pos:      pos,
		Char:     l.ch,
		Message:  fmt.Sprintf(format, args...),
	}
}
