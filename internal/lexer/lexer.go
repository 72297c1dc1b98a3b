// Package lexer implements the ng lexical analyzer.
package lexer

import (
	"strings"
	"unicode"
)

const (
	blanks            = " \t\r\n"
	operatorPrefix    = "+~$%^&*/@#"
	operatorContinue  = operatorPrefix + "|=:!>"
	brackets          = "()[]{}"
	specials          = "<>:=-,.|"
	nonContinuous     = blanks + operatorPrefix + brackets + specials
	eof          rune = -1
)

var escapes = map[rune]rune{
	'b':  '\b',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

var bracketTokens = map[rune]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
}

// Lexer represents the lexical analyzer. It is not restartable: NextToken
// and Run share one character cursor.
type Lexer struct {
	input    []rune
	position int  // index of ch in input
	ch       rune // current char, eof past the end
	line     int
	column   int
	filename string
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for error reporting
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    []rune(input),
		line:     1,
		column:   1,
		filename: filename,
	}
	l.ch = l.charAt(0)
	return l
}

// Tokenize lexes the whole input.
func Tokenize(input string) ([]Token, error) {
	return New(input).Run()
}

// Run lexes the remaining input. The EOF token is not included.
func (l *Lexer) Run() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) charAt(i int) rune {
	if i >= len(l.input) {
		return eof
	}
	return l.input[i]
}

// readChar consumes ch. Consuming a newline moves to column 1 of the next line.
func (l *Lexer) readChar() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.column++
	l.position++
	l.ch = l.charAt(l.position)
}

func (l *Lexer) currentPosition() Position {
	return Position{Filename: l.filename, Line: l.line, Column: l.column}
}

func (l *Lexer) skipBlanks() {
	for l.ch != eof && strings.ContainsRune(blanks, l.ch) {
		l.readChar()
	}
}

// NextToken returns the next token, or a TokenEOF token once the input is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	l.skipBlanks()
	start := l.currentPosition()

	switch ch := l.ch; {
	case ch == eof:
		return Token{Type: TokenEOF, Pos: start}, nil
	case isLetter(ch):
		text := l.readRun()
		typ := LookupIdent(text)
		if typ != TokenIdentifier {
			text = ""
		}
		return Token{Type: typ, Value: text, Pos: start}, nil
	case isDigit(ch):
		return l.readNumber(start)
	case strings.ContainsRune(operatorPrefix, ch):
		return Token{Type: TokenOperator, Value: l.readOperator(), Pos: start}, nil
	case ch == '|':
		text := l.readOperator()
		if text == "|" {
			return Token{Type: TokenPipe, Pos: start}, nil
		}
		return Token{Type: TokenOperator, Value: text, Pos: start}, nil
	case ch == '<':
		return l.readPair('=', TokenOperator, TokenLt, start), nil
	case ch == '>':
		return l.readPair('=', TokenOperator, TokenGt, start), nil
	case ch == '=':
		return l.readPair('>', TokenArrow, TokenAssign, start), nil
	case ch == '-':
		return l.readPair('>', TokenArrow, TokenMinus, start), nil
	case ch == ':':
		tok := l.readPair(':', TokenDoubleColon, TokenColon, start)
		tok.Value = ""
		return tok, nil
	case ch == '.':
		l.readChar()
		return Token{Type: TokenDot, Pos: start}, nil
	case ch == ',':
		l.readChar()
		return Token{Type: TokenComma, Pos: start}, nil
	case ch == '"':
		return l.readString(start)
	case ch == '\'':
		return l.readCharLiteral(start)
	}

	if typ, ok := bracketTokens[l.ch]; ok {
		l.readChar()
		return Token{Type: typ, Pos: start}, nil
	}
	return Token{}, l.errorf(CategoryUnrecognizedSymbol, start, "unrecognized symbol %q", l.ch)
}

// readPair consumes the current character and, when second follows, that one
// too. The pair yields a token of type pair, a lone character one of type single.
func (l *Lexer) readPair(second rune, pair, single TokenType, start Position) Token {
	first := l.ch
	l.readChar()
	if l.ch == second {
		l.readChar()
		return Token{Type: pair, Value: string([]rune{first, second}), Pos: start}
	}
	return Token{Type: single, Value: string(first), Pos: start}
}

// readRun consumes a maximal run of continuous characters.
func (l *Lexer) readRun() string {
	var sb strings.Builder
	for isContinuous(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return sb.String()
}

func (l *Lexer) readNumber(start Position) (Token, error) {
	var sb strings.Builder
	for isContinuous(l.ch) {
		if !isDigit(l.ch) {
			return Token{}, l.errorf(CategoryMalformedNumber, l.currentPosition(),
				"%c after %s is not a number", l.ch, sb.String())
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Token{Type: TokenNumber, Value: sb.String(), Pos: start}, nil
}

// readOperator consumes the current character and then every following
// operator continuation character.
func (l *Lexer) readOperator() string {
	var sb strings.Builder
	sb.WriteRune(l.ch)
	l.readChar()
	for l.ch != eof && strings.ContainsRune(operatorContinue, l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return sb.String()
}

func (l *Lexer) readString(start Position) (Token, error) {
	var sb strings.Builder
	l.readChar()
	for l.ch != '"' {
		switch l.ch {
		case eof:
			return Token{}, l.errorf(CategoryUnterminatedLiteral, start, "unterminated string literal")
		case '\\':
			r, err := l.readEscape(start)
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	l.readChar()
	return Token{Type: TokenString, Value: sb.String(), Pos: start}, nil
}

func (l *Lexer) readCharLiteral(start Position) (Token, error) {
	l.readChar()
	var r rune
	switch l.ch {
	case eof:
		return Token{}, l.errorf(CategoryUnterminatedLiteral, start, "unterminated char literal")
	case '\'':
		return Token{}, l.errorf(CategoryMalformedChar, start, "empty char literal")
	case '\\':
		var err error
		if r, err = l.readEscape(start); err != nil {
			return Token{}, err
		}
	default:
		r = l.ch
		l.readChar()
	}
	switch l.ch {
	case '\'':
		l.readChar()
		return Token{Type: TokenChar, Value: string(r), Pos: start}, nil
	case eof:
		return Token{}, l.errorf(CategoryUnterminatedLiteral, start, "unterminated char literal")
	default:
		return Token{}, l.errorf(CategoryMalformedChar, l.currentPosition(),
			"char literal holds more than one character, found %q", l.ch)
	}
}

// readEscape consumes a backslash escape and returns the character it denotes.
func (l *Lexer) readEscape(literalStart Position) (rune, error) {
	at := l.currentPosition()
	l.readChar()
	if r, ok := escapes[l.ch]; ok {
		l.readChar()
		return r, nil
	}
	switch l.ch {
	case eof:
		return 0, l.errorf(CategoryUnterminatedLiteral, literalStart, "unterminated escape sequence")
	case 'u':
		l.readChar()
		var code rune
		digits := 0
		for isHexDigit(l.ch) {
			code = code*16 + hexValue(l.ch)
			if code > unicode.MaxRune {
				return 0, l.errorf(CategoryInvalidEscape, at, "unicode escape exceeds %U", unicode.MaxRune)
			}
			digits++
			l.readChar()
		}
		if digits == 0 {
			return 0, l.errorf(CategoryInvalidEscape, at, "missing hex digits after \\u")
		}
		return code, nil
	}
	return 0, l.errorf(CategoryInvalidEscape, at, "unknown escape \\%c", l.ch)
}

// isLetter reports whether ch may start an identifier: an ASCII letter or '_'.
func isLetter(ch rune) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isContinuous(ch rune) bool {
	return ch != eof && !strings.ContainsRune(nonContinuous, ch)
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func hexValue(ch rune) rune {
	switch {
	case isDigit(ch):
		return ch - '0'
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}
