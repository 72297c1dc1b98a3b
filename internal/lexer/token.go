package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types of the ng language
const (
	TokenEOF TokenType = iota

	// Literals and names
	TokenIdentifier
	TokenNumber
	TokenString
	TokenChar
	TokenOperator

	// Keywords
	TokenTypeKeyword
	TokenNewType // type!
	TokenVal
	TokenCons
	TokenCase
	TokenIf
	TokenThen
	TokenElse
	TokenWhile
	TokenDo
	TokenSig
	TokenFun
	TokenTrue
	TokenFalse

	// Brackets
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace

	// Punctuation
	TokenLt
	TokenGt
	TokenArrow       // -> or =>
	TokenDoubleColon // ::
	TokenColon
	TokenDot
	TokenComma
	TokenMinus
	TokenAssign
	TokenPipe
)

var tokenNames = map[TokenType]string{
	TokenEOF: "EOF",

	TokenIdentifier: "ID",
	TokenNumber:     "NUM",
	TokenString:     "STRING",
	TokenChar:       "CHAR",
	TokenOperator:   "OPERATOR",

	TokenTypeKeyword: "TYPE",
	TokenNewType:     "NEW_TYPE",
	TokenVal:         "VAL",
	TokenCons:        "CONS",
	TokenCase:        "CASE",
	TokenIf:          "IF",
	TokenThen:        "THEN",
	TokenElse:        "ELSE",
	TokenWhile:       "WHILE",
	TokenDo:          "DO",
	TokenSig:         "SIG",
	TokenFun:         "FUN",
	TokenTrue:        "TRUE",
	TokenFalse:       "FALSE",

	TokenLParen:   "LEFT_PAREN",
	TokenRParen:   "RIGHT_PAREN",
	TokenLBracket: "LEFT_SQUARE",
	TokenRBracket: "RIGHT_SQUARE",
	TokenLBrace:   "LEFT_CURLY",
	TokenRBrace:   "RIGHT_CURLY",

	TokenLt:          "LESS",
	TokenGt:          "GREATER",
	TokenArrow:       "ARROW",
	TokenDoubleColon: "SEPARATOR",
	TokenColon:       "COLON",
	TokenDot:         "DOT",
	TokenComma:       "COMMA",
	TokenMinus:       "HYPHEN",
	TokenAssign:      "EQUAL",
	TokenPipe:        "PIPE",
}

// Keywords maps every reserved spelling to its token type.
var Keywords = map[string]TokenType{
	"if":    TokenIf,
	"while": TokenWhile,
	"type":  TokenTypeKeyword,
	"cons":  TokenCons,
	"type!": TokenNewType,
	"then":  TokenThen,
	"else":  TokenElse,
	"val":   TokenVal,
	"case":  TokenCase,
	"do":    TokenDo,
	"sig":   TokenSig,
	"fun":   TokenFun,
	"true":  TokenTrue,
	"false": TokenFalse,
}

// LookupIdent returns the keyword type for ident, or TokenIdentifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsKeyword reports whether tt is a reserved word.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenTypeKeyword && tt <= TokenFalse
}

// Position identifies a character in a source file. Lines and columns start at 1.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a lexical token.
//
// Value holds the text of identifiers, numbers and operators, and the decoded
// payload of string and char literals. The punctuation that may act as an
// infix operator (< > - = and both arrows) also carries its spelling.
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("%s[%d:%d]", t.Type, t.Pos.Line, t.Pos.Column)
	}
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Type, t.Value, t.Pos.Line, t.Pos.Column)
}
