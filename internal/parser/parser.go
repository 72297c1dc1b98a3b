// Package parser implements the ng recursive descent parser.
//
// The parser works over a materialized token slice with an integer cursor.
// Optional grammar fragments are parsed speculatively: the cursor is saved,
// the rule is attempted, and on a parse error the cursor is restored and the
// caller falls back to a narrower rule.
package parser

import (
	"github.com/ng-lang/ng/internal/ast"
	"github.com/ng-lang/ng/internal/lexer"
)

// Parser represents the recursive descent parser. A Parser is used by a
// single caller and is not safe for concurrent use.
type Parser struct {
	tokens []lexer.Token
	eof    lexer.Token
	cursor int

	// transaction state, see transaction.go
	saved int
	inTx  bool
}

// New creates a parser over tokens. A trailing EOF token is optional.
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens}
	n := len(tokens)
	switch {
	case n > 0 && tokens[n-1].Type == lexer.TokenEOF:
		p.tokens = tokens[:n-1]
		p.eof = tokens[n-1]
	case n > 0:
		p.eof = lexer.Token{Type: lexer.TokenEOF, Pos: tokens[n-1].Pos}
	default:
		p.eof = lexer.Token{Type: lexer.TokenEOF, Pos: lexer.Position{Line: 1, Column: 1}}
	}
	return p
}

// ParseString lexes and parses src as one compilation unit.
func ParseString(src string) (*ast.Program, error) {
	return ParseFile("", src)
}

// ParseFile lexes and parses src, reporting positions against filename.
func ParseFile(filename, src string) (*ast.Program, error) {
	tokens, err := lexer.NewWithFilename(src, filename).Run()
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

// Cursor returns the index of the next unconsumed token.
func (p *Parser) Cursor() int {
	return p.cursor
}

func (p *Parser) atEnd() bool {
	return p.cursor >= len(p.tokens)
}

func (p *Parser) current() lexer.Token {
	if p.atEnd() {
		return p.eof
	}
	return p.tokens[p.cursor]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if !p.atEnd() {
		p.cursor++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// accept consumes the current token when it has type tt.
func (p *Parser) accept(tt lexer.TokenType) bool {
	if p.atEnd() || !p.check(tt) {
		return false
	}
	p.cursor++
	return true
}

// expect consumes the current token if it has one of the given types.
func (p *Parser) expect(types ...lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if !p.atEnd() {
		for _, tt := range types {
			if tok.Type == tt {
				p.cursor++
				return tok, nil
			}
		}
	}
	return tok, p.unexpected(types...)
}

// expectArrow consumes an arrow with the given spelling, -> or =>.
func (p *Parser) expectArrow(spelling string) error {
	tok := p.current()
	if tok.Type == lexer.TokenArrow && tok.Value == spelling {
		p.cursor++
		return nil
	}
	return &Error{Actual: tok, Expected: []lexer.TokenType{lexer.TokenArrow}, Spelling: spelling}
}

func (p *Parser) unexpected(expected ...lexer.TokenType) *Error {
	return &Error{Actual: p.current(), Expected: expected}
}

func (p *Parser) parseIdent() (*ast.Ident, error) {
	tok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	return &ast.Ident{Name: tok.Value}, nil
}

// speculate runs parse and restores the cursor when it fails.
func speculate[T any](p *Parser, parse func() (T, error)) (T, bool) {
	mark := p.cursor
	result, err := parse()
	if err != nil {
		p.cursor = mark
		var zero T
		return zero, false
	}
	return result, true
}

// ParseProgram parses declarations until the tokens are exhausted.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.atEnd() {
		decl, err := p.ParseDeclaration()
		if err != nil {
			return nil, err
		}
		program.Decls = append(program.Decls, decl)
	}
	return program, nil
}

// ParseDeclaration parses one top-level declaration.
func (p *Parser) ParseDeclaration() (ast.Decl, error) {
	switch p.current().Type {
	case lexer.TokenTypeKeyword:
		return p.parseTypeDeclaration()
	case lexer.TokenSig:
		return p.parseSignature()
	case lexer.TokenFun:
		return p.parseFuncDeclaration()
	case lexer.TokenVal:
		return p.parseValDeclaration()
	}
	return nil, p.unexpected(lexer.TokenTypeKeyword, lexer.TokenSig, lexer.TokenFun, lexer.TokenVal)
}
