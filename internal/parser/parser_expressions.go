package parser

import (
	"unicode/utf8"

	"github.com/ng-lang/ng/internal/ast"
	"github.com/ng-lang/ng/internal/lexer"
)

// stopKeywords end an application chain.
var stopKeywords = map[lexer.TokenType]bool{
	lexer.TokenVal:         true,
	lexer.TokenTypeKeyword: true,
	lexer.TokenFun:         true,
	lexer.TokenSig:         true,
	lexer.TokenNewType:     true,
	lexer.TokenIf:          true,
	lexer.TokenThen:        true,
	lexer.TokenElse:        true,
	lexer.TokenCase:        true,
	lexer.TokenDo:          true,
	lexer.TokenWhile:       true,
}

var terminators = map[lexer.TokenType]bool{
	lexer.TokenRParen:   true,
	lexer.TokenRBracket: true,
	lexer.TokenRBrace:   true,
	lexer.TokenComma:    true,
}

// operatorTokens may appear as a binary infix operator.
var operatorTokens = map[lexer.TokenType]bool{
	lexer.TokenOperator: true,
	lexer.TokenMinus:    true,
	lexer.TokenGt:       true,
	lexer.TokenLt:       true,
	lexer.TokenAssign:   true,
	lexer.TokenDot:      true,
}

var expressionStart = []lexer.TokenType{
	lexer.TokenLParen,
	lexer.TokenIdentifier,
	lexer.TokenNumber,
	lexer.TokenString,
	lexer.TokenChar,
	lexer.TokenLBracket,
	lexer.TokenIf,
	lexer.TokenTrue,
	lexer.TokenFalse,
}

// ParseExpression parses one expression starting at the cursor.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	return p.parseExpression()
}

func (p *Parser) continuesExpression() bool {
	tt := p.current().Type
	return tt != lexer.TokenEOF && !stopKeywords[tt] && !terminators[tt]
}

// parseExpression parses an application chain, switching to an operator tail
// whenever an operator token shows up. There is no precedence table: every
// operator groups left to right and application binds tighter than any of
// them. Trailing parts are speculative and end the expression when they fail.
func (p *Parser) parseExpression() (ast.Expr, error) {
	expr, err := p.parseExpression0()
	if err != nil {
		return nil, err
	}
	for p.continuesExpression() {
		left := expr
		var (
			next ast.Expr
			ok   bool
		)
		if operatorTokens[p.current().Type] {
			next, ok = speculate(p, func() (ast.Expr, error) {
				return p.parseOperator(left)
			})
		} else {
			next, ok = speculate(p, func() (ast.Expr, error) {
				arg, err := p.parseExpression0()
				if err != nil {
					return nil, err
				}
				return &ast.Apply{Left: left, Right: arg}, nil
			})
		}
		if !ok {
			break
		}
		expr = next
	}
	return expr, nil
}

// parseOperator parses the tail `op rhs` of a binary operation. The right
// side is an application chain that stops at the next operator. A dot
// composes instead: `x . f` becomes `f x`.
func (p *Parser) parseOperator(left ast.Expr) (ast.Expr, error) {
	sym := p.advance()
	right, err := p.parseExpression0()
	if err != nil {
		return nil, err
	}
	if sym.Type == lexer.TokenDot {
		return &ast.Apply{Left: right, Right: left}, nil
	}
	for p.continuesExpression() && !operatorTokens[p.current().Type] {
		arg, ok := speculate(p, p.parseExpression0)
		if !ok {
			break
		}
		right = &ast.Apply{Left: right, Right: arg}
	}
	return &ast.Operator{Op: sym.Value, Left: left, Right: right}, nil
}

func (p *Parser) parseExpression0() (ast.Expr, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.TokenLParen:
		return p.parseParenExpression()
	case lexer.TokenIdentifier:
		p.advance()
		return &ast.Ident{Name: tok.Value}, nil
	case lexer.TokenNumber:
		p.advance()
		return &ast.NumLiteral{Value: tok.Value}, nil
	case lexer.TokenString:
		p.advance()
		return &ast.StringLiteral{Value: tok.Value}, nil
	case lexer.TokenChar:
		p.advance()
		r, _ := utf8.DecodeRuneInString(tok.Value)
		return &ast.CharLiteral{Value: r}, nil
	case lexer.TokenLBracket:
		return p.parseArrayLiteral()
	case lexer.TokenIf:
		return p.parseIfExpression()
	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		return &ast.BoolLiteral{Value: tok.Type == lexer.TokenTrue}, nil
	}
	return nil, p.unexpected(expressionStart...)
}

// parseParenExpression parses `(e)` as e and `(e1, e2, ...)` as a tuple.
func (p *Parser) parseParenExpression() (ast.Expr, error) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	items, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	if err := p.expectClose(lexer.TokenRParen); err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &ast.TupleExpr{Items: items}, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expr, error) {
	if _, err := p.expect(lexer.TokenLBracket); err != nil {
		return nil, err
	}
	array := &ast.ArrayLiteral{}
	if p.accept(lexer.TokenRBracket) {
		return array, nil
	}
	items, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	if err := p.expectClose(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	array.Items = items
	return array, nil
}

// expectClose consumes the closing bracket of a comma separated list.
func (p *Parser) expectClose(closing lexer.TokenType) error {
	if p.accept(closing) {
		return nil
	}
	return p.unexpected(closing, lexer.TokenComma)
}

func (p *Parser) parseExpressionList() ([]ast.Expr, error) {
	var items []ast.Expr
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.accept(lexer.TokenComma) {
			return items, nil
		}
	}
}

func (p *Parser) parseIfExpression() (*ast.IfExpr, error) {
	if _, err := p.expect(lexer.TokenIf); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenThen); err != nil {
		return nil, err
	}
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenElse); err != nil {
		return nil, err
	}
	otherwise, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.IfExpr{Test: test, Then: then, Else: otherwise}, nil
}

// parsePattern parses a function parameter: `x`, `Tag(p)` or `(p, q)`.
func (p *Parser) parsePattern() (ast.Pattern, error) {
	switch tok := p.current(); tok.Type {
	case lexer.TokenIdentifier:
		p.advance()
		id := &ast.Ident{Name: tok.Value}
		if !p.check(lexer.TokenLParen) {
			return id, nil
		}
		inner, err := p.parseTuplePattern()
		if err != nil {
			return nil, err
		}
		return &ast.TaggedTuplePattern{Tag: id, Pattern: inner}, nil
	case lexer.TokenLParen:
		return p.parseTuplePattern()
	}
	return nil, p.unexpected(lexer.TokenIdentifier, lexer.TokenLParen)
}

// parseTuplePattern parses a parenthesized pattern list. A single element is
// returned as is; parentheses only group.
func (p *Parser) parseTuplePattern() (ast.Pattern, error) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	var patterns []ast.Pattern
	if !p.accept(lexer.TokenRParen) {
		for {
			pattern, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, pattern)
			if !p.accept(lexer.TokenComma) {
				break
			}
		}
		if err := p.expectClose(lexer.TokenRParen); err != nil {
			return nil, err
		}
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	return &ast.TuplePattern{Patterns: patterns}, nil
}
