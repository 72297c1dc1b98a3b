package parser

import (
	"github.com/ng-lang/ng/internal/ast"
	"github.com/ng-lang/ng/internal/lexer"
)

// parseTypeDeclaration parses
//
//	type name<params> = alias<args>
//	type name<params> = | cons A | cons B(args)
func (p *Parser) parseTypeDeclaration() (ast.Decl, error) {
	if _, err := p.expect(lexer.TokenTypeKeyword); err != nil {
		return nil, err
	}
	name, err := p.parseDeclTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}

	if p.check(lexer.TokenIdentifier) {
		alias, err := p.parseTypeArg()
		if err != nil {
			return nil, err
		}
		return &ast.TypeAlias{Name: name, Alias: alias}, nil
	}

	cons, err := p.parseTypeBody()
	if err != nil {
		return nil, err
	}
	return &ast.TypeDecl{Name: name, Cons: cons}, nil
}

func (p *Parser) parseDeclTypeName() (*ast.DeclTypeName, error) {
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	name := &ast.DeclTypeName{ID: id}
	if p.accept(lexer.TokenLt) {
		if name.Params, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenGt); err != nil {
			return nil, err
		}
	}
	return name, nil
}

func (p *Parser) parseTypeParams() ([]ast.TypeParam, error) {
	var params []ast.TypeParam
	for {
		param, err := p.parseTypeParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.accept(lexer.TokenComma) {
			return params, nil
		}
	}
}

// parseTypeParam parses a simple parameter `a` or a mapped one `n: expr`.
func (p *Parser) parseTypeParam() (ast.TypeParam, error) {
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if !p.accept(lexer.TokenColon) {
		return &ast.SimpleTypeParam{ID: id}, nil
	}
	typ, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.MappedTypeParam{ID: id, Type: typ}, nil
}

func (p *Parser) parseTypeBody() ([]ast.TypeCons, error) {
	if !p.check(lexer.TokenPipe) {
		c, err := p.parseTypeCons()
		if err != nil {
			return nil, err
		}
		return []ast.TypeCons{c}, nil
	}
	var cons []ast.TypeCons
	for p.accept(lexer.TokenPipe) {
		c, err := p.parseTypeCons()
		if err != nil {
			return nil, err
		}
		cons = append(cons, c)
	}
	return cons, nil
}

func (p *Parser) parseTypeCons() (ast.TypeCons, error) {
	if _, err := p.expect(lexer.TokenCons); err != nil {
		return nil, err
	}
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if !p.accept(lexer.TokenLParen) {
		return &ast.EnumCons{ID: id}, nil
	}
	args, err := p.parseTypeArgs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return &ast.ProductCons{ID: id, Args: args}, nil
}

func (p *Parser) parseTypeArgs() ([]*ast.TypeArg, error) {
	var args []*ast.TypeArg
	for {
		arg, err := p.parseTypeArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(lexer.TokenComma) {
			return args, nil
		}
	}
}

// parseTypeArg parses a type reference `name` or `name<args>`.
func (p *Parser) parseTypeArg() (*ast.TypeArg, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	arg := &ast.TypeArg{Name: name}
	if p.accept(lexer.TokenLt) {
		if arg.Args, err = p.parseTypeArgs(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenGt); err != nil {
			return nil, err
		}
	}
	return arg, nil
}

// parseSignature parses `sig name :: params => type`. The generic parameter
// list is optional and tried inside a transaction.
func (p *Parser) parseSignature() (*ast.Signature, error) {
	if _, err := p.expect(lexer.TokenSig); err != nil {
		return nil, err
	}
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenDoubleColon); err != nil {
		return nil, err
	}

	var params []ast.TypeParam
	if _, err := p.Transactional(func() error {
		ps, err := p.parseTypeParams()
		if err != nil {
			return err
		}
		if err := p.expectArrow("=>"); err != nil {
			return err
		}
		params = ps
		return nil
	}); err != nil {
		return nil, err
	}

	typ, err := p.parseFunType()
	if err != nil {
		return nil, err
	}
	return &ast.Signature{ID: id, Type: typ, Params: params}, nil
}

// parseFunType parses `arg -> arg -> ... -> arg`, nesting to the right.
func (p *Parser) parseFunType() (ast.TypeExpr, error) {
	left, err := p.parseTypeArg()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != lexer.TokenArrow || tok.Value != "->" {
		return left, nil
	}
	p.advance()
	right, err := p.parseFunType()
	if err != nil {
		return nil, err
	}
	return &ast.FunType{Left: left, Right: right}, nil
}

func (p *Parser) parseValDeclaration() (*ast.ValDecl, error) {
	if _, err := p.expect(lexer.TokenVal); err != nil {
		return nil, err
	}
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ValDecl{ID: id, Value: value}, nil
}

// parseFuncDeclaration parses `fun name pattern... = body`.
func (p *Parser) parseFuncDeclaration() (*ast.Func, error) {
	if _, err := p.expect(lexer.TokenFun); err != nil {
		return nil, err
	}
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	fn := &ast.Func{ID: id}
	for !p.accept(lexer.TokenAssign) {
		if !p.check(lexer.TokenIdentifier) && !p.check(lexer.TokenLParen) {
			return nil, p.unexpected(lexer.TokenIdentifier, lexer.TokenLParen, lexer.TokenAssign)
		}
		param, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
	}
	if fn.Body, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return fn, nil
}
