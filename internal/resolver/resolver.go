// Symbol resolver for ng programs.
// It walks a parsed program once, binding declarations into a tree of scopes
// and recording which node opened which scope.

package resolver

import (
	"github.com/ng-lang/ng/internal/ast"
)

// Resolve builds the scope tree for program. The first binding error aborts
// resolution.
func Resolve(program *ast.Program) (*SymbolDict, error) {
	r := newResolver()
	if err := ast.Accept[error](r, program); err != nil {
		return nil, err
	}
	return r.dict, nil
}

// resolver implements ast.Visitor[error].
type resolver struct {
	dict    *SymbolDict
	current *Scope
}

func newResolver() *resolver {
	dict := newSymbolDict(NewTree())
	return &resolver{dict: dict, current: dict.Root()}
}

func (r *resolver) visit(node ast.Node) error {
	if node == nil {
		return nil
	}
	return ast.Accept[error](r, node)
}

// withScope opens a scope for node, runs fn inside it and restores the
// enclosing scope.
func (r *resolver) withScope(node ast.Node, kind ScopeKind, fn func() error) error {
	parent := r.current
	r.current = r.dict.bind(node, kind, parent)
	defer func() { r.current = parent }()
	return fn()
}

func (r *resolver) visitAll(nodes ...ast.Node) error {
	for _, n := range nodes {
		if err := r.visit(n); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) VisitProgram(node *ast.Program) error {
	root := r.dict.Root()
	root.owner = node
	r.dict.children[node] = root.id
	for _, decl := range node.Decls {
		if err := r.visit(decl); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) VisitValDecl(node *ast.ValDecl) error {
	if err := r.visit(node.Value); err != nil {
		return err
	}
	return r.current.Add(node.ID.Name, node.Value)
}

func (r *resolver) VisitTypeDecl(node *ast.TypeDecl) error {
	if err := r.current.Add(node.Ident().Name, node); err != nil {
		return err
	}
	return r.withScope(node, ScopeKindType, func() error {
		if err := r.visit(node.Name); err != nil {
			return err
		}
		for _, c := range node.Cons {
			if err := r.visit(c); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *resolver) VisitTypeAlias(node *ast.TypeAlias) error {
	if err := r.current.Add(node.Ident().Name, node); err != nil {
		return err
	}
	return r.withScope(node, ScopeKindAlias, func() error {
		return r.visitAll(node.Name, node.Alias)
	})
}

func (r *resolver) VisitSignature(node *ast.Signature) error {
	if err := r.current.Add(node.ID.Name, node); err != nil {
		return err
	}
	return r.withScope(node, ScopeKindSignature, func() error {
		for _, p := range node.Params {
			if err := r.visit(p); err != nil {
				return err
			}
		}
		return r.visit(node.Type)
	})
}

// VisitFunc binds the function over a preceding signature of the same name,
// then binds its parameters in a scope of its own.
func (r *resolver) VisitFunc(node *ast.Func) error {
	var err error
	if sig, ok := r.current.Lookup(node.ID.Name).(*ast.Signature); ok {
		err = r.current.AddFunc(node, sig)
	} else {
		err = r.current.Add(node.ID.Name, node)
	}
	if err != nil {
		return err
	}
	return r.withScope(node, ScopeKindFunction, func() error {
		for _, p := range node.Params {
			if err := r.bindPattern(p); err != nil {
				return err
			}
		}
		return r.visit(node.Body)
	})
}

// bindPattern binds every identifier of a parameter pattern. Tags of tagged
// patterns name constructors and are not bound.
func (r *resolver) bindPattern(p ast.Pattern) error {
	switch p := p.(type) {
	case *ast.Ident:
		return r.current.Add(p.Name, p)
	case *ast.TuplePattern:
		for _, inner := range p.Patterns {
			if err := r.bindPattern(inner); err != nil {
				return err
			}
		}
	case *ast.TaggedTuplePattern:
		return r.bindPattern(p.Pattern)
	}
	return nil
}

func (r *resolver) VisitIfExpr(node *ast.IfExpr) error {
	return r.withScope(node, ScopeKindIf, func() error {
		if err := r.visit(node.Test); err != nil {
			return err
		}
		if err := r.withScope(node.Then, ScopeKindBranch, func() error {
			return r.visit(node.Then)
		}); err != nil {
			return err
		}
		return r.withScope(node.Else, ScopeKindBranch, func() error {
			return r.visit(node.Else)
		})
	})
}

func (r *resolver) VisitDeclTypeName(node *ast.DeclTypeName) error {
	for _, p := range node.Params {
		if err := r.visit(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) VisitSimpleTypeParam(node *ast.SimpleTypeParam) error {
	return r.current.Add(node.ID.Name, node)
}

func (r *resolver) VisitMappedTypeParam(node *ast.MappedTypeParam) error {
	if err := r.current.Add(node.ID.Name, node); err != nil {
		return err
	}
	return r.visit(node.Type)
}

func (r *resolver) VisitEnumCons(node *ast.EnumCons) error {
	return r.current.Add(node.ID.Name, node)
}

func (r *resolver) VisitProductCons(node *ast.ProductCons) error {
	return r.current.Add(node.ID.Name, node)
}

func (r *resolver) VisitFunType(node *ast.FunType) error {
	return r.visitAll(node.Left, node.Right)
}

func (r *resolver) VisitApply(node *ast.Apply) error {
	return r.visitAll(node.Left, node.Right)
}

func (r *resolver) VisitOperator(node *ast.Operator) error {
	return r.visitAll(node.Left, node.Right)
}

func (r *resolver) VisitTupleExpr(node *ast.TupleExpr) error {
	for _, item := range node.Items {
		if err := r.visit(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) VisitArrayLiteral(node *ast.ArrayLiteral) error {
	for _, item := range node.Items {
		if err := r.visit(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) VisitTaggedTuplePattern(node *ast.TaggedTuplePattern) error {
	return r.visit(node.Pattern)
}

func (r *resolver) VisitTuplePattern(node *ast.TuplePattern) error {
	for _, p := range node.Patterns {
		if err := r.visit(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) VisitIdent(*ast.Ident) error                 { return nil }
func (r *resolver) VisitTypeArg(*ast.TypeArg) error             { return nil }
func (r *resolver) VisitBoolLiteral(*ast.BoolLiteral) error     { return nil }
func (r *resolver) VisitCharLiteral(*ast.CharLiteral) error     { return nil }
func (r *resolver) VisitNumLiteral(*ast.NumLiteral) error       { return nil }
func (r *resolver) VisitStringLiteral(*ast.StringLiteral) error { return nil }
