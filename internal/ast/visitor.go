package ast

import "fmt"

// Visitor is implemented by every pass over the AST. Accept routes a node to
// the method for its concrete type.
type Visitor[T any] interface {
	VisitArrayLiteral(node *ArrayLiteral) T
	VisitBoolLiteral(node *BoolLiteral) T
	VisitCharLiteral(node *CharLiteral) T
	VisitNumLiteral(node *NumLiteral) T
	VisitStringLiteral(node *StringLiteral) T

	VisitEnumCons(node *EnumCons) T
	VisitProductCons(node *ProductCons) T

	VisitDeclTypeName(node *DeclTypeName) T
	VisitTypeAlias(node *TypeAlias) T
	VisitTypeDecl(node *TypeDecl) T
	VisitTypeArg(node *TypeArg) T
	VisitSimpleTypeParam(node *SimpleTypeParam) T
	VisitMappedTypeParam(node *MappedTypeParam) T

	VisitValDecl(node *ValDecl) T
	VisitFunc(node *Func) T
	VisitSignature(node *Signature) T

	VisitIdent(node *Ident) T
	VisitFunType(node *FunType) T
	VisitApply(node *Apply) T
	VisitIfExpr(node *IfExpr) T
	VisitOperator(node *Operator) T
	VisitTupleExpr(node *TupleExpr) T

	VisitTaggedTuplePattern(node *TaggedTuplePattern) T
	VisitTuplePattern(node *TuplePattern) T

	VisitProgram(node *Program) T
}

// Accept dispatches node to the matching method of v.
func Accept[T any](v Visitor[T], node Node) T {
	switch n := node.(type) {
	case *ArrayLiteral:
		return v.VisitArrayLiteral(n)
	case *BoolLiteral:
		return v.VisitBoolLiteral(n)
	case *CharLiteral:
		return v.VisitCharLiteral(n)
	case *NumLiteral:
		return v.VisitNumLiteral(n)
	case *StringLiteral:
		return v.VisitStringLiteral(n)
	case *EnumCons:
		return v.VisitEnumCons(n)
	case *ProductCons:
		return v.VisitProductCons(n)
	case *DeclTypeName:
		return v.VisitDeclTypeName(n)
	case *TypeAlias:
		return v.VisitTypeAlias(n)
	case *TypeDecl:
		return v.VisitTypeDecl(n)
	case *TypeArg:
		return v.VisitTypeArg(n)
	case *SimpleTypeParam:
		return v.VisitSimpleTypeParam(n)
	case *MappedTypeParam:
		return v.VisitMappedTypeParam(n)
	case *ValDecl:
		return v.VisitValDecl(n)
	case *Func:
		return v.VisitFunc(n)
	case *Signature:
		return v.VisitSignature(n)
	case *Ident:
		return v.VisitIdent(n)
	case *FunType:
		return v.VisitFunType(n)
	case *Apply:
		return v.VisitApply(n)
	case *IfExpr:
		return v.VisitIfExpr(n)
	case *Operator:
		return v.VisitOperator(n)
	case *TupleExpr:
		return v.VisitTupleExpr(n)
	case *TaggedTuplePattern:
		return v.VisitTaggedTuplePattern(n)
	case *TuplePattern:
		return v.VisitTuplePattern(n)
	case *Program:
		return v.VisitProgram(n)
	}
	panic(fmt.Sprintf("ast: unexpected node type %T", node))
}

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		out = append(out, nodes...)
	}
	switch n := node.(type) {
	case *ArrayLiteral:
		for _, item := range n.Items {
			add(item)
		}
	case *EnumCons:
		add(n.ID)
	case *ProductCons:
		add(n.ID)
		for _, arg := range n.Args {
			add(arg)
		}
	case *DeclTypeName:
		add(n.ID)
		for _, p := range n.Params {
			add(p)
		}
	case *TypeAlias:
		add(n.Name, n.Alias)
	case *TypeDecl:
		add(n.Name)
		for _, c := range n.Cons {
			add(c)
		}
	case *TypeArg:
		add(n.Name)
		for _, arg := range n.Args {
			add(arg)
		}
	case *SimpleTypeParam:
		add(n.ID)
	case *MappedTypeParam:
		add(n.ID, n.Type)
	case *ValDecl:
		add(n.ID, n.Value)
	case *Func:
		add(n.ID)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *Signature:
		add(n.ID)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Type)
	case *FunType:
		add(n.Left, n.Right)
	case *Apply:
		add(n.Left, n.Right)
	case *IfExpr:
		add(n.Test, n.Then, n.Else)
	case *Operator:
		add(n.Left, n.Right)
	case *TupleExpr:
		for _, item := range n.Items {
			add(item)
		}
	case *TaggedTuplePattern:
		add(n.Tag, n.Pattern)
	case *TuplePattern:
		for _, p := range n.Patterns {
			add(p)
		}
	case *Program:
		for _, d := range n.Decls {
			add(d)
		}
	}
	return out
}

// Inspect traverses the tree depth-first in source order, calling f for each
// node. Children of a node are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}
