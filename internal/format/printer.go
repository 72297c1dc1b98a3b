package format

import (
	"strings"

	"github.com/ng-lang/ng/internal/ast"
)

// Node renders node as ng source text. Sub-expressions are parenthesized only
// where the parser would otherwise group them differently, so parsing the
// result yields a structurally equal tree.
func Node(node ast.Node) string {
	if node == nil {
		return ""
	}
	return ast.Accept[string](printer{}, node)
}

// printer implements ast.Visitor[string].
type printer struct{}

func (p printer) print(node ast.Node) string {
	return ast.Accept[string](p, node)
}

// isAtom reports whether e parses back as a single primary expression.
func isAtom(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Ident, *ast.NumLiteral, *ast.StringLiteral, *ast.CharLiteral,
		*ast.BoolLiteral, *ast.ArrayLiteral, *ast.TupleExpr:
		return true
	}
	return false
}

func (p printer) paren(e ast.Expr, bare bool) string {
	if bare {
		return p.print(e)
	}
	return "(" + p.print(e) + ")"
}

func (p printer) join(nodes []ast.Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = p.print(n)
	}
	return strings.Join(parts, sep)
}

func exprNodes(exprs []ast.Expr) []ast.Node {
	nodes := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}

func patternNodes(patterns []ast.Pattern) []ast.Node {
	nodes := make([]ast.Node, len(patterns))
	for i, pt := range patterns {
		nodes[i] = pt
	}
	return nodes
}

func paramNodes(params []ast.TypeParam) []ast.Node {
	nodes := make([]ast.Node, len(params))
	for i, tp := range params {
		nodes[i] = tp
	}
	return nodes
}

func argNodes(args []*ast.TypeArg) []ast.Node {
	nodes := make([]ast.Node, len(args))
	for i, a := range args {
		nodes[i] = a
	}
	return nodes
}

func (p printer) VisitProgram(node *ast.Program) string {
	decls := make([]string, len(node.Decls))
	for i, d := range node.Decls {
		decls[i] = p.print(d)
	}
	return strings.Join(decls, "\n")
}

// ===== Declarations =====

func (p printer) VisitTypeAlias(node *ast.TypeAlias) string {
	return "type " + p.print(node.Name) + " = " + p.print(node.Alias)
}

func (p printer) VisitTypeDecl(node *ast.TypeDecl) string {
	var sb strings.Builder
	sb.WriteString("type ")
	sb.WriteString(p.print(node.Name))
	sb.WriteString(" =")
	for _, c := range node.Cons {
		sb.WriteString(" | ")
		sb.WriteString(p.print(c))
	}
	return sb.String()
}

func (p printer) VisitDeclTypeName(node *ast.DeclTypeName) string {
	if len(node.Params) == 0 {
		return node.ID.Name
	}
	return node.ID.Name + "<" + p.join(paramNodes(node.Params), ", ") + ">"
}

func (p printer) VisitEnumCons(node *ast.EnumCons) string {
	return "cons " + node.ID.Name
}

func (p printer) VisitProductCons(node *ast.ProductCons) string {
	return "cons " + node.ID.Name + "(" + p.join(argNodes(node.Args), ", ") + ")"
}

func (p printer) VisitTypeArg(node *ast.TypeArg) string {
	if len(node.Args) == 0 {
		return node.Name.Name
	}
	return node.Name.Name + "<" + p.join(argNodes(node.Args), ", ") + ">"
}

func (p printer) VisitSimpleTypeParam(node *ast.SimpleTypeParam) string {
	return node.ID.Name
}

func (p printer) VisitMappedTypeParam(node *ast.MappedTypeParam) string {
	return node.ID.Name + ": " + p.print(node.Type)
}

func (p printer) VisitSignature(node *ast.Signature) string {
	var sb strings.Builder
	sb.WriteString("sig ")
	sb.WriteString(node.ID.Name)
	sb.WriteString(" :: ")
	if len(node.Params) > 0 {
		sb.WriteString(p.join(paramNodes(node.Params), ", "))
		sb.WriteString(" => ")
	}
	sb.WriteString(p.print(node.Type))
	return sb.String()
}

// VisitFunType prints arrows right-nested. The grammar has no way to group a
// function type on the left of an arrow.
func (p printer) VisitFunType(node *ast.FunType) string {
	return p.print(node.Left) + " -> " + p.print(node.Right)
}

func (p printer) VisitValDecl(node *ast.ValDecl) string {
	return "val " + node.ID.Name + " = " + p.print(node.Value)
}

func (p printer) VisitFunc(node *ast.Func) string {
	var sb strings.Builder
	sb.WriteString("fun ")
	sb.WriteString(node.ID.Name)
	for _, param := range node.Params {
		sb.WriteByte(' ')
		sb.WriteString(p.print(param))
	}
	sb.WriteString(" = ")
	sb.WriteString(p.print(node.Body))
	return sb.String()
}

// ===== Patterns =====

func (p printer) VisitTuplePattern(node *ast.TuplePattern) string {
	return "(" + p.join(patternNodes(node.Patterns), ", ") + ")"
}

func (p printer) VisitTaggedTuplePattern(node *ast.TaggedTuplePattern) string {
	if tuple, ok := node.Pattern.(*ast.TuplePattern); ok {
		return node.Tag.Name + p.print(tuple)
	}
	return node.Tag.Name + "(" + p.print(node.Pattern) + ")"
}

// ===== Expressions =====

func (p printer) VisitIdent(node *ast.Ident) string {
	return node.Name
}

// VisitApply prints `f x`. Application is left associative, so an Apply on
// the left stays bare and anything but an atom on the right is grouped.
func (p printer) VisitApply(node *ast.Apply) string {
	_, leftApply := node.Left.(*ast.Apply)
	return p.paren(node.Left, isAtom(node.Left) || leftApply) + " " + p.paren(node.Right, isAtom(node.Right))
}

// VisitOperator prints `l op r`. Operators group left to right without
// precedence and their right operand is an application chain.
func (p printer) VisitOperator(node *ast.Operator) string {
	var leftBare, rightBare bool
	switch node.Left.(type) {
	case *ast.Apply, *ast.Operator:
		leftBare = true
	default:
		leftBare = isAtom(node.Left)
	}
	_, rightApply := node.Right.(*ast.Apply)
	rightBare = isAtom(node.Right) || rightApply
	return p.paren(node.Left, leftBare) + " " + node.Op + " " + p.paren(node.Right, rightBare)
}

func (p printer) VisitIfExpr(node *ast.IfExpr) string {
	return "if " + p.print(node.Test) + " then " + p.print(node.Then) + " else " + p.print(node.Else)
}

func (p printer) VisitTupleExpr(node *ast.TupleExpr) string {
	return "(" + p.join(exprNodes(node.Items), ", ") + ")"
}

func (p printer) VisitArrayLiteral(node *ast.ArrayLiteral) string {
	return "[" + p.join(exprNodes(node.Items), ", ") + "]"
}

func (p printer) VisitNumLiteral(node *ast.NumLiteral) string {
	return node.Value
}

func (p printer) VisitBoolLiteral(node *ast.BoolLiteral) string {
	if node.Value {
		return "true"
	}
	return "false"
}

func (p printer) VisitStringLiteral(node *ast.StringLiteral) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range node.Value {
		if r == '"' {
			sb.WriteString(`\"`)
			continue
		}
		writeRune(&sb, r)
	}
	sb.WriteByte('"')
	return sb.String()
}

func (p printer) VisitCharLiteral(node *ast.CharLiteral) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	if node.Value == '\'' {
		sb.WriteString(`\'`)
	} else {
		writeRune(&sb, node.Value)
	}
	sb.WriteByte('\'')
	return sb.String()
}

// writeRune writes r, escaping the characters the lexer decodes from a
// backslash sequence. Everything else is written verbatim: a \u escape would
// swallow hex digits that follow it.
func writeRune(sb *strings.Builder, r rune) {
	switch r {
	case '\\':
		sb.WriteString(`\\`)
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	case '\r':
		sb.WriteString(`\r`)
	case '\b':
		sb.WriteString(`\b`)
	default:
		sb.WriteRune(r)
	}
}
