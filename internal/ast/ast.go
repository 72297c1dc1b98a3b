// Package ast defines the abstract syntax tree of the ng language.
//
// The node set is closed: every node type lives in this package and carries
// an unexported marker method. Nodes are always handled through pointers and
// a node's identity is its address, which the resolver uses to index scopes.
// Nodes are never modified after the parser builds them.
package ast

// Node is the base interface for all AST nodes
type Node interface {
	Kind() NodeKind
	node()
}

// Expr is a node that may appear where a value is expected.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a node that may appear as a function parameter.
type Pattern interface {
	Node
	patternNode()
}

// Decl is a top-level declaration. Ident is the name it binds.
type Decl interface {
	Node
	Ident() *Ident
	declNode()
}

// TypeCons is one alternative of a type declaration.
type TypeCons interface {
	Node
	Ident() *Ident
	consNode()
}

// TypeParam is a generic parameter of a type name or signature.
type TypeParam interface {
	Node
	Ident() *Ident
	typeParamNode()
}

// TypeExpr is a type reference in a signature or constructor.
type TypeExpr interface {
	Node
	typeExprNode()
}

// ===== Literals =====

// ArrayLiteral is [a, b, c]
type ArrayLiteral struct {
	Items []Expr
}

// BoolLiteral is true or false.
type BoolLiteral struct {
	Value bool
}

type CharLiteral struct {
	Value rune
}

// NumLiteral keeps the source digits; numeric conversion is left to later stages.
type NumLiteral struct {
	Value string
}

// StringLiteral holds the unescaped string value.
type StringLiteral struct {
	Value string
}

// ===== Type constructors =====

// EnumCons is a constructor without arguments: cons Nil
type EnumCons struct {
	ID *Ident
}

// ProductCons is a constructor with arguments: cons Cons(a, List<a>)
type ProductCons struct {
	ID   *Ident
	Args []*TypeArg
}

// ===== Type declarations =====

// DeclTypeName is the declared side of a type: name<params>
type DeclTypeName struct {
	ID     *Ident
	Params []TypeParam
}

// TypeAlias is type name = other<args>
type TypeAlias struct {
	Name  *DeclTypeName
	Alias *TypeArg
}

// TypeDecl is type name = | cons A | cons B(...)
type TypeDecl struct {
	Name *DeclTypeName
	Cons []TypeCons
}

// TypeArg references a type, optionally applied to arguments: List<a>
type TypeArg struct {
	Name *Ident
	Args []*TypeArg
}

// SimpleTypeParam is a bare type variable: a
type SimpleTypeParam struct {
	ID *Ident
}

// MappedTypeParam is a parameter constrained by an expression: arity: Int
type MappedTypeParam struct {
	ID   *Ident
	Type Expr
}

// ===== Declarations =====

// ValDecl is val name = value
type ValDecl struct {
	ID    *Ident
	Value Expr
}

// Func is fun name patterns... = body. The signature a function is matched
// with is recorded by the resolver, not on the node.
type Func struct {
	ID     *Ident
	Params []Pattern
	Body   Expr
}

// Signature is sig name :: params => type
type Signature struct {
	ID     *Ident
	Type   TypeExpr
	Params []TypeParam
}

// ===== Expressions =====

// Ident is a name. It is also the variable pattern.
type Ident struct {
	Name string
}

// FunType is left -> right. Right nests to the right.
type FunType struct {
	Left  TypeExpr
	Right TypeExpr
}

// Apply is juxtaposition: Left applied to Right.
type Apply struct {
	Left  Expr
	Right Expr
}

// IfExpr is if test then a else b
type IfExpr struct {
	Test Expr
	Then Expr
	Else Expr
}

// Operator is a binary infix operation. Op is the operator spelling.
type Operator struct {
	Op    string
	Left  Expr
	Right Expr
}

// TupleExpr is (a, b, ...). A single parenthesized expression is not a tuple.
type TupleExpr struct {
	Items []Expr
}

// ===== Patterns =====

// TaggedTuplePattern matches a constructor: Cons(x, xs)
type TaggedTuplePattern struct {
	Tag     *Ident
	Pattern Pattern
}

// TuplePattern matches a tuple: (x, y)
type TuplePattern struct {
	Patterns []Pattern
}

// Program is the root of the AST: one compilation unit.
type Program struct {
	Decls []Decl
}

func (*ArrayLiteral) node()       {}
func (*BoolLiteral) node()        {}
func (*CharLiteral) node()        {}
func (*NumLiteral) node()         {}
func (*StringLiteral) node()      {}
func (*EnumCons) node()           {}
func (*ProductCons) node()        {}
func (*DeclTypeName) node()       {}
func (*TypeAlias) node()          {}
func (*TypeDecl) node()           {}
func (*TypeArg) node()            {}
func (*SimpleTypeParam) node()    {}
func (*MappedTypeParam) node()    {}
func (*ValDecl) node()            {}
func (*Func) node()               {}
func (*Signature) node()          {}
func (*Ident) node()              {}
func (*FunType) node()            {}
func (*Apply) node()              {}
func (*IfExpr) node()             {}
func (*Operator) node()           {}
func (*TupleExpr) node()          {}
func (*TaggedTuplePattern) node() {}
func (*TuplePattern) node()       {}
func (*Program) node()            {}

func (*ArrayLiteral) exprNode()  {}
func (*BoolLiteral) exprNode()   {}
func (*CharLiteral) exprNode()   {}
func (*NumLiteral) exprNode()    {}
func (*StringLiteral) exprNode() {}
func (*Ident) exprNode()         {}
func (*Apply) exprNode()         {}
func (*IfExpr) exprNode()        {}
func (*Operator) exprNode()      {}
func (*TupleExpr) exprNode()     {}

func (*Ident) patternNode()              {}
func (*TaggedTuplePattern) patternNode() {}
func (*TuplePattern) patternNode()       {}

func (*TypeAlias) declNode() {}
func (*TypeDecl) declNode()  {}
func (*ValDecl) declNode()   {}
func (*Func) declNode()      {}
func (*Signature) declNode() {}

func (*EnumCons) consNode()    {}
func (*ProductCons) consNode() {}

func (*SimpleTypeParam) typeParamNode() {}
func (*MappedTypeParam) typeParamNode() {}

func (*TypeArg) typeExprNode() {}
func (*FunType) typeExprNode() {}

func (d *TypeAlias) Ident() *Ident       { return d.Name.ID }
func (d *TypeDecl) Ident() *Ident        { return d.Name.ID }
func (d *ValDecl) Ident() *Ident         { return d.ID }
func (d *Func) Ident() *Ident            { return d.ID }
func (d *Signature) Ident() *Ident       { return d.ID }
func (c *EnumCons) Ident() *Ident        { return c.ID }
func (c *ProductCons) Ident() *Ident     { return c.ID }
func (p *SimpleTypeParam) Ident() *Ident { return p.ID }
func (p *MappedTypeParam) Ident() *Ident { return p.ID }

// NewIdent returns an identifier node.
func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}
