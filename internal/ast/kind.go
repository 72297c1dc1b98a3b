package ast

import "fmt"

// NodeKind identifies the concrete type of a node
type NodeKind int

const (
	KindArrayLiteral NodeKind = iota
	KindBoolLiteral
	KindCharLiteral
	KindNumLiteral
	KindStringLiteral
	KindEnumCons
	KindProductCons
	KindDeclTypeName
	KindTypeAlias
	KindTypeDecl
	KindTypeArg
	KindSimpleTypeParam
	KindMappedTypeParam
	KindValDecl
	KindFunc
	KindSignature
	KindIdent
	KindFunType
	KindApply
	KindIfExpr
	KindOperator
	KindTupleExpr
	KindTaggedTuplePattern
	KindTuplePattern
	KindProgram
)

var kindNames = map[NodeKind]string{
	KindArrayLiteral:       "ArrayLiteral",
	KindBoolLiteral:        "BoolLiteral",
	KindCharLiteral:        "CharLiteral",
	KindNumLiteral:         "NumLiteral",
	KindStringLiteral:      "StringLiteral",
	KindEnumCons:           "EnumCons",
	KindProductCons:        "ProductCons",
	KindDeclTypeName:       "DeclTypeName",
	KindTypeAlias:          "TypeAlias",
	KindTypeDecl:           "TypeDecl",
	KindTypeArg:            "TypeArg",
	KindSimpleTypeParam:    "SimpleTypeParam",
	KindMappedTypeParam:    "MappedTypeParam",
	KindValDecl:            "ValDecl",
	KindFunc:               "Func",
	KindSignature:          "Signature",
	KindIdent:              "Ident",
	KindFunType:            "FunType",
	KindApply:              "Apply",
	KindIfExpr:             "IfExpr",
	KindOperator:           "Operator",
	KindTupleExpr:          "TupleExpr",
	KindTaggedTuplePattern: "TaggedTuplePattern",
	KindTuplePattern:       "TuplePattern",
	KindProgram:            "Program",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

func (*ArrayLiteral) Kind() NodeKind       { return KindArrayLiteral }
func (*BoolLiteral) Kind() NodeKind        { return KindBoolLiteral }
func (*CharLiteral) Kind() NodeKind        { return KindCharLiteral }
func (*NumLiteral) Kind() NodeKind         { return KindNumLiteral }
func (*StringLiteral) Kind() NodeKind      { return KindStringLiteral }
func (*EnumCons) Kind() NodeKind           { return KindEnumCons }
func (*ProductCons) Kind() NodeKind        { return KindProductCons }
func (*DeclTypeName) Kind() NodeKind       { return KindDeclTypeName }
func (*TypeAlias) Kind() NodeKind          { return KindTypeAlias }
func (*TypeDecl) Kind() NodeKind           { return KindTypeDecl }
func (*TypeArg) Kind() NodeKind            { return KindTypeArg }
func (*SimpleTypeParam) Kind() NodeKind    { return KindSimpleTypeParam }
func (*MappedTypeParam) Kind() NodeKind    { return KindMappedTypeParam }
func (*ValDecl) Kind() NodeKind            { return KindValDecl }
func (*Func) Kind() NodeKind               { return KindFunc }
func (*Signature) Kind() NodeKind          { return KindSignature }
func (*Ident) Kind() NodeKind              { return KindIdent }
func (*FunType) Kind() NodeKind            { return KindFunType }
func (*Apply) Kind() NodeKind              { return KindApply }
func (*IfExpr) Kind() NodeKind             { return KindIfExpr }
func (*Operator) Kind() NodeKind           { return KindOperator }
func (*TupleExpr) Kind() NodeKind          { return KindTupleExpr }
func (*TaggedTuplePattern) Kind() NodeKind { return KindTaggedTuplePattern }
func (*TuplePattern) Kind() NodeKind       { return KindTuplePattern }
func (*Program) Kind() NodeKind            { return KindProgram }
