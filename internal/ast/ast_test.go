package ast

import (
	"strings"
	"testing"
)

// fact x = if x = 0 then 1 else x * fact(x - 1)
func factorial() *Program {
	x := NewIdent("x")
	return &Program{Decls: []Decl{
		&Func{
			ID:     NewIdent("fact"),
			Params: []Pattern{x},
			Body: &IfExpr{
				Test: &Operator{Op: "=", Left: NewIdent("x"), Right: &NumLiteral{Value: "0"}},
				Then: &NumLiteral{Value: "1"},
				Else: &Operator{
					Op:   "*",
					Left: NewIdent("x"),
					Right: &Apply{
						Left:  NewIdent("fact"),
						Right: &Operator{Op: "-", Left: NewIdent("x"), Right: &NumLiteral{Value: "1"}},
					},
				},
			},
		},
	}}
}

func TestInspectVisitsEveryNode(t *testing.T) {
	counts := map[NodeKind]int{}
	Inspect(factorial(), func(n Node) bool {
		counts[n.Kind()]++
		return true
	})

	tests := []struct {
		kind     NodeKind
		expected int
	}{
		{KindProgram, 1},
		{KindFunc, 1},
		{KindIfExpr, 1},
		{KindOperator, 3},
		{KindApply, 1},
		{KindNumLiteral, 3},
		{KindIdent, 6},
	}
	for i, tt := range tests {
		if counts[tt.kind] != tt.expected {
			t.Fatalf("tests[%d] - %s count wrong. expected=%d, got=%d", i, tt.kind, tt.expected, counts[tt.kind])
		}
	}
}

func TestInspectPrunes(t *testing.T) {
	visited := 0
	Inspect(factorial(), func(n Node) bool {
		visited++
		_, isFunc := n.(*Func)
		return !isFunc
	})
	if visited != 2 {
		t.Fatalf("expected traversal to stop below Func, visited=%d", visited)
	}
}

func TestChildrenOrder(t *testing.T) {
	sig := &Signature{
		ID:     NewIdent("map"),
		Params: []TypeParam{&SimpleTypeParam{ID: NewIdent("a")}},
		Type:   &TypeArg{Name: NewIdent("a")},
	}
	children := Children(sig)
	expected := []string{"Ident map", "SimpleTypeParam", "TypeArg"}
	if len(children) != len(expected) {
		t.Fatalf("child count wrong. expected=%d, got=%d", len(expected), len(children))
	}
	for i, want := range expected {
		if got := Label(children[i]); got != want {
			t.Fatalf("children[%d] wrong. expected=%q, got=%q", i, want, got)
		}
	}
}

func TestDump(t *testing.T) {
	out := Dump(factorial())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Program" {
		t.Fatalf("first line wrong. expected=%q, got=%q", "Program", lines[0])
	}
	if lines[1] != "  Func fact" {
		t.Fatalf("second line wrong. expected=%q, got=%q", "  Func fact", lines[1])
	}
	if !strings.Contains(out, "      Operator *\n") {
		t.Fatalf("expected nested operator in dump:\n%s", out)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{&BoolLiteral{Value: true}, "BoolLiteral true"},
		{&CharLiteral{Value: '\n'}, `CharLiteral '\n'`},
		{&StringLiteral{Value: "hi"}, `StringLiteral "hi"`},
		{&ValDecl{ID: NewIdent("a"), Value: &NumLiteral{Value: "1"}}, "ValDecl a"},
		{&TupleExpr{}, "TupleExpr"},
		{nil, "<nil>"},
	}
	for i, tt := range tests {
		if got := Label(tt.node); got != tt.expected {
			t.Fatalf("tests[%d] - label wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestDeclIdent(t *testing.T) {
	name := &DeclTypeName{ID: NewIdent("list")}
	decls := []Decl{
		&TypeDecl{Name: name},
		&TypeAlias{Name: name, Alias: &TypeArg{Name: NewIdent("array")}},
	}
	for i, d := range decls {
		if d.Ident() != name.ID {
			t.Fatalf("tests[%d] - ident is not the declared name", i)
		}
	}
}
