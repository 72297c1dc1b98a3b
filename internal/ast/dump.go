package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Label returns a one-line description of node: its kind followed by the
// name or literal value it carries, if any.
func Label(node Node) string {
	switch n := node.(type) {
	case *BoolLiteral:
		return fmt.Sprintf("%s %t", n.Kind(), n.Value)
	case *CharLiteral:
		return fmt.Sprintf("%s %s", n.Kind(), strconv.QuoteRune(n.Value))
	case *NumLiteral:
		return fmt.Sprintf("%s %s", n.Kind(), n.Value)
	case *StringLiteral:
		return fmt.Sprintf("%s %s", n.Kind(), strconv.Quote(n.Value))
	case *Ident:
		return fmt.Sprintf("%s %s", n.Kind(), n.Name)
	case *Operator:
		return fmt.Sprintf("%s %s", n.Kind(), n.Op)
	case Decl:
		return fmt.Sprintf("%s %s", n.Kind(), n.Ident().Name)
	case nil:
		return "<nil>"
	}
	return node.Kind().String()
}

// Dump renders the tree below node, one node per line, indented by depth.
func Dump(node Node) string {
	var sb strings.Builder
	dump(&sb, node, 0)
	return sb.String()
}

func dump(sb *strings.Builder, node Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(Label(node))
	sb.WriteByte('\n')
	for _, child := range Children(node) {
		dump(sb, child, depth+1)
	}
}
