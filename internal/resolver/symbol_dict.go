package resolver

import (
	"strings"

	"github.com/ng-lang/ng/internal/ast"
)

// PathSeparator separates segments of a qualified name.
const PathSeparator = "::"

// SymbolDict answers qualified lookups over a resolved program.
type SymbolDict struct {
	tree     *Tree
	children map[ast.Node]ScopeID
}

func newSymbolDict(tree *Tree) *SymbolDict {
	return &SymbolDict{tree: tree, children: make(map[ast.Node]ScopeID)}
}

// Root returns the program scope.
func (d *SymbolDict) Root() *Scope {
	return d.tree.Root()
}

// Tree returns the scope arena.
func (d *SymbolDict) Tree() *Tree {
	return d.tree
}

// Scopes returns every scope in creation order, root first.
func (d *SymbolDict) Scopes() []*Scope {
	scopes := make([]*Scope, len(d.tree.scopes))
	copy(scopes, d.tree.scopes)
	return scopes
}

// ScopeOf returns the scope opened for node.
func (d *SymbolDict) ScopeOf(node ast.Node) (*Scope, bool) {
	id, ok := d.children[node]
	if !ok {
		return nil, false
	}
	return d.tree.scopes[id], true
}

// Signature returns the signature declared for fn, if any.
func (d *SymbolDict) Signature(fn *ast.Func) (*ast.Signature, bool) {
	sig, ok := d.tree.signatures[fn]
	return sig, ok
}

// Lookup resolves a path such as "fact::x". The first segment is looked up
// from the root; each later segment is looked up in the scope opened for the
// node the previous segment resolved to, falling back to that scope's
// ancestors. A name that is not bound yields nil. A segment following one
// that opened no scope is an *UnexpectedSymbolError.
func (d *SymbolDict) Lookup(path string) (ast.Node, error) {
	var node ast.Node
	scope := d.tree.Root()
	for _, segment := range strings.Split(path, PathSeparator) {
		if scope == nil {
			return nil, &UnexpectedSymbolError{Path: path, Segment: segment}
		}
		node = scope.Lookup(segment)
		scope = nil
		if node != nil {
			scope, _ = d.ScopeOf(node)
		}
	}
	return node, nil
}

func (d *SymbolDict) bind(node ast.Node, kind ScopeKind, parent *Scope) *Scope {
	s := d.tree.newScope(parent.id, kind, node)
	d.children[node] = s.id
	return s
}
