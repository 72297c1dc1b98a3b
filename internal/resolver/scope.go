// Scope tree and symbol binding for ng programs.
// Scopes live in an arena owned by a Tree and refer to their parent by index.

package resolver

import (
	"fmt"

	"github.com/ng-lang/ng/internal/ast"
)

// ScopeID identifies a scope inside its Tree.
type ScopeID int

// NoScope is the parent of the root scope.
const NoScope ScopeID = -1

// ScopeKind represents the construct that opened a scope.
type ScopeKind int

const (
	ScopeKindRoot ScopeKind = iota
	ScopeKindType
	ScopeKindAlias
	ScopeKindSignature
	ScopeKindFunction
	ScopeKindIf
	ScopeKindBranch
	ScopeKindBlock
)

// String returns the string representation of ScopeKind.
func (sk ScopeKind) String() string {
	switch sk {
	case ScopeKindRoot:
		return "root"
	case ScopeKindType:
		return "type"
	case ScopeKindAlias:
		return "alias"
	case ScopeKindSignature:
		return "signature"
	case ScopeKindFunction:
		return "function"
	case ScopeKindIf:
		return "if"
	case ScopeKindBranch:
		return "branch"
	case ScopeKindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Tree owns every scope of one program plus the function to signature table.
type Tree struct {
	scopes     []*Scope
	signatures map[*ast.Func]*ast.Signature
}

// NewTree creates a tree holding only the root scope.
func NewTree() *Tree {
	t := &Tree{signatures: make(map[*ast.Func]*ast.Signature)}
	t.newScope(NoScope, ScopeKindRoot, nil)
	return t
}

func (t *Tree) newScope(parent ScopeID, kind ScopeKind, owner ast.Node) *Scope {
	s := &Scope{
		id:      ScopeID(len(t.scopes)),
		parent:  parent,
		kind:    kind,
		owner:   owner,
		symbols: make(map[string]ast.Node),
		tree:    t,
	}
	t.scopes = append(t.scopes, s)
	return s
}

// Root returns scope 0.
func (t *Tree) Root() *Scope {
	return t.scopes[0]
}

// Scope returns the scope with the given id, or nil when there is none.
func (t *Tree) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// Len returns the number of scopes.
func (t *Tree) Len() int {
	return len(t.scopes)
}

// Scope is a lexical scope. Names are unique within one scope; a child may
// shadow a name bound by an ancestor.
type Scope struct {
	id      ScopeID
	parent  ScopeID
	kind    ScopeKind
	owner   ast.Node
	symbols map[string]ast.Node
	order   []string
	tree    *Tree
}

// ID returns the index of the scope in its tree.
func (s *Scope) ID() ScopeID { return s.id }

// Kind returns the construct that opened the scope.
func (s *Scope) Kind() ScopeKind { return s.kind }

// Owner returns the node the scope was opened for, nil for the root.
func (s *Scope) Owner() ast.Node { return s.owner }

// Parent returns the enclosing scope, nil for the root.
func (s *Scope) Parent() *Scope {
	if s.parent == NoScope {
		return nil
	}
	return s.tree.scopes[s.parent]
}

// Depth returns the number of ancestors.
func (s *Scope) Depth() int {
	depth := 0
	for p := s.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

// LookupLocal returns the node bound to name in this scope only.
func (s *Scope) LookupLocal(name string) ast.Node {
	return s.symbols[name]
}

// Lookup returns the node bound to name in this scope or the nearest
// ancestor that binds it, nil when no scope on the chain does.
func (s *Scope) Lookup(name string) ast.Node {
	for cur := s; cur != nil; cur = cur.Parent() {
		if node, ok := cur.symbols[name]; ok {
			return node
		}
	}
	return nil
}

// Add binds name to node in this scope.
func (s *Scope) Add(name string, node ast.Node) error {
	if existing, ok := s.symbols[name]; ok {
		return &DuplicateSymbolError{Name: name, Scope: s.id, Existing: existing, Node: node}
	}
	s.symbols[name] = node
	s.order = append(s.order, name)
	return nil
}

// AddFunc binds fn over a name previously bound to its signature and records
// the signature for fn.
func (s *Scope) AddFunc(fn *ast.Func, sig *ast.Signature) error {
	if fn.ID.Name != sig.ID.Name {
		return fmt.Errorf("%w: fun %s, sig %s", ErrSignatureMismatch, fn.ID.Name, sig.ID.Name)
	}
	if _, ok := s.symbols[fn.ID.Name]; !ok {
		s.order = append(s.order, fn.ID.Name)
	}
	s.symbols[fn.ID.Name] = fn
	s.tree.signatures[fn] = sig
	return nil
}

// NewChild opens a block scope nested in s.
func (s *Scope) NewChild() *Scope {
	return s.tree.newScope(s.id, ScopeKindBlock, nil)
}

// Names returns the names bound in this scope in binding order.
func (s *Scope) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of names bound in this scope.
func (s *Scope) Len() int {
	return len(s.order)
}

func (s *Scope) String() string {
	return fmt.Sprintf("Scope{#%d, kind=%s, symbols=%d, depth=%d}",
		s.id, s.kind, len(s.order), s.Depth())
}
