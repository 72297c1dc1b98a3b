package resolver

import (
	"errors"
	"fmt"

	"github.com/ng-lang/ng/internal/ast"
)

// ErrSignatureMismatch is returned by AddFunc when the function and the
// signature name different identifiers.
var ErrSignatureMismatch = errors.New("signature does not match function")

// DuplicateSymbolError reports a second binding of a name in one scope.
type DuplicateSymbolError struct {
	Name     string
	Scope    ScopeID
	Existing ast.Node
	Node     ast.Node
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("symbol '%s' is already defined in scope %d as %s",
		e.Name, e.Scope, ast.Label(e.Existing))
}

// UnexpectedSymbolError reports a qualified lookup that continues past a
// segment which did not open a scope.
type UnexpectedSymbolError struct {
	Path    string
	Segment string
}

func (e *UnexpectedSymbolError) Error() string {
	return fmt.Sprintf("unexpected symbol '%s' in path %s: enclosing segment has no scope",
		e.Segment, e.Path)
}
