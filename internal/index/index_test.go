package index

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ng-lang/ng/internal/frontend"
	"github.com/ng-lang/ng/internal/resolver"
)

func openIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "db", "ng-index.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func saveFixture(t *testing.T, idx *Index) (string, *resolver.SymbolDict) {
	t.Helper()
	unit, err := frontend.AnalyzeFile("../parser/testdata/sample.ng")
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	runID, err := idx.Save(context.Background(), unit.Name, unit.Symbols)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return runID, unit.Symbols
}

func TestResolveMatchesSymbolDict(t *testing.T) {
	idx := openIndex(t)
	runID, dict := saveFixture(t, idx)

	paths := []string{
		"fact", "fact::x", "fact::fact", "get", "get::t", "array::arity",
		"option::Some", "option::None", "first::fn", "greeting", "compose::c",
		"nothing", "fact::nothing",
	}

	for i, path := range paths {
		want, err := dict.Lookup(path)
		if err != nil {
			t.Fatalf("tests[%d] - dict lookup %q failed: %v", i, path, err)
		}
		got, err := idx.Resolve(context.Background(), runID, path)
		if err != nil {
			t.Fatalf("tests[%d] - Resolve(%q) failed: %v", i, path, err)
		}
		if want == nil {
			if got != nil {
				t.Fatalf("tests[%d] - expected no symbol for %q, got=%+v", i, path, got)
			}
			continue
		}
		if got == nil || got.Kind != want.Kind().String() {
			t.Fatalf("tests[%d] - kind wrong for %q. expected=%q, got=%+v", i, path, want.Kind(), got)
		}
	}
}

func TestResolveUnexpectedSymbol(t *testing.T) {
	idx := openIndex(t)
	runID, _ := saveFixture(t, idx)

	tests := []struct {
		path            string
		expectedSegment string
	}{
		{"hello::world", "world"},
		{"fact::x::y", "y"},
		{"greeting::length", "length"},
	}

	for i, tt := range tests {
		_, err := idx.Resolve(context.Background(), runID, tt.path)
		var unexpected *resolver.UnexpectedSymbolError
		if !errors.As(err, &unexpected) {
			t.Fatalf("tests[%d] - expected *UnexpectedSymbolError, got=%v", i, err)
		}
		if unexpected.Segment != tt.expectedSegment {
			t.Fatalf("tests[%d] - segment wrong. expected=%q, got=%q", i, tt.expectedSegment, unexpected.Segment)
		}
	}
}

func TestRunsAndSymbols(t *testing.T) {
	idx := openIndex(t)
	ctx := context.Background()
	first, dict := saveFixture(t, idx)
	second, _ := saveFixture(t, idx)

	runs, err := idx.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("run count wrong. expected=2, got=%d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Fatalf("runs not newest first: %+v", runs)
	}
	if runs[0].Nodes == 0 || runs[0].Nodes != runs[1].Nodes {
		t.Fatalf("node counts wrong: %+v", runs)
	}
	if runs[0].Scopes != dict.Tree().Len() {
		t.Fatalf("scope count wrong. expected=%d, got=%d", dict.Tree().Len(), runs[0].Scopes)
	}

	root, err := idx.Symbols(ctx, first, 0)
	if err != nil {
		t.Fatalf("Symbols failed: %v", err)
	}
	names := dict.Root().Names()
	if len(root) != len(names) {
		t.Fatalf("root symbol count wrong. expected=%d, got=%d", len(names), len(root))
	}
	for i, sym := range root {
		if sym.Name != names[i] {
			t.Fatalf("tests[%d] - order wrong. expected=%q, got=%q", i, names[i], sym.Name)
		}
	}

	if err := idx.Delete(ctx, first); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := idx.Resolve(ctx, first, "fact"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got=%v", err)
	}
	if err := idx.Delete(ctx, first); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound on second delete, got=%v", err)
	}
}
