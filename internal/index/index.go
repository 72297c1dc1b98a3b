// Package index stores resolved scope trees in a SQLite database so that
// qualified names can be looked up without re-analyzing the source.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ng-lang/ng/internal/ast"
	"github.com/ng-lang/ng/internal/format"
	"github.com/ng-lang/ng/internal/resolver"
)

// ErrRunNotFound is returned for a run id the index does not hold.
var ErrRunNotFound = errors.New("index: run not found")

// Run describes one saved analysis.
type Run struct {
	ID        string
	Unit      string
	CreatedAt time.Time
	// Nodes counts the syntax tree nodes of the analyzed program.
	Nodes   int
	Scopes  int
	Symbols int
}

// Symbol is a stored binding.
type Symbol struct {
	Name string
	Kind string
	Text string
	// Scope binds the name; ChildScope is the scope the node opens, or
	// resolver.NoScope.
	Scope      resolver.ScopeID
	ChildScope resolver.ScopeID
}

// Index is a SQLite-backed symbol database.
type Index struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the database at path.
func Open(path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return idx, nil
}

func (idx *Index) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		unit TEXT NOT NULL,
		nodes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS scopes (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		parent INTEGER NOT NULL,
		kind TEXT NOT NULL,
		PRIMARY KEY (run_id, id),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS symbols (
		run_id TEXT NOT NULL,
		scope_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		ord INTEGER NOT NULL,
		kind TEXT NOT NULL,
		text TEXT NOT NULL,
		child_scope INTEGER NOT NULL,
		PRIMARY KEY (run_id, scope_id, name),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`
	_, err := idx.db.Exec(schema)
	return err
}

// Close closes the database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Save stores every scope and binding of dict under a new run id.
func (idx *Index) Save(ctx context.Context, unit string, dict *resolver.SymbolDict) (string, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	nodes := 0
	ast.Inspect(dict.Root().Owner(), func(ast.Node) bool {
		nodes++
		return true
	})

	runID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs (id, unit, nodes, created_at) VALUES (?, ?, ?, ?)`,
		runID, unit, nodes, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	scopeStmt, err := tx.PrepareContext(ctx, `INSERT INTO scopes (run_id, id, parent, kind) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer scopeStmt.Close()
	symStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO symbols (run_id, scope_id, name, ord, kind, text, child_scope)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", err
	}
	defer symStmt.Close()

	for _, s := range dict.Scopes() {
		parent := resolver.NoScope
		if p := s.Parent(); p != nil {
			parent = p.ID()
		}
		if _, err := scopeStmt.ExecContext(ctx, runID, s.ID(), parent, s.Kind().String()); err != nil {
			return "", fmt.Errorf("failed to insert scope %d: %w", s.ID(), err)
		}
		for ord, name := range s.Names() {
			node := s.LookupLocal(name)
			child := resolver.NoScope
			if cs, ok := dict.ScopeOf(node); ok {
				child = cs.ID()
			}
			if _, err := symStmt.ExecContext(ctx, runID, s.ID(), name, ord,
				node.Kind().String(), format.Node(node), child); err != nil {
				return "", fmt.Errorf("failed to insert symbol %s: %w", name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// Resolve performs a qualified lookup against a saved run with the same
// rules as resolver.SymbolDict.Lookup. A name that is not bound yields nil.
func (idx *Index) Resolve(ctx context.Context, runID, path string) (*Symbol, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if err := idx.checkRun(ctx, runID); err != nil {
		return nil, err
	}

	var sym *Symbol
	scope := resolver.ScopeID(0)
	for _, segment := range strings.Split(path, resolver.PathSeparator) {
		if scope == resolver.NoScope {
			return nil, &resolver.UnexpectedSymbolError{Path: path, Segment: segment}
		}
		var err error
		sym, err = idx.lookupChain(ctx, runID, scope, segment)
		if err != nil {
			return nil, err
		}
		scope = resolver.NoScope
		if sym != nil {
			scope = sym.ChildScope
		}
	}
	return sym, nil
}

func (idx *Index) checkRun(ctx context.Context, runID string) error {
	var one int
	err := idx.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return err
}

// lookupChain searches scope and then its ancestors for name.
func (idx *Index) lookupChain(ctx context.Context, runID string, scope resolver.ScopeID, name string) (*Symbol, error) {
	for scope != resolver.NoScope {
		sym := Symbol{Name: name, Scope: scope}
		err := idx.db.QueryRowContext(ctx, `
			SELECT kind, text, child_scope FROM symbols
			WHERE run_id = ? AND scope_id = ? AND name = ?
		`, runID, scope, name).Scan(&sym.Kind, &sym.Text, &sym.ChildScope)
		if err == nil {
			return &sym, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to query symbol: %w", err)
		}
		if err := idx.db.QueryRowContext(ctx, `
			SELECT parent FROM scopes WHERE run_id = ? AND id = ?
		`, runID, scope).Scan(&scope); err != nil {
			return nil, fmt.Errorf("failed to query scope: %w", err)
		}
	}
	return nil, nil
}

// Symbols returns the bindings of one scope of a run in binding order.
func (idx *Index) Symbols(ctx context.Context, runID string, scope resolver.ScopeID) ([]Symbol, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	rows, err := idx.db.QueryContext(ctx, `
		SELECT name, kind, text, child_scope FROM symbols
		WHERE run_id = ? AND scope_id = ?
		ORDER BY ord
	`, runID, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	defer rows.Close()

	var out []Symbol
	for rows.Next() {
		sym := Symbol{Scope: scope}
		if err := rows.Scan(&sym.Name, &sym.Kind, &sym.Text, &sym.ChildScope); err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

// Runs lists saved runs, newest first.
func (idx *Index) Runs(ctx context.Context) ([]Run, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	rows, err := idx.db.QueryContext(ctx, `
		SELECT r.id, r.unit, r.nodes, r.created_at,
			(SELECT COUNT(*) FROM scopes s WHERE s.run_id = r.id),
			(SELECT COUNT(*) FROM symbols y WHERE y.run_id = r.id)
		FROM runs r
		ORDER BY r.created_at DESC, r.rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Unit, &r.Nodes, &r.CreatedAt, &r.Scopes, &r.Symbols); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Delete removes a run and everything stored under it.
func (idx *Index) Delete(ctx context.Context, runID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	res, err := idx.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
