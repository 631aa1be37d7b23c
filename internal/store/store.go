// Package store projects normalized node tables into SQLite.
//
// The schema mirrors the query surface: one row per AST node with the
// semantic type, flags, spans, and structure counters as plain columns,
// plus typed heritage edges and per-file content hashes for incremental
// indexing.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Querier abstracts *sql.DB and *sql.Tx so store methods work in both contexts.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store wraps a SQLite connection for node table storage.
type Store struct {
	db     *sql.DB
	q      Querier // active querier: db or tx
	dbPath string
}

// cacheDir returns the default cache directory for databases.
func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	dir := filepath.Join(home, ".cache", "semantic-ast-mcp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir cache: %w", err)
	}
	return dir, nil
}

// Open opens or creates a SQLite database for the given project.
func Open(project string) (*Store, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	dbPath := filepath.Join(dir, project+".db")
	return OpenPath(dbPath)
}

// OpenPath opens a SQLite database at the given path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, dbPath: dbPath}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory SQLite database (for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	s := &Store{db: db, dbPath: ":memory:"}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// WithTransaction executes fn within a single SQLite transaction.
// The callback receives a transaction-scoped Store; the receiver's q
// field is never mutated, so concurrent read-only handlers are
// unaffected.
func (s *Store) WithTransaction(fn func(txStore *Store) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txStore := &Store{db: s.db, q: tx, dbPath: s.dbPath}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sql.DB (for advanced queries).
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		root_path TEXT NOT NULL,
		indexed_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS files (
		project TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
		rel_path TEXT NOT NULL,
		language TEXT NOT NULL,
		hash TEXT NOT NULL,
		node_count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (project, rel_path)
	);

	CREATE TABLE IF NOT EXISTS ast_nodes (
		project TEXT NOT NULL,
		file TEXT NOT NULL,
		node_id INTEGER NOT NULL,
		parent_id INTEGER NOT NULL,
		native_type TEXT NOT NULL,
		semantic_type INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		universal_flags INTEGER NOT NULL DEFAULT 0,
		start_byte INTEGER NOT NULL,
		end_byte INTEGER NOT NULL,
		start_line INTEGER NOT NULL,
		start_col INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		end_col INTEGER NOT NULL,
		depth INTEGER NOT NULL,
		sibling_index INTEGER NOT NULL,
		child_count INTEGER NOT NULL,
		descendant_count INTEGER NOT NULL,
		PRIMARY KEY (project, file, node_id)
	);

	CREATE INDEX IF NOT EXISTS idx_ast_nodes_type ON ast_nodes(project, semantic_type);
	CREATE INDEX IF NOT EXISTS idx_ast_nodes_name ON ast_nodes(project, name) WHERE name != '';
	CREATE INDEX IF NOT EXISTS idx_ast_nodes_file ON ast_nodes(project, file);

	CREATE TABLE IF NOT EXISTS ast_edges (
		project TEXT NOT NULL,
		file TEXT NOT NULL,
		source_id INTEGER NOT NULL,
		target_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		PRIMARY KEY (project, file, source_id, target_id, kind)
	);

	CREATE INDEX IF NOT EXISTS idx_ast_edges_kind ON ast_edges(project, kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Now returns the current time in ISO 8601 format.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
