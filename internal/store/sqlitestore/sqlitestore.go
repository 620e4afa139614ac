// Package sqlitestore keeps todo records in a local SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/store"
)

// Store is one namespace inside a SQLite file. Several namespaces can share a file.
type Store struct {
	db        *sql.DB
	namespace string
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path, namespace string) (*Store, error) {
	if namespace == "" {
		namespace = store.DefaultNamespace
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL lets the CLI read while the TUI writes; busy_timeout avoids "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, namespace: namespace}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			namespace TEXT NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_items_ns_id ON items(namespace, id);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Create(ctx context.Context, it model.Item) (string, error) {
	id := store.NewID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items(namespace, id, title, done, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		s.namespace, id, it.Title, boolToInt(it.Done), nowMs())
	if err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}
	return id, nil
}

func (s *Store) ReadAll(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, done FROM items WHERE namespace = ? ORDER BY seq`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	out := []model.Item{}
	for rows.Next() {
		var it model.Item
		var done int
		if err := rows.Scan(&it.ID, &it.Title, &done); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		it.Done = done != 0
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, id string, it model.Item) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET title = ?, done = ?, updated_at_unixms = ? WHERE namespace = ? AND id = ?`,
		it.Title, boolToInt(it.Done), nowMs(), s.namespace, id)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return requireOneRow(res, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM items WHERE namespace = ? AND id = ?`, s.namespace, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return requireOneRow(res, id)
}

func requireOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nowMs() int64 { return time.Now().UTC().UnixMilli() }

