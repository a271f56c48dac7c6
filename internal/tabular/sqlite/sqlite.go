// Package sqlite persists table snapshots in a local SQLite database,
// one row per table key. It is the durable single-machine backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/farooq9092/Sajid-medical-store/internal/tabular"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the snapshot at key. A missing row or a query failure yields
// an empty schema-shaped table; read problems are logged, never surfaced.
func (s *Store) Load(ctx context.Context, key string, schema []string) tabular.Table {
	var content []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM snapshots WHERE key = ?`, key).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return tabular.Empty(schema)
	}
	if err != nil {
		slog.WarnContext(ctx, "Snapshot read failed, treating as empty",
			"key", key, "error", err)
		return tabular.Empty(schema)
	}
	return tabular.DecodeCSV(content, schema)
}

// Save upserts the snapshot at key, recording the change description and
// write time alongside the content.
func (s *Store) Save(ctx context.Context, key string, t tabular.Table, changeDescription string) error {
	content, err := t.EncodeCSV()
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, content, change_description, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   content = excluded.content,
		   change_description = excluded.change_description,
		   updated_at = excluded.updated_at`,
		key, content, changeDescription, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}

var _ tabular.Store = (*Store)(nil)
