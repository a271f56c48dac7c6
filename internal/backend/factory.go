// Package backend maps configuration to a concrete table store.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/farooq9092/Sajid-medical-store/internal/config"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular/githubfs"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular/gsheet"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular/memory"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular/sqlite"
)

// Type identifies a table store backend.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
	GitHub Type = "github"
	Sheets Type = "sheets"
)

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite, GitHub, Sheets:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources; nil when nothing is held.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   tabular.Store
	Cleanup CleanupFunc
}

// Create builds the table store selected by the configuration.
func Create(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	t := Type(cfg.StoreBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid store backend: %s", cfg.StoreBackend)
	}

	switch t {
	case SQLite:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite table store", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case GitHub:
		store, err := githubfs.New(ctx, cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch)
		if err != nil {
			return nil, fmt.Errorf("initialize github store: %w", err)
		}
		logger.Info("Initialized github table store",
			"owner", cfg.GitHubOwner, "repo", cfg.GitHubRepo, "branch", cfg.GitHubBranch)
		return &Result{Store: store}, nil

	case Sheets:
		store, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets store: %w", err)
		}
		logger.Info("Initialized Google Sheets table store")
		return &Result{Store: store}, nil

	default:
		logger.Info("Initialized in-memory table store")
		return &Result{Store: memory.New()}, nil
	}
}
