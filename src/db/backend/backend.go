// Package backend picks the record store implementation from the configured
// database URL.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack-server/src/db"
	"fintrack-server/src/db/postgres"
	"fintrack-server/src/db/sqlite"
	"fintrack-server/src/models"
	"fintrack-server/src/service"
)

type Type string

const (
	PostgresBackend Type = "postgres"
	SQLiteBackend   Type = "sqlite"
)

// CleanupFunc releases the resources held by a backend.
type CleanupFunc func()

// Result holds the stores consumed by the services.
type Result struct {
	Type     Type
	Users    service.UserStore
	Expenses service.EntryStore[*models.Expense]
	Incomes  service.EntryStore[*models.Income]
	Cleanup  CleanupFunc
}

// Detect maps a database URL onto a backend type and its connection target.
func Detect(url string) (Type, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return PostgresBackend, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return SQLiteBackend, strings.TrimPrefix(url, "sqlite://"), nil
	case url == ":memory:":
		return SQLiteBackend, url, nil
	default:
		return "", "", fmt.Errorf("unsupported database url %q", url)
	}
}

// Open connects to the backend named by url and prepares its schema.
func Open(ctx context.Context, url string) (*Result, error) {
	kind, target, err := Detect(url)
	if err != nil {
		return nil, err
	}

	switch kind {
	case PostgresBackend:
		if err := db.RunMigrations(target); err != nil {
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		pool, err := db.Connect(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := postgres.New(pool)
		slog.Info("Initialized Postgres backend")
		return &Result{
			Type:     kind,
			Users:    store.Users,
			Expenses: store.Expenses,
			Incomes:  store.Incomes,
			Cleanup:  pool.Close,
		}, nil
	default:
		store, err := sqlite.New(target)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		slog.Info("Initialized SQLite backend", "db_path", target)
		return &Result{
			Type:     kind,
			Users:    store.Users,
			Expenses: store.Expenses,
			Incomes:  store.Incomes,
			Cleanup: func() {
				if err := store.Close(); err != nil {
					slog.Error("Failed to close sqlite", "error", err)
				}
			},
		}, nil
	}
}
