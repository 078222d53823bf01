package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"debt-ledger/internal/pkg/apperrors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	createMigrationsTableQuery = `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            filename   TEXT PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`

	migrationAppliedQuery = `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`

	recordMigrationQuery = `INSERT INTO schema_migrations (filename) VALUES ($1)`
)

type migration struct {
	name string
	sql  string
}

func loadMigrations(files fs.FS) ([]migration, error) {
	names, err := fs.Glob(files, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	migrations := make([]migration, 0, len(names))
	for _, path := range names {
		raw, err := fs.ReadFile(files, path)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", path, err)
		}
		text := strings.TrimSpace(string(raw))
		name := strings.TrimPrefix(path, "migrations/")
		if text == "" {
			return nil, fmt.Errorf("empty migration: %s", name)
		}
		migrations = append(migrations, migration{name: name, sql: text})
	}
	return migrations, nil
}

// ApplyMigrations runs every embedded migration not yet recorded in schema_migrations,
// each in its own transaction, in file name order.
func ApplyMigrations(ctx context.Context, db DBPool, logger *slog.Logger) (applied int, err error) {
	defer track("apply_migrations")(&err)
	logCtx := logger.With("component", "Migrator")

	migrations, err := loadMigrations(migrationFiles)
	if err != nil {
		return 0, err
	}

	if _, err = db.Exec(ctx, createMigrationsTableQuery); err != nil {
		return 0, translateDBError(err, logCtx)
	}

	for _, m := range migrations {
		var exists bool
		if err = db.QueryRow(ctx, migrationAppliedQuery, m.name).Scan(&exists); err != nil {
			return applied, translateDBError(err, logCtx)
		}
		if exists {
			continue
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			return applied, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
		}
		if _, err = tx.Exec(ctx, m.sql); err != nil {
			_ = tx.Rollback(ctx)
			return applied, fmt.Errorf("migration %s failed: %w", m.name, translateDBError(err, logCtx))
		}
		if _, err = tx.Exec(ctx, recordMigrationQuery, m.name); err != nil {
			_ = tx.Rollback(ctx)
			return applied, translateDBError(err, logCtx)
		}
		if err = tx.Commit(ctx); err != nil {
			return applied, fmt.Errorf("%w: failed to commit migration %s: %w", apperrors.ErrDatabase, m.name, err)
		}

		logCtx.InfoContext(ctx, "Migration applied", slog.String("file", m.name))
		applied++
	}
	return applied, nil
}

// Schema returns the bootstrap SQL for an empty database.
func Schema() (string, error) {
	migrations, err := loadMigrations(migrationFiles)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, m := range migrations {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "-- %s\n%s", m.name, m.sql)
	}
	b.WriteString("\n")
	return b.String(), nil
}
