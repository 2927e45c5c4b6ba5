package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) NOT NULL PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migration is a single versioned SQL file.
type Migration struct {
	Version    string
	Statements []string
}

// LoadMigrations reads the migrations for a dialect from <dialect>/*.sql in fsys, sorted by file name.
func LoadMigrations(fsys fs.FS, dialect Dialect) ([]Migration, error) {
	pattern := path.Join("migrations", string(dialect), "*.sql")
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("fs.Glob(%s) > %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations found for dialect %s", dialect)
	}
	sort.Strings(files)

	migrations := make([]Migration, 0, len(files))
	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		migrations = append(migrations, Migration{
			Version:    strings.TrimSuffix(path.Base(file), ".sql"),
			Statements: splitStatements(string(content)),
		})
	}
	return migrations, nil
}

// Migrate applies the pending migrations for the connection's dialect and returns the versions it applied.
// Applied versions are recorded in schema_migrations.
func Migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS) ([]string, error) {
	dialect := DialectOf(db)
	migrations, err := LoadMigrations(fsys, dialect)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	var done []string
	if err := db.SelectContext(ctx, &done, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("select schema_migrations: %w", err)
	}
	appliedSet := make(map[string]bool, len(done))
	for _, v := range done {
		appliedSet[v] = true
	}

	var applied []string
	for _, m := range migrations {
		if appliedSet[m.Version] {
			continue
		}
		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			for _, stmt := range m.Statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("exec migration %s: %w", m.Version, err)
				}
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), m.Version); err != nil {
				return fmt.Errorf("record migration %s: %w", m.Version, err)
			}
			return nil
		}); err != nil {
			return applied, err
		}
		slog.Default().Info("applied migration", "version", m.Version, "dialect", dialect)
		applied = append(applied, m.Version)
	}
	return applied, nil
}

// splitStatements splits a migration file into statements on ";" line endings, dropping "--" comment lines.
func splitStatements(content string) []string {
	var statements []string
	var current strings.Builder
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			statements = append(statements, stmt)
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}
