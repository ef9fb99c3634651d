package storage

import (
	"context"
	"fmt"
	"sort"
)

// Migration represents a database migration. SQLite and Postgres differ only
// in their key and timestamp types.
type Migration struct {
	Version  int
	Name     string
	SQLite   string
	Postgres string
}

// migrations holds all database migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_audit_reports_table",
		SQLite: `
			CREATE TABLE IF NOT EXISTS audit_reports (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				url TEXT NOT NULL UNIQUE,
				seo_score INTEGER NOT NULL DEFAULT 0,
				ai_score INTEGER NOT NULL DEFAULT 0,
				data TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_audit_reports_created_at ON audit_reports(created_at);
		`,
		Postgres: `
			CREATE TABLE IF NOT EXISTS audit_reports (
				id BIGSERIAL PRIMARY KEY,
				url TEXT NOT NULL UNIQUE,
				seo_score INTEGER NOT NULL DEFAULT 0,
				ai_score INTEGER NOT NULL DEFAULT 0,
				data TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_audit_reports_created_at ON audit_reports(created_at);
		`,
	},
	{
		Version: 2,
		Name:    "index_audit_report_scores",
		SQLite: `
			CREATE INDEX IF NOT EXISTS idx_audit_reports_scores ON audit_reports(seo_score, ai_score);
		`,
		Postgres: `
			CREATE INDEX IF NOT EXISTS idx_audit_reports_scores ON audit_reports(seo_score, ai_score);
		`,
	},
}

func (m Migration) up(d dialect) string {
	if d == dialectPostgres {
		return m.Postgres
	}
	return m.SQLite
}

// Migrate runs all pending migrations
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := s.currentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	for _, m := range sorted {
		if m.Version <= currentVersion {
			continue
		}
		if err := s.runMigration(ctx, m); err != nil {
			return fmt.Errorf("failed to run migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

func (s *Store) ensureMigrationsTable(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

func (s *Store) currentVersion(ctx context.Context) (int, error) {
	var version int
	err := s.conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (s *Store) runMigration(ctx context.Context, m Migration) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.up(s.dialect)); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		s.rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"),
		m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// MigrationStatus represents the status of a migration
type MigrationStatus struct {
	Version int
	Name    string
	Applied bool
}

// Migrations returns the applied state of every known migration
func (s *Store) Migrations(ctx context.Context) ([]MigrationStatus, error) {
	currentVersion, err := s.currentVersion(ctx)
	if err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		status = append(status, MigrationStatus{
			Version: m.Version,
			Name:    m.Name,
			Applied: m.Version <= currentVersion,
		})
	}
	sort.Slice(status, func(i, j int) bool {
		return status[i].Version < status[j].Version
	})
	return status, nil
}
