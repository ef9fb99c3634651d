package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/seo-optimizer/geoaudit/models"
)

// ErrNotFound is returned when no report matches the lookup.
var ErrNotFound = errors.New("report not found")

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// Store persists audit reports by URL and numeric id
type Store struct {
	conn    *sql.DB
	dialect dialect
}

// Config contains database configuration
type Config struct {
	Driver string
	DSN    string
}

// DefaultConfig returns a default SQLite configuration
func DefaultConfig() Config {
	return Config{
		Driver: "sqlite",
		DSN:    "audits.db",
	}
}

// New opens the database, checks the connection and applies migrations
func New(ctx context.Context, config Config) (*Store, error) {
	d := dialectSQLite
	dsn := config.DSN
	switch config.Driver {
	case "sqlite":
		if !strings.Contains(dsn, "_pragma") && dsn != ":memory:" {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		}
	case "postgres":
		d = dialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	conn, err := sql.Open(config.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)
	if d == dialectSQLite {
		// One writer at a time.
		conn.SetMaxOpenConns(1)
	}

	s := &Store{conn: conn, dialect: d}
	if err := s.Migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveReport inserts or replaces the report for its URL and sets report.ID
func (s *Store) SaveReport(ctx context.Context, report *models.AuditReport) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := s.rebind(`
		INSERT INTO audit_reports (url, seo_score, ai_score, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			seo_score = excluded.seo_score,
			ai_score = excluded.ai_score,
			data = excluded.data,
			updated_at = excluded.updated_at
		RETURNING id
	`)

	var id int64
	err = s.conn.QueryRowContext(ctx, query,
		report.URL,
		report.SeoScore,
		report.AiScore,
		string(data),
		report.CreatedAt,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	report.ID = id
	return nil
}

// GetByID retrieves a report by its numeric id
func (s *Store) GetByID(ctx context.Context, id int64) (*models.AuditReport, error) {
	row := s.conn.QueryRowContext(ctx, s.rebind("SELECT id, data FROM audit_reports WHERE id = ?"), id)
	return scanReport(row)
}

// GetByURL retrieves the report for a URL
func (s *Store) GetByURL(ctx context.Context, url string) (*models.AuditReport, error) {
	row := s.conn.QueryRowContext(ctx, s.rebind("SELECT id, data FROM audit_reports WHERE url = ?"), url)
	return scanReport(row)
}

// List returns the most recently updated reports first
func (s *Store) List(ctx context.Context, limit, offset int) ([]*models.AuditReport, error) {
	rows, err := s.conn.QueryContext(ctx, s.rebind(`
		SELECT id, data FROM audit_reports
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?
	`), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []*models.AuditReport{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return reports, nil
}

// Delete removes a report by id
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.conn.ExecContext(ctx, s.rebind("DELETE FROM audit_reports WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored reports
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_reports").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row scanner) (*models.AuditReport, error) {
	var (
		id   int64
		data string
	)
	if err := row.Scan(&id, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query report: %w", err)
	}

	var report models.AuditReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	report.ID = id
	return &report, nil
}
