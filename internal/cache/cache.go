// Package cache persists the business list and the latest assessment per
// business in a local sqlite database. It replaces nothing in the scoring
// path: extraction and scoring always recompute from scratch.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/CohensCoding/Succession/internal/business"
	"github.com/CohensCoding/Succession/internal/score"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS businesses (
			id                TEXT PRIMARY KEY,
			name              TEXT NOT NULL,
			industry          TEXT NOT NULL DEFAULT '',
			location          TEXT NOT NULL DEFAULT '',
			website           TEXT NOT NULL DEFAULT '',
			founded_year      INTEGER NOT NULL DEFAULT 0,
			estimated_revenue REAL NOT NULL DEFAULT 0,
			employees         INTEGER NOT NULL DEFAULT 0,
			added_at          DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_businesses_name ON businesses(name);

		CREATE TABLE IF NOT EXISTS assessments (
			business_id      TEXT PRIMARY KEY REFERENCES businesses(id),
			accessible       INTEGER NOT NULL,
			title            TEXT NOT NULL DEFAULT '',
			latest_copyright INTEGER NOT NULL DEFAULT 0,
			has_blog         INTEGER NOT NULL DEFAULT 0,
			has_careers      INTEGER NOT NULL DEFAULT 0,
			last_updated     TEXT NOT NULL DEFAULT '',
			text_length      INTEGER NOT NULL DEFAULT 0,
			error            TEXT NOT NULL DEFAULT '',
			raw_score        INTEGER NOT NULL,
			final_score      REAL NOT NULL,
			category         TEXT NOT NULL,
			factors          TEXT NOT NULL DEFAULT '',
			summary          TEXT NOT NULL DEFAULT '',
			scanned_at       DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assessments_score ON assessments(final_score DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// UpsertBusinesses inserts or refreshes records keyed by their derived ID.
func (s *Store) UpsertBusinesses(records []business.Record) error {
	tx, err := s.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO businesses (id, name, industry, location, website, founded_year, estimated_revenue, employees, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			industry = excluded.industry,
			location = excluded.location,
			founded_year = excluded.founded_year,
			estimated_revenue = excluded.estimated_revenue,
			employees = excluded.employees
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, rec := range records {
		_, err := stmt.Exec(rec.ID(), rec.Name, rec.Industry, rec.Location, rec.Website,
			rec.FoundedYear, rec.EstimatedRevenue, rec.Employees, now)
		if err != nil {
			return fmt.Errorf("upserting business %q: %w", rec.Name, err)
		}
	}

	return tx.Commit()
}

// GetBusinesses returns stored records ordered by name.
func (s *Store) GetBusinesses(opts QueryOpts) ([]business.Record, error) {
	var (
		where []string
		args  []interface{}
	)

	if opts.Search != "" {
		where = append(where, "(name LIKE ? OR industry LIKE ?)")
		term := "%" + opts.Search + "%"
		args = append(args, term, term)
	}

	query := "SELECT name, industry, location, website, founded_year, estimated_revenue, employees FROM businesses"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	limit := opts.Limit
	if limit <= 0 {
		limit = 500
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying businesses: %w", err)
	}
	defer rows.Close()

	var records []business.Record
	for rows.Next() {
		var rec business.Record
		if err := rows.Scan(&rec.Name, &rec.Industry, &rec.Location, &rec.Website,
			&rec.FoundedYear, &rec.EstimatedRevenue, &rec.Employees); err != nil {
			return nil, fmt.Errorf("scanning business: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveAssessment stores the latest scan outcome for one business,
// replacing any earlier one.
func (s *Store) SaveAssessment(a Assessment) error {
	lastUpdated := ""
	if !a.Signals.LastUpdated.IsZero() {
		lastUpdated = a.Signals.LastUpdated.Format(time.RFC3339)
	}
	_, err := s.writeDB.Exec(`
		INSERT INTO assessments (business_id, accessible, title, latest_copyright, has_blog, has_careers,
			last_updated, text_length, error, raw_score, final_score, category, factors, summary, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(business_id) DO UPDATE SET
			accessible = excluded.accessible,
			title = excluded.title,
			latest_copyright = excluded.latest_copyright,
			has_blog = excluded.has_blog,
			has_careers = excluded.has_careers,
			last_updated = excluded.last_updated,
			text_length = excluded.text_length,
			error = excluded.error,
			raw_score = excluded.raw_score,
			final_score = excluded.final_score,
			category = excluded.category,
			factors = excluded.factors,
			summary = excluded.summary,
			scanned_at = excluded.scanned_at
	`, a.Record.ID(), a.Signals.Accessible, a.Signals.Title, a.Signals.LatestCopyright,
		a.Signals.HasBlog, a.Signals.HasCareers, lastUpdated, a.Signals.TextLength, a.Signals.Error,
		a.Result.RawScore, a.Result.Score, string(a.Result.Category),
		strings.Join(a.Result.Factors, "\n"), a.Summary, a.ScannedAt)
	if err != nil {
		return fmt.Errorf("saving assessment for %q: %w", a.Record.Name, err)
	}
	return nil
}

// GetAssessments returns stored assessments joined with their businesses,
// ordered by score descending.
func (s *Store) GetAssessments() ([]Assessment, error) {
	rows, err := s.readDB.Query(`
		SELECT b.name, b.industry, b.location, b.website, b.founded_year, b.estimated_revenue, b.employees,
			a.accessible, a.title, a.latest_copyright, a.has_blog, a.has_careers,
			a.last_updated, a.text_length, a.error, a.raw_score, a.final_score, a.category,
			a.factors, a.summary, a.scanned_at
		FROM assessments a
		JOIN businesses b ON b.id = a.business_id
		ORDER BY a.final_score DESC, b.name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var (
			a           Assessment
			lastUpdated string
			category    string
			factors     string
		)
		if err := rows.Scan(
			&a.Record.Name, &a.Record.Industry, &a.Record.Location, &a.Record.Website,
			&a.Record.FoundedYear, &a.Record.EstimatedRevenue, &a.Record.Employees,
			&a.Signals.Accessible, &a.Signals.Title, &a.Signals.LatestCopyright,
			&a.Signals.HasBlog, &a.Signals.HasCareers, &lastUpdated,
			&a.Signals.TextLength, &a.Signals.Error,
			&a.Result.RawScore, &a.Result.Score, &category, &factors, &a.Summary, &a.ScannedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		if lastUpdated != "" {
			if t, err := time.Parse(time.RFC3339, lastUpdated); err == nil {
				a.Signals.LastUpdated = t
			}
		}
		a.Result.Category = score.Category(category)
		a.Result.Priority = score.PriorityFor(score.Category(category))
		if factors != "" {
			a.Result.Factors = strings.Split(factors, "\n")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats reports row count and database file size.
func (s *Store) Stats(dbPath string) (businesses, assessments int, size int64, err error) {
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM businesses").Scan(&businesses); err != nil {
		return 0, 0, 0, err
	}
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM assessments").Scan(&assessments); err != nil {
		return 0, 0, 0, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, 0, 0, err
	}
	return businesses, assessments, info.Size(), nil
}
