package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mhalder/jobsift/internal/model"
)

// SQLiteStore is a local single-file record store backend. Useful for
// offline runs and tests; holds the same three surfaces as the sheet store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the jobs and contacts tables exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			adzuna_id        TEXT NOT NULL,
			title            TEXT,
			company          TEXT,
			location         TEXT,
			url              TEXT,
			salary_min       TEXT,
			salary_max       TEXT,
			salary_estimated TEXT,
			posted_date      TEXT,
			source           TEXT,
			date_added       TEXT,
			fit_score        TEXT,
			fit_notes        TEXT,
			company_summary  TEXT,
			job_summary      TEXT,
			contact          TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			name     TEXT,
			position TEXT,
			company  TEXT,
			url      TEXT
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// ReadProcessedIDs returns every id already appended to the jobs table.
func (s *SQLiteStore) ReadProcessedIDs(ctx context.Context) (model.IDSet, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT adzuna_id FROM jobs")
	if err != nil {
		return nil, fmt.Errorf("reading processed ids: %w", err)
	}
	defer rows.Close()

	ids := make(model.IDSet)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning processed id: %w", err)
		}
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading processed ids: %w", err)
	}
	return ids, nil
}

// ReadContacts returns the contacts table.
func (s *SQLiteStore) ReadContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, position, company, url FROM contacts")
	if err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.Name, &c.Position, &c.Company, &c.URL); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}
	return contacts, nil
}

// AddContact inserts one contact. Used by tests and local setup.
func (s *SQLiteStore) AddContact(ctx context.Context, c model.Contact) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO contacts (name, position, company, url) VALUES (?, ?, ?, ?)",
		c.Name, c.Position, c.Company, c.URL,
	)
	if err != nil {
		return fmt.Errorf("adding contact: %w", err)
	}
	return nil
}

// AppendRows inserts rows into the jobs table and returns the count.
// Zero rows is a no-op.
func (s *SQLiteStore) AppendRows(ctx context.Context, outRows []model.OutputRow) (int, error) {
	if len(outRows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("appending rows: %w", err)
	}
	defer tx.Rollback()

	const insert = `INSERT INTO jobs (
		adzuna_id, title, company, location, url,
		salary_min, salary_max, salary_estimated, posted_date, source,
		date_added, fit_score, fit_notes, company_summary, job_summary, contact
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, r := range outRows {
		_, err := tx.ExecContext(ctx, insert,
			r.ID, r.Title, r.Company, r.Location, r.URL,
			r.SalaryMin, r.SalaryMax, r.SalaryEstimated, r.PostedDate, r.Source,
			r.DateAdded, r.FitScore, r.FitNotes, r.CompanySummary, r.JobSummary, r.Contact,
		)
		if err != nil {
			return 0, fmt.Errorf("appending row %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("appending rows: %w", err)
	}
	return len(outRows), nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
