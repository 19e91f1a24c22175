package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mhalder/jobsift/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_AppendThenReadProcessedIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rows := []model.OutputRow{
		{ID: "11", Title: "Backend Engineer", Company: "Acme", DateAdded: "2026-08-30"},
		{ID: "22", Title: "Platform Engineer", Company: "Globex", DateAdded: "2026-08-30"},
	}
	n, err := s.AppendRows(ctx, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 appended, got %d", n)
	}

	ids, err := s.ReadProcessedIDs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	if !ids.Contains("11") || !ids.Contains("22") {
		t.Fatalf("expected ids 11 and 22, got %v", ids)
	}
	if ids.Contains("33") {
		t.Fatal("unexpected id 33")
	}
}

func TestSQLiteStore_EmptyDatabase(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids, err := s.ReadProcessedIDs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty id set, got %d", len(ids))
	}

	contacts, err := s.ReadContacts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("expected no contacts, got %d", len(contacts))
	}
}

func TestSQLiteStore_AppendZeroRowsIsNoOp(t *testing.T) {
	s := newTestStore(t)

	n, err := s.AppendRows(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 appended, got %d", n)
	}
}

func TestSQLiteStore_Contacts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := model.Contact{Name: "Dana Reyes", Position: "Recruiter", Company: "Acme", URL: "https://linkedin.com/in/dana"}
	if err := s.AddContact(ctx, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contacts, err := s.ReadContacts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	if contacts[0] != c {
		t.Fatalf("expected %+v, got %+v", c, contacts[0])
	}
}

func TestSQLiteStore_RoundTripPreservesRowValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	row := model.OutputRow{
		ID:              "4567890123",
		Title:           "Senior Go Engineer",
		Company:         "Acme Inc.",
		Location:        "Austin, TX",
		URL:             "https://adzuna.com/land/4567890123",
		SalaryMin:       "120000",
		SalaryMax:       "150000",
		SalaryEstimated: "0",
		PostedDate:      "2026-08-12",
		Source:          "adzuna",
		DateAdded:       "2026-08-30",
		FitScore:        "8",
		FitNotes:        "Strong overlap.",
		CompanySummary:  "Payments startup.",
		JobSummary:      "Own billing.",
		Contact:         "Dana Reyes — Recruiter at Acme",
	}
	if _, err := s.AppendRows(ctx, []model.OutputRow{row}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got model.OutputRow
	err := s.db.QueryRowContext(ctx, `SELECT adzuna_id, title, company, location, url,
		salary_min, salary_max, salary_estimated, posted_date, source,
		date_added, fit_score, fit_notes, company_summary, job_summary, contact
		FROM jobs`).Scan(
		&got.ID, &got.Title, &got.Company, &got.Location, &got.URL,
		&got.SalaryMin, &got.SalaryMax, &got.SalaryEstimated, &got.PostedDate, &got.Source,
		&got.DateAdded, &got.FitScore, &got.FitNotes, &got.CompanySummary, &got.JobSummary, &got.Contact,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != row {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", row, got)
	}
}
