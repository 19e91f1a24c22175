package rows

import (
	"testing"

	"github.com/mhalder/jobsift/internal/model"
)

func sampleJob() model.Job {
	min, max := 120000.0, 150000.0
	return model.Job{
		ID:              "4567890123",
		Title:           "Senior Go Engineer",
		Company:         "Acme Inc.",
		Location:        "Austin, TX",
		URL:             "https://adzuna.com/land/4567890123",
		SalaryMin:       &min,
		SalaryMax:       &max,
		SalaryEstimated: "0",
		PostedDate:      "2026-08-12",
		Source:          "adzuna",
	}
}

func TestBuild_AllColumnsPopulated(t *testing.T) {
	ev := &model.Evaluation{
		ID:             "4567890123",
		FitScore:       8,
		FitNotes:       "Strong overlap.",
		CompanySummary: "Payments startup.",
		JobSummary:     "Own billing.",
	}
	contact := &model.ContactMatch{
		Contact:    model.Contact{Name: "Dana Reyes", Position: "Recruiter", Company: "Acme", URL: "https://linkedin.com/in/dana"},
		MatchScore: 95,
	}

	row := Build(sampleJob(), ev, contact, "2026-08-30", true)

	want := map[string]string{
		model.ColID:              "4567890123",
		model.ColTitle:           "Senior Go Engineer",
		model.ColCompany:         "Acme Inc.",
		model.ColLocation:        "Austin, TX",
		model.ColURL:             "https://adzuna.com/land/4567890123",
		model.ColSalaryMin:       "120000",
		model.ColSalaryMax:       "150000",
		model.ColSalaryEstimated: "0",
		model.ColPostedDate:      "2026-08-12",
		model.ColSource:          "adzuna",
		model.ColDateAdded:       "2026-08-30",
		model.ColFitScore:        "8",
		model.ColFitNotes:        "Strong overlap.",
		model.ColCompanySummary:  "Payments startup.",
		model.ColJobSummary:      "Own billing.",
		model.ColContact:         "Dana Reyes — Recruiter at Acme (https://linkedin.com/in/dana)",
	}
	for _, col := range model.Columns {
		if got := row.Value(col); got != want[col] {
			t.Errorf("%s: expected %q, got %q", col, want[col], got)
		}
	}
}

func TestBuild_EvalDisabledLeavesEvaluationColumnsEmpty(t *testing.T) {
	ev := &model.Evaluation{FitScore: 8, FitNotes: "notes"}
	row := Build(sampleJob(), ev, nil, "2026-08-30", false)

	for _, col := range []string{model.ColFitScore, model.ColFitNotes, model.ColCompanySummary, model.ColJobSummary} {
		if got := row.Value(col); got != "" {
			t.Errorf("%s: expected empty when evaluation disabled, got %q", col, got)
		}
	}
}

func TestBuild_NilEnrichments(t *testing.T) {
	row := Build(sampleJob(), nil, nil, "2026-08-30", true)
	if row.FitScore != "" || row.FitNotes != "" {
		t.Errorf("expected empty evaluation columns, got %+v", row)
	}
	if row.Contact != "" {
		t.Errorf("expected empty contact column, got %q", row.Contact)
	}
	if row.Title != "Senior Go Engineer" {
		t.Errorf("expected job fields intact, got %q", row.Title)
	}
}

func TestBuild_ZeroFitScoreStillWritten(t *testing.T) {
	row := Build(sampleJob(), &model.Evaluation{FitScore: 0}, nil, "2026-08-30", true)
	if row.FitScore != "0" {
		t.Fatalf("expected literal 0 when evaluation ran, got %q", row.FitScore)
	}
}

func TestBuild_MissingSalariesEmpty(t *testing.T) {
	job := sampleJob()
	job.SalaryMin = nil
	job.SalaryMax = nil
	row := Build(job, nil, nil, "2026-08-30", false)
	if row.SalaryMin != "" || row.SalaryMax != "" {
		t.Fatalf("expected empty salary columns, got min=%q max=%q", row.SalaryMin, row.SalaryMax)
	}
}

func TestBuild_FractionalSalaryKeepsPrecision(t *testing.T) {
	job := sampleJob()
	v := 98765.5
	job.SalaryMin = &v
	row := Build(job, nil, nil, "2026-08-30", false)
	if row.SalaryMin != "98765.5" {
		t.Fatalf("expected 98765.5, got %q", row.SalaryMin)
	}
}

func TestFormatContact_NoURL(t *testing.T) {
	m := model.ContactMatch{
		Contact:    model.Contact{Name: "Sam Park", Position: "Engineer", Company: "Globex"},
		MatchScore: 92,
	}
	got := formatContact(m)
	if got != "Sam Park — Engineer at Globex" {
		t.Fatalf("unexpected contact string: %q", got)
	}
}

func TestValue_UnknownColumn(t *testing.T) {
	row := Build(sampleJob(), nil, nil, "2026-08-30", false)
	if got := row.Value("Nonexistent"); got != "" {
		t.Fatalf("expected empty for unknown column, got %q", got)
	}
}
