// Package rows merges a canonical record with its optional enrichments into
// one flat output row.
package rows

import (
	"fmt"
	"strconv"

	"github.com/mhalder/jobsift/internal/model"
)

// Build produces one OutputRow for a job. eval and contact may be nil.
// evalEnabled gates the evaluation columns at the run level: when false they
// stay empty even if an Evaluation value is present.
func Build(job model.Job, eval *model.Evaluation, contact *model.ContactMatch, runDate string, evalEnabled bool) model.OutputRow {
	row := model.OutputRow{
		ID:              job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		URL:             job.URL,
		SalaryMin:       formatSalary(job.SalaryMin),
		SalaryMax:       formatSalary(job.SalaryMax),
		SalaryEstimated: job.SalaryEstimated,
		PostedDate:      job.PostedDate,
		Source:          job.Source,
		DateAdded:       runDate,
	}

	if evalEnabled && eval != nil {
		row.FitScore = strconv.Itoa(eval.FitScore)
		row.FitNotes = eval.FitNotes
		row.CompanySummary = eval.CompanySummary
		row.JobSummary = eval.JobSummary
	}

	if contact != nil {
		row.Contact = formatContact(*contact)
	}

	return row
}

func formatSalary(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatContact renders the contact display string. The URL suffix appears
// only when the matched contact has one.
func formatContact(m model.ContactMatch) string {
	s := fmt.Sprintf("%s — %s at %s", m.Name, m.Position, m.Company)
	if m.URL != "" {
		s += fmt.Sprintf(" (%s)", m.URL)
	}
	return s
}
