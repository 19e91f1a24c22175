package model

// Recognized output columns, in canonical order. The record store matches
// these against its own declared header row; a header the row does not
// recognize is written empty.
const (
	ColID              = "Adzuna ID"
	ColTitle           = "Title"
	ColCompany         = "Company"
	ColLocation        = "Location"
	ColURL             = "URL"
	ColSalaryMin       = "Salary Min"
	ColSalaryMax       = "Salary Max"
	ColSalaryEstimated = "Salary Estimated"
	ColPostedDate      = "Posted Date"
	ColSource          = "Source"
	ColDateAdded       = "Date Added"
	ColFitScore        = "Fit Score"
	ColFitNotes        = "Fit Notes"
	ColCompanySummary  = "Company Summary"
	ColJobSummary      = "Job Summary"
	ColContact         = "Contact"
)

// Columns lists every recognized output column.
var Columns = []string{
	ColID,
	ColTitle,
	ColCompany,
	ColLocation,
	ColURL,
	ColSalaryMin,
	ColSalaryMax,
	ColSalaryEstimated,
	ColPostedDate,
	ColSource,
	ColDateAdded,
	ColFitScore,
	ColFitNotes,
	ColCompanySummary,
	ColJobSummary,
	ColContact,
}

// OutputRow is one flat record ready for the store. Every recognized column
// is always present; absent data is an empty string, never a missing key.
type OutputRow struct {
	ID              string
	Title           string
	Company         string
	Location        string
	URL             string
	SalaryMin       string
	SalaryMax       string
	SalaryEstimated string
	PostedDate      string
	Source          string
	DateAdded       string
	FitScore        string
	FitNotes        string
	CompanySummary  string
	JobSummary      string
	Contact         string
}

// Value returns the row's value for the given column name, or "" for a
// column the row does not recognize.
func (r OutputRow) Value(column string) string {
	switch column {
	case ColID:
		return r.ID
	case ColTitle:
		return r.Title
	case ColCompany:
		return r.Company
	case ColLocation:
		return r.Location
	case ColURL:
		return r.URL
	case ColSalaryMin:
		return r.SalaryMin
	case ColSalaryMax:
		return r.SalaryMax
	case ColSalaryEstimated:
		return r.SalaryEstimated
	case ColPostedDate:
		return r.PostedDate
	case ColSource:
		return r.Source
	case ColDateAdded:
		return r.DateAdded
	case ColFitScore:
		return r.FitScore
	case ColFitNotes:
		return r.FitNotes
	case ColCompanySummary:
		return r.CompanySummary
	case ColJobSummary:
		return r.JobSummary
	case ColContact:
		return r.Contact
	}
	return ""
}
