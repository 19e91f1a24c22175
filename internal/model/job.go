package model

import "context"

// Job is the pipeline's canonical representation of one posting, independent
// of the upstream source format.
type Job struct {
	ID              string   // upstream-assigned, dedup key; empty means unusable
	Title           string   // whitespace-trimmed
	Company         string   // may be empty
	Location        string   // may be empty
	URL             string   // upstream redirect link, not validated
	SalaryMin       *float64 // nil when upstream omits it
	SalaryMax       *float64 // nil when upstream omits it
	SalaryEstimated string   // upstream's raw flag ("1" when predicted); echoed, never coerced
	PostedDate      string   // "YYYY-MM-DD", empty when unknown
	Source          string   // upstream provider name
}

// Evaluation is the LLM-derived fit assessment for one job. The zero value is
// the documented degraded default (score 0, empty text fields).
type Evaluation struct {
	ID             string // echoes Job.ID
	FitScore       int
	FitNotes       string // capped at 350 chars
	CompanySummary string // capped at 100 chars
	JobSummary     string // capped at 260 chars
}

// Contact is one entry from the personal contacts list.
type Contact struct {
	Name     string
	Position string
	Company  string
	URL      string
}

// ContactMatch is a contact annotated with its similarity score (0-100)
// against a job's company name.
type ContactMatch struct {
	Contact
	MatchScore int
}

// IDSet holds the identifiers already appended to the record store. Loaded
// once per run, read-only afterwards.
type IDSet map[string]struct{}

// Contains reports membership; the zero (nil) set contains nothing.
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// SearchPage is one page of raw upstream results. Results stays untyped;
// only the normalizer looks inside.
type SearchPage struct {
	Count   int
	Results []map[string]any
}

// PostingSource fetches one page of raw postings from the upstream job API.
type PostingSource interface {
	Search(ctx context.Context, page int) (*SearchPage, error)
}

// RecordStore is the tabular persistence layer holding previously processed
// ids, the contacts list, and the append target for new rows.
type RecordStore interface {
	// ReadProcessedIDs returns the set of ids already appended. A store whose
	// id column does not exist yet returns an empty set, not an error.
	ReadProcessedIDs(ctx context.Context) (IDSet, error)
	// ReadContacts returns the contacts list for fuzzy matching.
	ReadContacts(ctx context.Context) ([]Contact, error)
	// AppendRows appends rows positionally by the store's declared headers and
	// returns the number written. Appending zero rows is a no-op returning 0.
	AppendRows(ctx context.Context, rows []OutputRow) (int, error)
}
