// Package pipeline sequences one ingestion run: fetch, normalize, dedupe,
// enrich, build rows, preview or append.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mhalder/jobsift/internal/adzuna"
	"github.com/mhalder/jobsift/internal/dedup"
	"github.com/mhalder/jobsift/internal/eval"
	"github.com/mhalder/jobsift/internal/match"
	"github.com/mhalder/jobsift/internal/model"
	"github.com/mhalder/jobsift/internal/rows"
)

// Options holds the run-level switches.
type Options struct {
	Pages          int  // successive pages to fetch; stops early on an empty page
	MatchContacts  bool // attach best-matching contacts to rows
	MatchThreshold int  // minimum similarity score for a contact match
}

// Result reports what one run did.
type Result struct {
	Fetched  int // normalized records pulled from the source
	Fresh    int // records surviving deduplication
	Appended int // rows written to the store (0 in preview)
	Rows     []model.OutputRow
}

// Pipeline owns the full ingestion flow for one invocation.
type Pipeline struct {
	source    model.PostingSource
	store     model.RecordStore
	evaluator *eval.Evaluator // nil when evaluation is disabled for the run
	profile   map[string]any
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a pipeline wired with all its dependencies. evaluator may be
// nil to skip fit evaluation.
func New(source model.PostingSource, recordStore model.RecordStore, evaluator *eval.Evaluator, profile map[string]any, opts Options, logger *slog.Logger) *Pipeline {
	if opts.Pages < 1 {
		opts.Pages = 1
	}
	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = match.DefaultThreshold
	}
	return &Pipeline{
		source:    source,
		store:     recordStore,
		evaluator: evaluator,
		profile:   profile,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one ingestion pass. With preview true the rows are built and
// returned but nothing is written.
func (p *Pipeline) Run(ctx context.Context, preview bool) (*Result, error) {
	jobs, err := p.fetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching postings: %w", err)
	}

	processed, err := p.store.ReadProcessedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading processed ids: %w", err)
	}

	fresh := dedup.Fresh(jobs, processed)

	contacts := p.loadContacts(ctx)

	var evals []model.Evaluation
	if p.evaluator != nil {
		evals = p.evaluator.Evaluate(ctx, fresh, p.profile)
	}

	runDate := p.now().Format("2006-01-02")
	outRows := make([]model.OutputRow, 0, len(fresh))
	for i, job := range fresh {
		var ev *model.Evaluation
		if evals != nil {
			ev = &evals[i]
		}
		contact := match.Best(job.Company, contacts, p.opts.MatchThreshold)
		outRows = append(outRows, rows.Build(job, ev, contact, runDate, p.evaluator != nil))
	}

	result := &Result{
		Fetched: len(jobs),
		Fresh:   len(fresh),
		Rows:    outRows,
	}

	if preview {
		p.logger.Info("preview complete",
			"fetched", result.Fetched,
			"fresh", result.Fresh,
		)
		return result, nil
	}

	appended, err := p.store.AppendRows(ctx, outRows)
	if err != nil {
		return nil, fmt.Errorf("appending rows: %w", err)
	}
	result.Appended = appended

	p.logger.Info("run complete",
		"fetched", result.Fetched,
		"fresh", result.Fresh,
		"appended", result.Appended,
	)
	return result, nil
}

// Append writes previously built rows. Used by the review flow after the
// user has narrowed the selection.
func (p *Pipeline) Append(ctx context.Context, outRows []model.OutputRow) (int, error) {
	return p.store.AppendRows(ctx, outRows)
}

// fetchAll pulls successive pages from the source and normalizes them,
// stopping early when a page comes back empty.
func (p *Pipeline) fetchAll(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	for page := 1; page <= p.opts.Pages; page++ {
		sp, err := p.source.Search(ctx, page)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, adzuna.Normalize(sp)...)
		if len(sp.Results) == 0 {
			break
		}
	}
	return jobs, nil
}

// loadContacts reads the contacts list when matching is on. An unavailable
// contacts collaborator degrades to no matching with a warning.
func (p *Pipeline) loadContacts(ctx context.Context) []model.Contact {
	if !p.opts.MatchContacts {
		return nil
	}
	contacts, err := p.store.ReadContacts(ctx)
	if err != nil {
		p.logger.Warn("contacts unavailable, continuing without matching", "error", err)
		return nil
	}
	return contacts
}
