// Package eval asks a language model how well each fresh posting fits the
// candidate profile.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mhalder/jobsift/internal/model"
	"github.com/mhalder/jobsift/internal/ratelimit"
)

// Output caps, applied after parsing so truncation can never produce
// partial JSON.
const (
	maxFitNotes       = 350
	maxCompanySummary = 100
	maxJobSummary     = 260
)

// Evaluator produces one Evaluation per job. Individual failures degrade to
// the zero-value Evaluation; the batch itself never fails.
type Evaluator struct {
	provider Provider
	pacer    *ratelimit.Pacer
	logger   *slog.Logger
}

// New creates an evaluator. pacer spaces consecutive provider calls to stay
// under upstream rate limits.
func New(provider Provider, pacer *ratelimit.Pacer, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		provider: provider,
		pacer:    pacer,
		logger:   logger,
	}
}

// Evaluate returns exactly one Evaluation per input job, in input order.
// profile is the opaque candidate-profile document embedded in each request.
func (e *Evaluator) Evaluate(ctx context.Context, jobs []model.Job, profile map[string]any) []model.Evaluation {
	out := make([]model.Evaluation, 0, len(jobs))
	for _, job := range jobs {
		ev, err := e.evaluateOne(ctx, job, profile)
		if err != nil {
			e.logger.Warn("fit evaluation degraded to defaults",
				"job_id", job.ID,
				"company", job.Company,
				"error", err,
			)
			ev = model.Evaluation{ID: job.ID}
		}
		out = append(out, ev)
	}
	return out
}

// evaluateOne performs one paced provider call and parses the result. Every
// error variant maps to the default Evaluation in the caller.
func (e *Evaluator) evaluateOne(ctx context.Context, job model.Job, profile map[string]any) (model.Evaluation, error) {
	if err := e.pacer.Wait(ctx); err != nil {
		return model.Evaluation{}, fmt.Errorf("pacing wait: %w", err)
	}

	user, err := buildUserPayload(job, profile)
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("build payload: %w", err)
	}

	raw, err := e.provider.Complete(ctx, fitSystemPrompt, user)
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("llm complete: %w", err)
	}

	ev, err := parseEvaluation(raw)
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("parse evaluation: %w", err)
	}
	ev.ID = job.ID
	return ev, nil
}

// buildUserPayload embeds the candidate profile, the job's fields, and an
// explicit output-shape description in one JSON document.
func buildUserPayload(job model.Job, profile map[string]any) (string, error) {
	payload := map[string]any{
		"candidate_profile":    profile,
		"job_under_evaluation": jobFields(job),
		"output_spec": map[string]string{
			"fit_score":       "integer 0-10 (10 = strong potential fit)",
			"fit_notes":       "string <=320 chars; 2-3 sentences explaining rationale",
			"company_summary": "string <=100 chars; brief company + rough size/round if known",
			"job_summary":     "string ~200-250 chars; summarize responsibilities & scope (no titles repeated)",
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func jobFields(job model.Job) map[string]any {
	fields := map[string]any{
		"id":       job.ID,
		"title":    job.Title,
		"company":  job.Company,
		"location": job.Location,
		"url":      job.URL,
		"source":   job.Source,
	}
	if job.SalaryMin != nil {
		fields["salary_min"] = *job.SalaryMin
	}
	if job.SalaryMax != nil {
		fields["salary_max"] = *job.SalaryMax
	}
	if job.PostedDate != "" {
		fields["posted_date"] = job.PostedDate
	}
	return fields
}
