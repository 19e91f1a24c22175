package eval

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mhalder/jobsift/internal/model"
)

// rawEvaluation is the JSON shape the system prompt asks for. fit_score is
// untyped because models return it as a number or a numeric string.
type rawEvaluation struct {
	FitScore       any    `json:"fit_score"`
	FitNotes       string `json:"fit_notes"`
	CompanySummary string `json:"company_summary"`
	JobSummary     string `json:"job_summary"`
}

// parseEvaluation deserializes a model response, tolerating a fenced code
// block wrapper. Caps are applied after parsing.
func parseEvaluation(raw string) (model.Evaluation, error) {
	text := stripFence(raw)

	var re rawEvaluation
	if err := json.Unmarshal([]byte(text), &re); err != nil {
		return model.Evaluation{}, fmt.Errorf("unmarshal evaluation JSON: %w", err)
	}

	return model.Evaluation{
		FitScore:       coerceScore(re.FitScore),
		FitNotes:       truncate(re.FitNotes, maxFitNotes),
		CompanySummary: truncate(re.CompanySummary, maxCompanySummary),
		JobSummary:     truncate(re.JobSummary, maxJobSummary),
	}, nil
}

// stripFence removes a surrounding ```...``` fence and an optional leading
// "json" language tag.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimSpace(strings.Trim(s, "`"))
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = strings.TrimSpace(s[4:])
	}
	return s
}

// coerceScore turns a number or numeric string into an int, defaulting to 0.
func coerceScore(v any) int {
	switch score := v.(type) {
	case float64:
		return int(score)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(score))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// truncate trims whitespace and caps the string at n characters.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
