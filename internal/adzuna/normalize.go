package adzuna

import (
	"fmt"
	"strings"

	"github.com/mhalder/jobsift/internal/model"
)

// SourceName identifies Adzuna as the upstream provider on every record.
const SourceName = "adzuna"

// Normalize maps one raw search page into canonical records. Pure function:
// no I/O, never fails. Records without a usable id are dropped; any other
// missing field degrades to its documented default.
func Normalize(page *model.SearchPage) []model.Job {
	if page == nil {
		return nil
	}

	jobs := make([]model.Job, 0, len(page.Results))
	for _, raw := range page.Results {
		id := stringifyID(raw["id"])
		if id == "" {
			continue
		}

		jobs = append(jobs, model.Job{
			ID:              id,
			Title:           strings.TrimSpace(stringField(raw, "title")),
			Company:         displayName(raw["company"]),
			Location:        displayName(raw["location"]),
			URL:             stringField(raw, "redirect_url"),
			SalaryMin:       numberField(raw, "salary_min"),
			SalaryMax:       numberField(raw, "salary_max"),
			SalaryEstimated: rawFlag(raw["salary_is_predicted"]),
			PostedDate:      createdDate(stringField(raw, "created")),
			Source:          SourceName,
		})
	}
	return jobs
}

// stringifyID renders the upstream id as a string key. Adzuna serves ids as
// strings but other deployments have returned JSON numbers; both map to the
// same dedup key.
func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		if id == float64(int64(id)) {
			return fmt.Sprintf("%d", int64(id))
		}
		return fmt.Sprintf("%v", id)
	}
	return ""
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// displayName digs display_name out of a nested sub-object.
func displayName(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := obj["display_name"].(string)
	return name
}

func numberField(raw map[string]any, key string) *float64 {
	if n, ok := raw[key].(float64); ok {
		return &n
	}
	return nil
}

// rawFlag preserves the upstream salary_is_predicted representation, which
// arrives as the string "1"/"0" but has also been observed as a number.
// Downstream only echoes it, so no boolean coercion.
func rawFlag(v any) string {
	switch f := v.(type) {
	case string:
		return f
	case float64:
		return fmt.Sprintf("%d", int64(f))
	case bool:
		if f {
			return "1"
		}
		return "0"
	}
	return ""
}

// createdDate truncates an upstream timestamp like "2025-09-26T07:20:13Z" at
// the first 'T', keeping the date. Absent or malformed input yields "".
func createdDate(created string) string {
	if created == "" {
		return ""
	}
	date, _, _ := strings.Cut(created, "T")
	if !looksLikeDate(date) {
		return ""
	}
	return date
}

func looksLikeDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
