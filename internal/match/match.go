// Package match links a posting's company to a known contact by approximate
// string similarity.
package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/mhalder/jobsift/internal/model"
)

// DefaultThreshold is the minimum WRatio score (0-100) for a match.
const DefaultThreshold = 90

// legalSuffixes are trailing legal-entity markers stripped before comparing
// company names. Checked in order; only the first hit is stripped.
var legalSuffixes = []string{
	" inc.", " inc", ", inc",
	" llc", ", llc",
	" ltd.", " ltd",
	" corp.", " corp", " corporation",
	" company", " co.", " co",
}

// CleanCompany normalizes a company name for matching: lowercase, trim, and
// strip one trailing legal-entity suffix.
func CleanCompany(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range legalSuffixes {
		if strings.HasSuffix(cleaned, suffix) {
			cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, suffix))
			break
		}
	}
	return cleaned
}

// Best returns the contact whose company name scores highest against the
// query under weighted-ratio similarity, or nil when the query is empty, the
// list is empty, or no candidate reaches the threshold. Ties keep the
// first-encountered candidate.
func Best(company string, contacts []model.Contact, threshold int) *model.ContactMatch {
	query := CleanCompany(company)
	if query == "" || len(contacts) == 0 {
		return nil
	}

	var best *model.ContactMatch
	for _, contact := range contacts {
		candidate := CleanCompany(contact.Company)
		if candidate == "" {
			continue
		}
		score := fuzzy.WRatio(query, candidate)
		if best == nil || score > best.MatchScore {
			best = &model.ContactMatch{Contact: contact, MatchScore: score}
		}
	}

	if best == nil || best.MatchScore < threshold {
		return nil
	}
	return best
}
