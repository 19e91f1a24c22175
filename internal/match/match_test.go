package match

import (
	"testing"

	"github.com/mhalder/jobsift/internal/model"
)

func TestCleanCompany(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Inc.", "acme"},
		{"Acme Inc", "acme"},
		{"Acme, Inc", "acme"},
		{"Globex LLC", "globex"},
		{"Initech Ltd.", "initech"},
		{"Umbrella Corp", "umbrella"},
		{"Stark Corporation", "stark"},
		{"Wayne Company", "wayne"},
		{"Tyrell Co.", "tyrell"},
		{"  Hooli  ", "hooli"},
		{"ACME", "acme"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanCompany(tc.in); got != tc.want {
			t.Errorf("CleanCompany(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestCleanCompany_StripsOnlyOneSuffix(t *testing.T) {
	// Only the trailing marker goes; an inner one stays.
	if got := CleanCompany("Acme Co Inc"); got != "acme co" {
		t.Fatalf("expected one suffix stripped, got %q", got)
	}
}

func TestBest_MatchesDespiteLegalSuffix(t *testing.T) {
	contacts := []model.Contact{
		{Name: "Dana Reyes", Position: "Recruiter", Company: "Acme"},
		{Name: "Sam Park", Position: "Engineer", Company: "Globex"},
	}

	m := Best("Acme Inc.", contacts, DefaultThreshold)
	if m == nil {
		t.Fatal("expected a match, got nil")
	}
	if m.Name != "Dana Reyes" {
		t.Fatalf("expected Dana Reyes, got %s", m.Name)
	}
	if m.MatchScore < DefaultThreshold {
		t.Fatalf("expected score >= %d, got %d", DefaultThreshold, m.MatchScore)
	}
}

func TestBest_NoMatchBelowThreshold(t *testing.T) {
	contacts := []model.Contact{
		{Name: "Dana Reyes", Company: "Acme"},
	}
	if m := Best("Zyxw Corp", contacts, DefaultThreshold); m != nil {
		t.Fatalf("expected nil for unrelated company, got %+v", m)
	}
}

func TestBest_EmptyInputs(t *testing.T) {
	contacts := []model.Contact{{Name: "Dana Reyes", Company: "Acme"}}
	if m := Best("", contacts, DefaultThreshold); m != nil {
		t.Fatalf("expected nil for empty query, got %+v", m)
	}
	if m := Best("Acme", nil, DefaultThreshold); m != nil {
		t.Fatalf("expected nil for empty contact list, got %+v", m)
	}
}

func TestBest_SkipsContactsWithoutCompany(t *testing.T) {
	contacts := []model.Contact{
		{Name: "No Company"},
		{Name: "Dana Reyes", Company: "Acme"},
	}
	m := Best("Acme", contacts, DefaultThreshold)
	if m == nil || m.Name != "Dana Reyes" {
		t.Fatalf("expected Dana Reyes, got %+v", m)
	}
}

func TestBest_NormalizedQueryIsIdempotent(t *testing.T) {
	contacts := []model.Contact{
		{Name: "Dana Reyes", Company: "Acme Inc."},
	}
	raw := Best("Acme Inc.", contacts, DefaultThreshold)
	normalized := Best(CleanCompany("Acme Inc."), contacts, DefaultThreshold)
	if raw == nil || normalized == nil {
		t.Fatalf("expected matches for both forms, got raw=%v normalized=%v", raw, normalized)
	}
	if raw.Name != normalized.Name || raw.MatchScore != normalized.MatchScore {
		t.Fatalf("expected identical results, got raw=%+v normalized=%+v", raw, normalized)
	}
}

func TestBest_TieKeepsFirstContact(t *testing.T) {
	contacts := []model.Contact{
		{Name: "First", Company: "Acme"},
		{Name: "Second", Company: "Acme"},
	}
	m := Best("Acme", contacts, DefaultThreshold)
	if m == nil || m.Name != "First" {
		t.Fatalf("expected first contact on tie, got %+v", m)
	}
}
