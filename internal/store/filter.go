package store

import (
	"strings"

	"github.com/melhem/content-hub/internal/domain"
)

// FilterAll disables a criterion, the same sentinel the dashboard dropdowns
// send for "no constraint".
const FilterAll = "ALL"

// CaseFilter combines independent criteria with logical AND. Empty or "ALL"
// values leave that criterion unconstrained.
type CaseFilter struct {
	Status     string
	Category   string
	Tone       string
	SearchText string
}

// FilterCases returns the cases matching every provided criterion, preserving
// input order. SearchText matches case-insensitively against title, doctor
// name and short description. An empty result is an empty slice, never an
// error.
func FilterCases(cases []domain.ClinicalCase, filter CaseFilter) []domain.ClinicalCase {
	search := strings.ToLower(strings.TrimSpace(filter.SearchText))
	out := make([]domain.ClinicalCase, 0)
	for _, c := range cases {
		if !criterionMatches(filter.Status, string(c.Status)) {
			continue
		}
		if !criterionMatches(filter.Category, c.Category) {
			continue
		}
		if !criterionMatches(filter.Tone, string(c.Tone)) {
			continue
		}
		if search != "" && !searchMatches(c, search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func criterionMatches(criterion, value string) bool {
	return criterion == "" || criterion == FilterAll || criterion == value
}

func searchMatches(c domain.ClinicalCase, search string) bool {
	return strings.Contains(strings.ToLower(c.Title), search) ||
		strings.Contains(strings.ToLower(c.DoctorName), search) ||
		strings.Contains(strings.ToLower(c.ShortDescription), search)
}
