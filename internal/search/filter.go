// Package search derives the visible subset of the job catalog from the
// user's filter selections. Filtering is total and synchronous: every call
// scans the full catalog; the data set is small enough that a linear pass is
// always acceptable and simpler than any index.
package search

import (
	"strings"

	"mundolaboral-api/internal/catalog"
)

// Query carries the three independent, optional filter predicates. A zero
// value matches everything.
type Query struct {
	Term    string
	Country string
	JobType string
}

// IsEmpty reports whether no predicate is active.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Term) == "" && q.Country == "" && q.JobType == ""
}

// Filter returns the ordered subsequence of jobs satisfying all active
// predicates. Relative order is preserved; with no active predicate the
// input comes back unchanged.
//
// The country predicate is a substring containment check on the raw location
// text, deliberately permissive because locations are free text like
// "Lima, Perú". An offer without a location or type never matches the
// corresponding predicate.
func Filter(jobs []catalog.JobOffer, q Query) []catalog.JobOffer {
	if q.IsEmpty() {
		return jobs
	}

	term := strings.ToLower(strings.TrimSpace(q.Term))

	result := make([]catalog.JobOffer, 0, len(jobs))
	for _, job := range jobs {
		if term != "" {
			title := strings.ToLower(job.Title)
			description := strings.ToLower(job.Description)
			if !strings.Contains(title, term) && !strings.Contains(description, term) {
				continue
			}
		}

		if q.Country != "" && !strings.Contains(job.Location, q.Country) {
			continue
		}

		if q.JobType != "" && job.Type != q.JobType {
			continue
		}

		result = append(result, job)
	}

	return result
}
