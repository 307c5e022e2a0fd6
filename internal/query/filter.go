// Package query narrows and orders snapshots returned by the entity services.
// Every function is pure: inputs are never modified and results are new slices.
package query

import (
	"slices"
	"strings"

	"github.com/cuongbtq/jobsearch/internal/domain"
)

// Criteria is the set of optional job filters. Blank fields impose no constraint.
type Criteria struct {
	Location   string `form:"location" json:"location,omitempty"`
	Industry   string `form:"industry" json:"industry,omitempty"`
	JobType    string `form:"jobType" json:"jobType,omitempty"`
	Experience string `form:"experience" json:"experience,omitempty"`
	Salary     string `form:"salary" json:"salary,omitempty"`
}

// Normalize trims surrounding whitespace from every field
func (c Criteria) Normalize() Criteria {
	return Criteria{
		Location:   strings.TrimSpace(c.Location),
		Industry:   strings.TrimSpace(c.Industry),
		JobType:    strings.TrimSpace(c.JobType),
		Experience: strings.TrimSpace(c.Experience),
		Salary:     strings.TrimSpace(c.Salary),
	}
}

// ActiveCount returns how many criteria actually narrow the result.
// An unknown salary band imposes no constraint and is not counted.
func (c Criteria) ActiveCount() int {
	n := 0
	for _, v := range []string{c.Location, c.Industry, c.JobType, c.Experience} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	if _, ok := LookupBand(strings.TrimSpace(c.Salary)); ok {
		n++
	}
	return n
}

// ApplyFilters returns the jobs satisfying every non-blank criterion, in input order.
// Callers should always pass the full snapshot rather than a previously filtered list.
func ApplyFilters(jobs []domain.Job, criteria Criteria) []domain.Job {
	c := criteria.Normalize()
	band, hasBand := LookupBand(c.Salary)

	out := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if c.Location != "" && !containsFold(job.Location, c.Location) {
			continue
		}
		if c.Industry != "" && !strings.EqualFold(job.Industry, c.Industry) {
			continue
		}
		if c.JobType != "" && !strings.EqualFold(job.Type, c.JobType) {
			continue
		}
		if c.Experience != "" && !anyContainsFold(job.Requirements, c.Experience) {
			continue
		}
		if hasBand && !band.Matches(job.Salary) {
			continue
		}
		out = append(out, job.Clone())
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(values []string, substr string) bool {
	return slices.ContainsFunc(values, func(v string) bool {
		return containsFold(v, substr)
	})
}
