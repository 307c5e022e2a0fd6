package query

import (
	"slices"
	"strings"

	"github.com/cuongbtq/jobsearch/internal/domain"
)

// MatchAlert reports whether job satisfies an active alert.
// Any keyword must occur in the title, description or requirements.
// Locations and industries narrow the match only when the alert lists some.
func MatchAlert(alert domain.JobAlert, job domain.Job) bool {
	if !alert.IsActive {
		return false
	}

	if !slices.ContainsFunc(alert.Keywords, func(kw string) bool {
		return keywordIn(job, kw)
	}) {
		return false
	}

	if len(alert.Locations) > 0 && !slices.ContainsFunc(alert.Locations, func(loc string) bool {
		return containsFold(job.Location, strings.TrimSpace(loc))
	}) {
		return false
	}

	if len(alert.Industries) > 0 && !slices.ContainsFunc(alert.Industries, func(ind string) bool {
		return strings.EqualFold(job.Industry, strings.TrimSpace(ind))
	}) {
		return false
	}

	return true
}

// MatchingAlerts returns the alerts that job satisfies
func MatchingAlerts(alerts []domain.JobAlert, job domain.Job) []domain.JobAlert {
	var out []domain.JobAlert
	for _, alert := range alerts {
		if MatchAlert(alert, job) {
			out = append(out, alert)
		}
	}
	return out
}

func keywordIn(job domain.Job, keyword string) bool {
	kw := strings.TrimSpace(keyword)
	if kw == "" {
		return false
	}
	return containsFold(job.Title, kw) ||
		containsFold(job.Description, kw) ||
		anyContainsFold(job.Requirements, kw)
}
