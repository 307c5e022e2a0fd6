package query

import (
	"github.com/cuongbtq/jobsearch/internal/domain"
)

// StatusAll selects every application regardless of status
const StatusAll = "all"

// FilterByStatus returns the applications in status. Empty or "all" keeps everything.
func FilterByStatus(apps []domain.Application, status string) []domain.Application {
	out := make([]domain.Application, 0, len(apps))
	for _, app := range apps {
		if status == "" || status == StatusAll || string(app.Status) == status {
			out = append(out, app)
		}
	}
	return out
}

// StatusCounts is the number of applications per tab
type StatusCounts struct {
	All          int `json:"all"`
	Applied      int `json:"applied"`
	Interviewing int `json:"interviewing"`
	Offered      int `json:"offered"`
	Rejected     int `json:"rejected"`
}

func CountByStatus(apps []domain.Application) StatusCounts {
	counts := StatusCounts{All: len(apps)}
	for _, app := range apps {
		switch app.Status {
		case domain.StatusApplied:
			counts.Applied++
		case domain.StatusInterviewing:
			counts.Interviewing++
		case domain.StatusOffered:
			counts.Offered++
		case domain.StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}
