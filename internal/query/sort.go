package query

import (
	"slices"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names an ordering of jobs
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortCompany SortKey = "company"
	SortTitle   SortKey = "title"
)

// DefaultSort is the ordering used when the caller does not pick one
const DefaultSort = SortNewest

// Valid reports whether k is a known ordering
func (k SortKey) Valid() bool {
	switch k {
	case SortNewest, SortOldest, SortCompany, SortTitle:
		return true
	default:
		return false
	}
}

// ApplySort returns a stably sorted copy of jobs. Unknown keys keep input order.
func ApplySort(jobs []domain.Job, key SortKey) []domain.Job {
	out := make([]domain.Job, len(jobs))
	for i, job := range jobs {
		out[i] = job.Clone()
	}

	switch key {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b domain.Job) int {
			return b.PostedDate.Compare(a.PostedDate)
		})
	case SortOldest:
		slices.SortStableFunc(out, func(a, b domain.Job) int {
			return a.PostedDate.Compare(b.PostedDate)
		})
	case SortCompany:
		// Collator keeps internal buffers and is not safe for concurrent use
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b domain.Job) int {
			return col.CompareString(a.Company, b.Company)
		})
	case SortTitle:
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b domain.Job) int {
			return col.CompareString(a.Title, b.Title)
		})
	}
	return out
}
