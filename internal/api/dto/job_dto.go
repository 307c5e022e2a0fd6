package dto

import (
	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/query"
)

type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required"`
	Company      string   `json:"company" binding:"required"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Industry     string   `json:"industry"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

func (r CreateJobRequest) ToDomain() domain.Job {
	return domain.Job{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Type:         r.Type,
		Industry:     r.Industry,
		Salary:       r.Salary,
		Description:  r.Description,
		Requirements: r.Requirements,
	}
}

// ListJobsRequest carries the search criteria, ordering and page of GET /jobs
type ListJobsRequest struct {
	query.Criteria
	Sort     string `form:"sort"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type ListJobsResponse struct {
	Jobs          []domain.Job `json:"jobs"`
	Total         int          `json:"total"`
	ActiveFilters int          `json:"active_filters"`
	NextCursor    string       `json:"next_cursor,omitempty"`
}
