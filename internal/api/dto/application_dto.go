package dto

import (
	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/query"
)

type CreateApplicationRequest struct {
	JobID    int                      `json:"jobId" binding:"required,gt=0"`
	JobTitle string                   `json:"jobTitle" binding:"required"`
	Company  string                   `json:"company" binding:"required"`
	Location string                   `json:"location"`
	Status   domain.ApplicationStatus `json:"status" binding:"omitempty,oneof=applied interviewing offered rejected"`
	Notes    string                   `json:"notes"`
	NextStep string                   `json:"nextStep"`
}

func (r CreateApplicationRequest) ToDomain() domain.Application {
	return domain.Application{
		JobID:    r.JobID,
		JobTitle: r.JobTitle,
		Company:  r.Company,
		Location: r.Location,
		Status:   r.Status,
		Notes:    r.Notes,
		NextStep: r.NextStep,
	}
}

type ListApplicationsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=all applied interviewing offered rejected"`
}

type ListApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
	Counts       query.StatusCounts   `json:"counts"`
}
