package dto

import "github.com/cuongbtq/jobsearch/internal/domain"

type CreateJobAlertRequest struct {
	Keywords   []string              `json:"keywords" binding:"required,min=1,dive,required"`
	Locations  []string              `json:"locations"`
	Industries []string              `json:"industries"`
	Frequency  domain.AlertFrequency `json:"frequency" binding:"omitempty,oneof=daily weekly monthly"`
	// new alerts are active unless stated otherwise
	IsActive *bool `json:"isActive"`
}

func (r CreateJobAlertRequest) ToDomain() domain.JobAlert {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return domain.JobAlert{
		Keywords:   r.Keywords,
		Locations:  r.Locations,
		Industries: r.Industries,
		Frequency:  r.Frequency,
		IsActive:   active,
	}
}
