package dto

import "github.com/cuongbtq/jobsearch/internal/domain"

type CreateResumeRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileURL  string `json:"fileUrl"`
	IsActive bool   `json:"isActive"`
}

func (r CreateResumeRequest) ToDomain() domain.Resume {
	return domain.Resume{
		FileName: r.FileName,
		FileURL:  r.FileURL,
		IsActive: r.IsActive,
	}
}
