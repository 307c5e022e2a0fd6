package service

import (
	"context"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/store"
)

// JobService is the CRUD boundary over the job collection
type JobService struct {
	crud[domain.Job]
}

// NewJobService creates a new JobService
func NewJobService(coll *store.Collection[domain.Job], opts Options) *JobService {
	return &JobService{crud: newCrud(coll, opts)}
}

func (s *JobService) GetAll(ctx context.Context) ([]domain.Job, error) {
	return s.getAll(ctx)
}

func (s *JobService) GetByID(ctx context.Context, id int) (domain.Job, error) {
	return s.getByID(ctx, id)
}

// Create stores job under a fresh id and stamps PostedDate
func (s *JobService) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	job.PostedDate = s.now().UTC()
	return s.create(ctx, job)
}

func (s *JobService) Update(ctx context.Context, id int, patch domain.JobPatch) (domain.Job, error) {
	return s.update(ctx, id, patch.Apply)
}

func (s *JobService) Delete(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, id)
}
