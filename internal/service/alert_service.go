package service

import (
	"context"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/store"
)

// JobAlertService is the CRUD boundary over the job alert collection
type JobAlertService struct {
	crud[domain.JobAlert]
}

// NewJobAlertService creates a new JobAlertService
func NewJobAlertService(coll *store.Collection[domain.JobAlert], opts Options) *JobAlertService {
	return &JobAlertService{crud: newCrud(coll, opts)}
}

func (s *JobAlertService) GetAll(ctx context.Context) ([]domain.JobAlert, error) {
	return s.getAll(ctx)
}

func (s *JobAlertService) GetByID(ctx context.Context, id int) (domain.JobAlert, error) {
	return s.getByID(ctx, id)
}

// Create stores alert under a fresh id and stamps CreatedDate.
// An empty frequency defaults to daily.
func (s *JobAlertService) Create(ctx context.Context, alert domain.JobAlert) (domain.JobAlert, error) {
	alert.CreatedDate = s.now().UTC()
	if alert.Frequency == "" {
		alert.Frequency = domain.FrequencyDaily
	}
	return s.create(ctx, alert)
}

func (s *JobAlertService) Update(ctx context.Context, id int, patch domain.JobAlertPatch) (domain.JobAlert, error) {
	return s.update(ctx, id, patch.Apply)
}

func (s *JobAlertService) Delete(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, id)
}

// ToggleActive pauses an active alert or resumes a paused one
func (s *JobAlertService) ToggleActive(ctx context.Context, id int) (domain.JobAlert, error) {
	return s.update(ctx, id, func(alert domain.JobAlert) domain.JobAlert {
		alert.IsActive = !alert.IsActive
		return alert
	})
}

// Active returns the alerts that are not paused
func (s *JobAlertService) Active(ctx context.Context) ([]domain.JobAlert, error) {
	alerts, err := s.getAll(ctx)
	if err != nil {
		return nil, err
	}

	active := alerts[:0]
	for _, alert := range alerts {
		if alert.IsActive {
			active = append(active, alert)
		}
	}
	return active, nil
}
