package service

import (
	"context"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/store"
)

// ApplicationService is the CRUD boundary over the application collection
type ApplicationService struct {
	crud[domain.Application]
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(coll *store.Collection[domain.Application], opts Options) *ApplicationService {
	return &ApplicationService{crud: newCrud(coll, opts)}
}

func (s *ApplicationService) GetAll(ctx context.Context) ([]domain.Application, error) {
	return s.getAll(ctx)
}

func (s *ApplicationService) GetByID(ctx context.Context, id int) (domain.Application, error) {
	return s.getByID(ctx, id)
}

// Create stores app under a fresh id and stamps AppliedDate.
// An empty status defaults to applied.
func (s *ApplicationService) Create(ctx context.Context, app domain.Application) (domain.Application, error) {
	app.AppliedDate = s.now().UTC()
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}
	return s.create(ctx, app)
}

// Apply records an application to job
func (s *ApplicationService) Apply(ctx context.Context, job domain.Job) (domain.Application, error) {
	return s.Create(ctx, domain.NewApplicationFor(job))
}

func (s *ApplicationService) Update(ctx context.Context, id int, patch domain.ApplicationPatch) (domain.Application, error) {
	return s.update(ctx, id, patch.Apply)
}

func (s *ApplicationService) Delete(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, id)
}

// Withdraw deletes an application that has not progressed past applied
func (s *ApplicationService) Withdraw(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, id, func(app domain.Application) error {
		if app.Status != domain.StatusApplied {
			return domain.ErrWithdrawNotAllowed
		}
		return nil
	})
}
