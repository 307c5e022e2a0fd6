package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/store"
	"github.com/cuongbtq/jobsearch/internal/upload"
	"github.com/google/uuid"
)

// ResumeService is the CRUD boundary over the resume collection.
// At most one resume is active; every write that activates a resume
// deactivates the others under the same lock.
type ResumeService struct {
	crud[domain.Resume]
	uploadOpts upload.Options
}

// NewResumeService creates a new ResumeService
func NewResumeService(coll *store.Collection[domain.Resume], opts Options) *ResumeService {
	return &ResumeService{
		crud:       newCrud(coll, opts),
		uploadOpts: opts.Upload,
	}
}

func (s *ResumeService) GetAll(ctx context.Context) ([]domain.Resume, error) {
	return s.getAll(ctx)
}

func (s *ResumeService) GetByID(ctx context.Context, id int) (domain.Resume, error) {
	return s.getByID(ctx, id)
}

// Create stores resume under a fresh id and stamps UploadDate
func (s *ResumeService) Create(ctx context.Context, resume domain.Resume) (domain.Resume, error) {
	resume.UploadDate = s.now().UTC()
	return s.create(ctx, resume, enforceSingleActive)
}

func (s *ResumeService) Update(ctx context.Context, id int, patch domain.ResumePatch) (domain.Resume, error) {
	return s.apply(ctx, id, func(items []domain.Resume, idx int) {
		items[idx] = patch.Apply(items[idx])
		enforceSingleActive(items, idx)
	})
}

func (s *ResumeService) Delete(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, id)
}

// SetActive makes id the only active resume
func (s *ResumeService) SetActive(ctx context.Context, id int) (domain.Resume, error) {
	return s.apply(ctx, id, func(items []domain.Resume, idx int) {
		items[idx].IsActive = true
		enforceSingleActive(items, idx)
	})
}

// Upload runs the upload state machine over files and stores the accepted
// file as the new active resume.
func (s *ResumeService) Upload(ctx context.Context, files []upload.File) (domain.Resume, error) {
	var created domain.Resume

	u := upload.New(s.uploadOpts, func(ctx context.Context, f upload.File) error {
		resume, err := s.Create(ctx, domain.Resume{
			FileName: f.Name,
			FileURL:  fileHandle(f.Name),
			IsActive: true,
		})
		if err != nil {
			return fmt.Errorf("failed to store uploaded resume: %w", err)
		}
		created = resume
		return nil
	})

	if err := u.Drop(files); err != nil {
		s.logger.Warn("Resume upload rejected", slog.String("error", err.Error()))
		return domain.Resume{}, err
	}

	s.logger.Info("Resume upload started", slog.String("file_name", u.File().Name))

	if err := u.Run(ctx); err != nil {
		s.logger.Error("Resume upload failed",
			slog.String("file_name", u.File().Name),
			slog.String("error", err.Error()),
		)
		return domain.Resume{}, err
	}

	return created, nil
}

// enforceSingleActive clears every other active flag when items[idx] is active
func enforceSingleActive(items []domain.Resume, idx int) {
	if !items[idx].IsActive {
		return
	}
	for i := range items {
		if i != idx {
			items[i].IsActive = false
		}
	}
}

func fileHandle(name string) string {
	return path.Join("uploads", uuid.NewString(), path.Base(name))
}
