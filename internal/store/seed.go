package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cuongbtq/jobsearch/internal/domain"
)

// Seed is the initial content of every collection
type Seed struct {
	Jobs         []domain.Job         `json:"jobs"`
	Applications []domain.Application `json:"applications"`
	Resumes      []domain.Resume      `json:"resumes"`
	JobAlerts    []domain.JobAlert    `json:"jobAlerts"`
}

// Seeder loads a Seed from some source
type Seeder interface {
	Load(ctx context.Context) (*Seed, error)
}

// Validate checks that ids are positive and unique per collection and that
// at most one resume is active.
func (s *Seed) Validate() error {
	if err := uniqueIDs(domain.EntityJob, s.Jobs); err != nil {
		return err
	}
	if err := uniqueIDs(domain.EntityApplication, s.Applications); err != nil {
		return err
	}
	if err := uniqueIDs(domain.EntityResume, s.Resumes); err != nil {
		return err
	}
	if err := uniqueIDs(domain.EntityJobAlert, s.JobAlerts); err != nil {
		return err
	}

	active := 0
	for _, r := range s.Resumes {
		if r.IsActive {
			active++
		}
	}
	if active > 1 {
		return fmt.Errorf("%d resumes are active, at most one is allowed", active)
	}

	return nil
}

func uniqueIDs[T Record[T]](entity string, items []T) error {
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		id := item.GetID()
		if id <= 0 {
			return fmt.Errorf("%s has non-positive id %d", entity, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate %s id %d", entity, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// FileSeeder reads a JSON seed document from disk
type FileSeeder struct {
	Path string
}

// NewFileSeeder creates a new FileSeeder
func NewFileSeeder(path string) *FileSeeder {
	return &FileSeeder{Path: path}
}

// Load reads and parses the seed file
func (f *FileSeeder) Load(_ context.Context) (*Seed, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &seed, nil
}
