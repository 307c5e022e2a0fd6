package store

import (
	"fmt"

	"github.com/cuongbtq/jobsearch/internal/domain"
)

// Store owns the four entity collections. Each collection is only
// mutated through the entity service built on top of it.
type Store struct {
	Jobs         *Collection[domain.Job]
	Applications *Collection[domain.Application]
	Resumes      *Collection[domain.Resume]
	JobAlerts    *Collection[domain.JobAlert]
}

// New creates a Store seeded from seed. A nil seed yields empty collections.
func New(seed *Seed) (*Store, error) {
	if seed == nil {
		seed = &Seed{}
	}

	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	return &Store{
		Jobs: NewCollection(domain.EntityJob, func(j domain.Job, id int) domain.Job {
			j.ID = id
			return j
		}, seed.Jobs),
		Applications: NewCollection(domain.EntityApplication, func(a domain.Application, id int) domain.Application {
			a.ID = id
			return a
		}, seed.Applications),
		Resumes: NewCollection(domain.EntityResume, func(r domain.Resume, id int) domain.Resume {
			r.ID = id
			return r
		}, seed.Resumes),
		JobAlerts: NewCollection(domain.EntityJobAlert, func(a domain.JobAlert, id int) domain.JobAlert {
			a.ID = id
			return a
		}, seed.JobAlerts),
	}, nil
}
