package store

import (
	"context"
	"fmt"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/lib/pq"
)

// Selector is the subset of sqlx used to read seed rows
type Selector interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// PostgresSeeder reads the seed collections from PostgreSQL tables
type PostgresSeeder struct {
	db Selector
}

// NewPostgresSeeder creates a new PostgresSeeder
func NewPostgresSeeder(db Selector) *PostgresSeeder {
	return &PostgresSeeder{db: db}
}

type jobRow struct {
	domain.Job
	Requirements pq.StringArray `db:"requirements"`
}

type jobAlertRow struct {
	domain.JobAlert
	Keywords   pq.StringArray `db:"keywords"`
	Locations  pq.StringArray `db:"locations"`
	Industries pq.StringArray `db:"industries"`
}

// Load reads every table ordered by id
func (p *PostgresSeeder) Load(ctx context.Context) (*Seed, error) {
	var seed Seed

	var jobs []jobRow
	query := `
		SELECT
			id, title, company, location, type, industry,
			salary, description, requirements, posted_date
		FROM jobs
		ORDER BY id
	`
	if err := p.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	for _, row := range jobs {
		job := row.Job
		job.Requirements = []string(row.Requirements)
		seed.Jobs = append(seed.Jobs, job)
	}

	query = `
		SELECT
			id, job_id, job_title, company, location,
			applied_date, status, notes, next_step
		FROM applications
		ORDER BY id
	`
	if err := p.db.SelectContext(ctx, &seed.Applications, query); err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	query = `
		SELECT id, file_name, upload_date, file_url, is_active
		FROM resumes
		ORDER BY id
	`
	if err := p.db.SelectContext(ctx, &seed.Resumes, query); err != nil {
		return nil, fmt.Errorf("failed to load resumes: %w", err)
	}

	var alerts []jobAlertRow
	query = `
		SELECT
			id, keywords, locations, industries,
			frequency, created_date, is_active
		FROM job_alerts
		ORDER BY id
	`
	if err := p.db.SelectContext(ctx, &alerts, query); err != nil {
		return nil, fmt.Errorf("failed to load job alerts: %w", err)
	}
	for _, row := range alerts {
		alert := row.JobAlert
		alert.Keywords = []string(row.Keywords)
		alert.Locations = []string(row.Locations)
		alert.Industries = []string(row.Industries)
		seed.JobAlerts = append(seed.JobAlerts, alert)
	}

	normalizeDates(&seed)
	return &seed, nil
}

// normalizeDates converts driver supplied timestamps to UTC so they
// serialize the same way as file seeded ones
func normalizeDates(seed *Seed) {
	for i := range seed.Jobs {
		seed.Jobs[i].PostedDate = seed.Jobs[i].PostedDate.UTC()
	}
	for i := range seed.Applications {
		seed.Applications[i].AppliedDate = seed.Applications[i].AppliedDate.UTC()
	}
	for i := range seed.Resumes {
		seed.Resumes[i].UploadDate = seed.Resumes[i].UploadDate.UTC()
	}
	for i := range seed.JobAlerts {
		seed.JobAlerts[i].CreatedDate = seed.JobAlerts[i].CreatedDate.UTC()
	}
}
