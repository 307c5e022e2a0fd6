package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSeeder_Load(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantErr   bool
		errString string
	}{
		{
			name: "valid seed file",
			path: "testdata/seed.json",
		},
		{
			name:      "non-existent file",
			path:      "testdata/nonexistent.json",
			wantErr:   true,
			errString: "failed to read seed file",
		},
		{
			name:      "malformed json",
			path:      "testdata/malformed.json",
			wantErr:   true,
			errString: "failed to parse seed file",
		},
		{
			name:      "unrecognised date",
			path:      "testdata/bad_date.json",
			wantErr:   true,
			errString: "invalid timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := NewFileSeeder(tt.path).Load(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, seed)
				return
			}

			require.NoError(t, err)
			assert.Len(t, seed.Jobs, 6)
			assert.Len(t, seed.Applications, 3)
			assert.Len(t, seed.Resumes, 2)
			assert.Len(t, seed.JobAlerts, 2)

			job := seed.Jobs[0]
			assert.Equal(t, 1, job.ID)
			assert.Equal(t, "Senior Frontend Developer", job.Title)
			assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), job.PostedDate)
			assert.Len(t, job.Requirements, 3)

			assert.Equal(t, domain.StatusInterviewing, seed.Applications[0].Status)
			assert.True(t, seed.Resumes[0].IsActive)
			assert.Equal(t, domain.FrequencyWeekly, seed.JobAlerts[1].Frequency)
		})
	}
}

func TestFileSeeder_LoadDateOnly(t *testing.T) {
	seed, err := NewFileSeeder("testdata/date_only.json").Load(context.Background())
	require.NoError(t, err)

	require.Len(t, seed.Jobs, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), seed.Jobs[0].PostedDate)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC), seed.Jobs[1].PostedDate)
	assert.Equal(t, "Finance Plus", seed.Jobs[0].Company)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), seed.Applications[0].AppliedDate)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), seed.Resumes[0].UploadDate)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), seed.JobAlerts[0].CreatedDate)
	assert.Equal(t, []string{"Analyst"}, seed.JobAlerts[0].Keywords)

	st, err := New(seed)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Jobs.Len())
}

func TestNew(t *testing.T) {
	t.Run("nil seed gives empty store", func(t *testing.T) {
		s, err := New(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Jobs.Len())
		assert.Equal(t, 0, s.Applications.Len())
		assert.Equal(t, 0, s.Resumes.Len())
		assert.Equal(t, 0, s.JobAlerts.Len())
	})

	t.Run("seeded from file", func(t *testing.T) {
		seed, err := NewFileSeeder("testdata/seed.json").Load(context.Background())
		require.NoError(t, err)

		s, err := New(seed)
		require.NoError(t, err)
		assert.Equal(t, 6, s.Jobs.Len())
		assert.Equal(t, domain.EntityJobAlert, s.JobAlerts.Entity())

		app := s.Applications.Insert(domain.Application{JobTitle: "New"})
		assert.Equal(t, 4, app.ID)
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		seed, err := NewFileSeeder("testdata/duplicate_ids.json").Load(context.Background())
		require.NoError(t, err)

		_, err = New(seed)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate job id 1")
	})
}

func TestSeed_Validate(t *testing.T) {
	tests := []struct {
		name      string
		seed      Seed
		errString string
	}{
		{
			name: "valid",
			seed: Seed{Resumes: []domain.Resume{{ID: 1, IsActive: true}, {ID: 2}}},
		},
		{
			name:      "zero id",
			seed:      Seed{Applications: []domain.Application{{ID: 0}}},
			errString: "application has non-positive id 0",
		},
		{
			name:      "two active resumes",
			seed:      Seed{Resumes: []domain.Resume{{ID: 1, IsActive: true}, {ID: 2, IsActive: true}}},
			errString: "2 resumes are active",
		},
		{
			name:      "duplicate alert",
			seed:      Seed{JobAlerts: []domain.JobAlert{{ID: 4}, {ID: 4}}},
			errString: "duplicate job_alert id 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seed.Validate()
			if tt.errString == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errString)
		})
	}
}

type fakeSelector struct {
	failOn string
	posted time.Time
}

func (f *fakeSelector) SelectContext(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
	if f.failOn != "" && strings.Contains(query, f.failOn) {
		return errors.New("connection refused")
	}

	switch d := dest.(type) {
	case *[]jobRow:
		row := jobRow{Requirements: pq.StringArray{"Go", "SQL"}}
		row.ID = 1
		row.Title = "Backend Engineer"
		row.PostedDate = f.posted
		*d = append(*d, row)
	case *[]domain.Application:
		*d = append(*d, domain.Application{ID: 1, Status: domain.StatusApplied, AppliedDate: f.posted})
	case *[]domain.Resume:
		*d = append(*d, domain.Resume{ID: 1, FileName: "cv.pdf", IsActive: true})
	case *[]jobAlertRow:
		row := jobAlertRow{
			Keywords:   pq.StringArray{"golang"},
			Locations:  pq.StringArray{"Remote"},
			Industries: pq.StringArray{},
		}
		row.ID = 1
		row.Frequency = domain.FrequencyDaily
		*d = append(*d, row)
	default:
		return errors.New("unexpected destination")
	}
	return nil
}

func TestPostgresSeeder_Load(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	posted := time.Date(2024, 3, 1, 17, 0, 0, 0, loc)

	t.Run("reads every table", func(t *testing.T) {
		seed, err := NewPostgresSeeder(&fakeSelector{posted: posted}).Load(context.Background())
		require.NoError(t, err)

		require.Len(t, seed.Jobs, 1)
		assert.Equal(t, []string{"Go", "SQL"}, seed.Jobs[0].Requirements)
		assert.Equal(t, time.UTC, seed.Jobs[0].PostedDate.Location())
		assert.True(t, posted.Equal(seed.Jobs[0].PostedDate))

		require.Len(t, seed.Applications, 1)
		assert.Equal(t, time.UTC, seed.Applications[0].AppliedDate.Location())

		require.Len(t, seed.Resumes, 1)
		require.Len(t, seed.JobAlerts, 1)
		assert.Equal(t, []string{"golang"}, seed.JobAlerts[0].Keywords)
		assert.Equal(t, []string{"Remote"}, seed.JobAlerts[0].Locations)
		assert.Empty(t, seed.JobAlerts[0].Industries)

		require.NoError(t, seed.Validate())
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		_, err := NewPostgresSeeder(&fakeSelector{failOn: "FROM resumes"}).Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load resumes")
	})
}
