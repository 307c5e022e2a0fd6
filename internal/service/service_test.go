package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/events"
	"github.com/cuongbtq/jobsearch/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, evt)
	return nil
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, evt := range r.events {
		out[i] = evt.Type
	}
	return out
}

func newTestServices(t *testing.T, seed *store.Seed) (*Services, *recordingPublisher) {
	t.Helper()

	st, err := store.New(seed)
	require.NoError(t, err)

	pub := &recordingPublisher{}
	return New(st, Options{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Publisher: pub,
		Now:       func() time.Time { return fixedNow },
	}), pub
}

func TestJobService_CreateThenGet(t *testing.T) {
	svc, _ := newTestServices(t, nil)
	ctx := context.Background()

	created, err := svc.Jobs.Create(ctx, domain.Job{
		ID:           77,
		Title:        "Go Developer",
		Company:      "Acme",
		Requirements: []string{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, fixedNow, created.PostedDate)

	got, err := svc.Jobs.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestJobService_SequentialIDs(t *testing.T) {
	svc, _ := newTestServices(t, nil)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.Jobs.Create(ctx, domain.Job{Title: "job"})
		require.NoError(t, err)
	}

	jobs, err := svc.Jobs.GetAll(ctx)
	require.NoError(t, err)

	ids := []int{}
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}

func TestJobService_ConcurrentCreates(t *testing.T) {
	svc, _ := newTestServices(t, nil)
	const n = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	ids := []int{}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job, err := svc.Jobs.Create(context.Background(), domain.Job{})
			assert.NoError(t, err)
			mu.Lock()
			ids = append(ids, job.ID)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Ints(ids)
	for i, id := range ids {
		assert.Equal(t, i+1, id)
	}
}

func TestJobService_EventsFollowCommitOrder(t *testing.T) {
	svc, pub := newTestServices(t, &store.Seed{Jobs: []domain.Job{{ID: 1, Title: "Counter", Salary: "0"}}})
	ctx := context.Background()

	const writers = 40
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Jobs.update(ctx, 1, func(j domain.Job) domain.Job {
				n, _ := strconv.Atoi(j.Salary)
				j.Salary = strconv.Itoa(n + 1)
				return j
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.events, writers)
	for i, evt := range pub.events {
		var job domain.Job
		require.NoError(t, json.Unmarshal(evt.Data, &job))
		assert.Equal(t, strconv.Itoa(i+1), job.Salary, "event %d out of order", i)
	}
}

func TestServices_NotFound(t *testing.T) {
	svc, pub := newTestServices(t, &store.Seed{Jobs: []domain.Job{{ID: 1}}})
	ctx := context.Background()

	_, err := svc.Jobs.GetByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	title := "x"
	_, err = svc.Jobs.Update(ctx, 2, domain.JobPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	ok, err := svc.Jobs.Delete(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.False(t, ok)

	_, err = svc.Applications.GetByID(ctx, 1)
	var notFound *domain.RecordNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.EntityApplication, notFound.Entity)

	_, err = svc.Resumes.SetActive(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = svc.JobAlerts.ToggleActive(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	assert.Empty(t, pub.types())
}

func TestJobService_UpdateChangesOnlySuppliedField(t *testing.T) {
	original := domain.Job{
		ID:           1,
		Title:        "Designer",
		Company:      "Studio",
		Location:     "Berlin",
		Salary:       "$60,000",
		Requirements: []string{"Figma"},
		PostedDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	svc, pub := newTestServices(t, &store.Seed{Jobs: []domain.Job{original}})

	company := "Agency"
	updated, err := svc.Jobs.Update(context.Background(), 1, domain.JobPatch{Company: &company})
	require.NoError(t, err)

	want := original
	want.Company = "Agency"
	assert.Equal(t, want, updated)
	assert.Equal(t, []string{"job.updated"}, pub.types())
}

func TestJobService_Delete(t *testing.T) {
	svc, pub := newTestServices(t, &store.Seed{Jobs: []domain.Job{{ID: 1}, {ID: 2}}})
	ctx := context.Background()

	ok, err := svc.Jobs.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Jobs.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	jobs, err := svc.Jobs.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, []string{"job.deleted"}, pub.types())
}

func TestService_LatencyHonoursContext(t *testing.T) {
	st, err := store.New(nil)
	require.NoError(t, err)

	svc := New(st, Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Latency: Latency{Create: time.Hour, GetAll: time.Hour},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = svc.Jobs.Create(ctx, domain.Job{Title: "never stored"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, st.Jobs.Len())

	_, err = svc.Jobs.GetAll(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestService_LatencyDelaysResult(t *testing.T) {
	st, err := store.New(nil)
	require.NoError(t, err)

	svc := New(st, Options{Latency: Latency{GetAll: 20 * time.Millisecond}})

	start := time.Now()
	_, err = svc.Jobs.GetAll(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestService_PublishFailureDoesNotFailWrite(t *testing.T) {
	svc, pub := newTestServices(t, nil)
	pub.err = errors.New("broker down")

	job, err := svc.Jobs.Create(context.Background(), domain.Job{Title: "kept"})
	require.NoError(t, err)
	assert.Equal(t, 1, job.ID)
}

func TestApplicationService(t *testing.T) {
	seed := &store.Seed{Applications: []domain.Application{
		{ID: 1, Status: domain.StatusApplied},
		{ID: 2, Status: domain.StatusInterviewing},
	}}

	t.Run("apply to job", func(t *testing.T) {
		svc, pub := newTestServices(t, seed)
		job := domain.Job{ID: 9, Title: "Analyst", Company: "Bank", Location: "London"}

		app, err := svc.Applications.Apply(context.Background(), job)
		require.NoError(t, err)

		assert.Equal(t, 3, app.ID)
		assert.Equal(t, 9, app.JobID)
		assert.Equal(t, "Analyst", app.JobTitle)
		assert.Equal(t, domain.StatusApplied, app.Status)
		assert.Equal(t, domain.DefaultNextStep, app.NextStep)
		assert.Equal(t, fixedNow, app.AppliedDate)
		assert.Equal(t, []string{"application.created"}, pub.types())
	})

	t.Run("create defaults status", func(t *testing.T) {
		svc, _ := newTestServices(t, seed)
		app, err := svc.Applications.Create(context.Background(), domain.Application{JobTitle: "x"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApplied, app.Status)
	})

	t.Run("withdraw applied", func(t *testing.T) {
		svc, _ := newTestServices(t, seed)
		ok, err := svc.Applications.Withdraw(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = svc.Applications.GetByID(context.Background(), 1)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("withdraw interviewing is refused", func(t *testing.T) {
		svc, pub := newTestServices(t, seed)
		ok, err := svc.Applications.Withdraw(context.Background(), 2)
		assert.ErrorIs(t, err, domain.ErrWithdrawNotAllowed)
		assert.False(t, ok)

		_, err = svc.Applications.GetByID(context.Background(), 2)
		assert.NoError(t, err)
		assert.Empty(t, pub.types())
	})

	t.Run("update status", func(t *testing.T) {
		svc, _ := newTestServices(t, seed)
		offered := domain.StatusOffered
		app, err := svc.Applications.Update(context.Background(), 2, domain.ApplicationPatch{Status: &offered})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOffered, app.Status)
	})
}

func activeResumeIDs(t *testing.T, svc *Services) []int {
	t.Helper()
	resumes, err := svc.Resumes.GetAll(context.Background())
	require.NoError(t, err)

	ids := []int{}
	for _, r := range resumes {
		if r.IsActive {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func TestResumeService_SingleActive(t *testing.T) {
	seed := func() *store.Seed {
		return &store.Seed{Resumes: []domain.Resume{
			{ID: 1, FileName: "a.pdf", IsActive: true},
			{ID: 2, FileName: "b.pdf"},
			{ID: 3, FileName: "c.pdf"},
		}}
	}

	t.Run("set active", func(t *testing.T) {
		svc, pub := newTestServices(t, seed())

		resume, err := svc.Resumes.SetActive(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, resume.IsActive)
		assert.Equal(t, []int{3}, activeResumeIDs(t, svc))
		assert.Equal(t, []string{"resume.updated"}, pub.types())
	})

	t.Run("create active", func(t *testing.T) {
		svc, _ := newTestServices(t, seed())

		resume, err := svc.Resumes.Create(context.Background(), domain.Resume{FileName: "d.pdf", IsActive: true})
		require.NoError(t, err)
		assert.Equal(t, 4, resume.ID)
		assert.Equal(t, fixedNow, resume.UploadDate)
		assert.Equal(t, []int{4}, activeResumeIDs(t, svc))
	})

	t.Run("create inactive leaves active one", func(t *testing.T) {
		svc, _ := newTestServices(t, seed())

		_, err := svc.Resumes.Create(context.Background(), domain.Resume{FileName: "d.pdf"})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, activeResumeIDs(t, svc))
	})

	t.Run("update to active", func(t *testing.T) {
		svc, _ := newTestServices(t, seed())

		active := true
		_, err := svc.Resumes.Update(context.Background(), 2, domain.ResumePatch{IsActive: &active})
		require.NoError(t, err)
		assert.Equal(t, []int{2}, activeResumeIDs(t, svc))
	})

	t.Run("concurrent activations keep one active", func(t *testing.T) {
		svc, _ := newTestServices(t, seed())

		var wg sync.WaitGroup
		for id := 1; id <= 3; id++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				_, err := svc.Resumes.SetActive(context.Background(), id)
				assert.NoError(t, err)
			}(id)
		}
		wg.Wait()

		assert.Len(t, activeResumeIDs(t, svc), 1)
	})
}

func TestJobAlertService(t *testing.T) {
	seed := &store.Seed{JobAlerts: []domain.JobAlert{
		{ID: 1, Keywords: []string{"go"}, IsActive: true},
		{ID: 2, Keywords: []string{"rust"}, IsActive: false},
	}}

	t.Run("toggle", func(t *testing.T) {
		svc, _ := newTestServices(t, seed)

		alert, err := svc.JobAlerts.ToggleActive(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, alert.IsActive)

		alert, err = svc.JobAlerts.ToggleActive(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, alert.IsActive)
	})

	t.Run("active", func(t *testing.T) {
		svc, _ := newTestServices(t, seed)

		alerts, err := svc.JobAlerts.Active(context.Background())
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, 1, alerts[0].ID)
	})

	t.Run("create defaults", func(t *testing.T) {
		svc, _ := newTestServices(t, seed)

		alert, err := svc.JobAlerts.Create(context.Background(), domain.JobAlert{Keywords: []string{"python"}, IsActive: true})
		require.NoError(t, err)
		assert.Equal(t, 3, alert.ID)
		assert.Equal(t, domain.FrequencyDaily, alert.Frequency)
		assert.Equal(t, fixedNow, alert.CreatedDate)
	})
}
