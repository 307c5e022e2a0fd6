package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/jobsearch/internal/events"
	"github.com/cuongbtq/jobsearch/internal/store"
	"github.com/cuongbtq/jobsearch/internal/upload"
)

// Options holds dependencies shared by every entity service
type Options struct {
	Logger    *slog.Logger
	Latency   Latency
	Publisher events.Publisher
	Upload    upload.Options
	Now       func() time.Time
}

// Services bundles the entity services built over one Store
type Services struct {
	Jobs         *JobService
	Applications *ApplicationService
	Resumes      *ResumeService
	JobAlerts    *JobAlertService
}

// New creates every entity service over st
func New(st *store.Store, opts Options) *Services {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Services{
		Jobs:         NewJobService(st.Jobs, opts),
		Applications: NewApplicationService(st.Applications, opts),
		Resumes:      NewResumeService(st.Resumes, opts),
		JobAlerts:    NewJobAlertService(st.JobAlerts, opts),
	}
}

// crud is the uniform CRUD boundary shared by the entity services
type crud[T store.Record[T]] struct {
	coll      *store.Collection[T]
	logger    *slog.Logger
	latency   Latency
	publisher events.Publisher
	now       func() time.Time
	// commitMu orders writes with their events; reads never take it
	commitMu *sync.Mutex
}

func newCrud[T store.Record[T]](coll *store.Collection[T], opts Options) crud[T] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return crud[T]{
		coll:      coll,
		logger:    logger.With(slog.String("entity", coll.Entity())),
		latency:   opts.Latency,
		publisher: publisher,
		now:       now,
		commitMu:  &sync.Mutex{},
	}
}

func (c *crud[T]) getAll(ctx context.Context) ([]T, error) {
	if err := wait(ctx, c.latency.GetAll); err != nil {
		return nil, err
	}

	items := c.coll.All()
	c.logger.Debug("Listed records", slog.Int("count", len(items)))
	return items, nil
}

func (c *crud[T]) getByID(ctx context.Context, id int) (T, error) {
	if err := wait(ctx, c.latency.GetByID); err != nil {
		var zero T
		return zero, err
	}

	item, err := c.coll.Get(id)
	if err != nil {
		c.logger.Debug("Record lookup failed",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		return item, err
	}
	return item, nil
}

func (c *crud[T]) create(ctx context.Context, item T, hooks ...store.MutateFunc[T]) (T, error) {
	if err := wait(ctx, c.latency.Create); err != nil {
		var zero T
		return zero, err
	}

	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	created := c.coll.Insert(item, hooks...)
	c.logger.Info("Record created", slog.Int("id", created.GetID()))
	c.publish(ctx, events.ActionCreated, created.GetID(), created)
	return created, nil
}

func (c *crud[T]) apply(ctx context.Context, id int, fn store.MutateFunc[T]) (T, error) {
	return c.commitUpdate(ctx, id, func() (T, error) {
		return c.coll.Apply(id, fn)
	})
}

func (c *crud[T]) update(ctx context.Context, id int, fn func(T) T) (T, error) {
	return c.commitUpdate(ctx, id, func() (T, error) {
		return c.coll.Update(id, fn)
	})
}

// commitUpdate runs mutate and publishes its result while holding commitMu,
// so updated events leave in the order the collection applied them.
func (c *crud[T]) commitUpdate(ctx context.Context, id int, mutate func() (T, error)) (T, error) {
	if err := wait(ctx, c.latency.Update); err != nil {
		var zero T
		return zero, err
	}

	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	updated, err := mutate()
	if err != nil {
		c.logger.Warn("Record update failed",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		return updated, err
	}

	c.logger.Info("Record updated", slog.Int("id", id))
	c.publish(ctx, events.ActionUpdated, id, updated)
	return updated, nil
}

func (c *crud[T]) delete(ctx context.Context, id int, checks ...func(T) error) (bool, error) {
	if err := wait(ctx, c.latency.Delete); err != nil {
		return false, err
	}

	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	if err := c.coll.Delete(id, checks...); err != nil {
		c.logger.Warn("Record delete failed",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		return false, err
	}

	c.logger.Info("Record deleted", slog.Int("id", id))
	c.publish(ctx, events.ActionDeleted, id, nil)
	return true, nil
}

// publish is best effort; a committed change is never rolled back
func (c *crud[T]) publish(ctx context.Context, action events.Action, id int, data any) {
	evt, err := events.New(c.coll.Entity(), action, id, data, c.now())
	if err == nil {
		err = c.publisher.Publish(ctx, evt)
	}
	if err != nil {
		c.logger.Warn("Failed to publish event",
			slog.String("action", string(action)),
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
	}
}
