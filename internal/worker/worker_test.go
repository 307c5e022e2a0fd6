package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/events"
	workerdomain "github.com/cuongbtq/jobsearch/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlerts struct {
	alerts []domain.JobAlert
	err    error
}

func (f *fakeAlerts) Active(ctx context.Context) ([]domain.JobAlert, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.alerts, ctx.Err()
}

type settlement struct {
	tag     uint64
	ack     bool
	requeue bool
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	settled []settlement
}

func (f *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settled = append(f.settled, settlement{tag: tag, ack: true})
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settled = append(f.settled, settlement{tag: tag, requeue: requeue})
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func (f *fakeAcknowledger) byTag() map[uint64]settlement {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uint64]settlement, len(f.settled))
	for _, s := range f.settled {
		out[s.tag] = s
	}
	return out
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
	qos        int
	tag        string
	err        error
}

func (f *fakeConsumer) Qos(prefetchCount int) error {
	f.qos = prefetchCount
	return nil
}

func (f *fakeConsumer) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tag = consumerTag
	return f.deliveries, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var goJob = domain.Job{ID: 7, Title: "Go Developer", Location: "Remote", Industry: "Technology"}

var testAlerts = []domain.JobAlert{
	{ID: 1, Keywords: []string{"go"}, IsActive: true},
	{ID: 2, Keywords: []string{"go"}, Industries: []string{"Finance"}, IsActive: true},
	{ID: 3, Keywords: []string{"developer"}, IsActive: false},
}

func jobEvent(t *testing.T, action events.Action, job domain.Job) events.Event {
	t.Helper()
	evt, err := events.New(domain.EntityJob, action, job.ID, job, time.Now())
	require.NoError(t, err)
	return evt
}

func TestProcessEvent(t *testing.T) {
	w := NewWorker(&Config{Logger: discardLogger(), Alerts: &fakeAlerts{alerts: testAlerts}, JobTimeout: time.Second})

	t.Run("created job matches active alerts", func(t *testing.T) {
		matches, err := w.processEvent(context.Background(), jobEvent(t, events.ActionCreated, goJob))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, 1, matches[0].ID)
	})

	t.Run("updated job is evaluated too", func(t *testing.T) {
		matches, err := w.processEvent(context.Background(), jobEvent(t, events.ActionUpdated, goJob))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("deleted job is not handled", func(t *testing.T) {
		evt, err := events.New(domain.EntityJob, events.ActionDeleted, 7, nil, time.Now())
		require.NoError(t, err)

		_, err = w.processEvent(context.Background(), evt)
		assert.ErrorIs(t, err, workerdomain.ErrUnhandledEvent)
	})

	t.Run("other entities are not handled", func(t *testing.T) {
		evt, err := events.New(domain.EntityResume, events.ActionCreated, 1, domain.Resume{ID: 1}, time.Now())
		require.NoError(t, err)

		_, err = w.processEvent(context.Background(), evt)
		assert.ErrorIs(t, err, workerdomain.ErrUnhandledEvent)
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := w.processEvent(context.Background(), events.Event{Type: "job.created", Entity: domain.EntityJob})
		assert.ErrorIs(t, err, workerdomain.ErrInvalidPayload)
	})

	t.Run("undecodable data", func(t *testing.T) {
		evt := events.Event{Type: "job.created", Entity: domain.EntityJob, Data: json.RawMessage(`"not a job"`)}
		_, err := w.processEvent(context.Background(), evt)
		assert.ErrorIs(t, err, workerdomain.ErrInvalidPayload)
	})
}

func TestProcessEvent_AlertSourceFailureIsRetryable(t *testing.T) {
	w := NewWorker(&Config{Logger: discardLogger(), Alerts: &fakeAlerts{err: errors.New("store unavailable")}})

	_, err := w.processEvent(context.Background(), jobEvent(t, events.ActionCreated, goJob))
	require.Error(t, err)
	assert.True(t, shouldRequeue(err))
}

func TestProcessEvent_OnMatch(t *testing.T) {
	var got []int
	w := NewWorker(&Config{
		Logger: discardLogger(),
		Alerts: &fakeAlerts{alerts: testAlerts},
		OnMatch: func(_ context.Context, alert domain.JobAlert, job domain.Job) {
			got = append(got, alert.ID, job.ID)
		},
	})

	_, err := w.processEvent(context.Background(), jobEvent(t, events.ActionCreated, goJob))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 7}, got)
}

func TestShouldRequeue(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "retryable", err: workerdomain.NewRetryableError(errors.New("timeout")), want: true},
		{name: "wrapped retryable", err: errors.Join(errors.New("ctx"), workerdomain.NewRetryableError(errors.New("x"))), want: true},
		{name: "invalid payload", err: workerdomain.ErrInvalidPayload, want: false},
		{name: "unknown", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRequeue(tt.err))
		})
	}
}

func TestWorker_SettlesDeliveries(t *testing.T) {
	ack := &fakeAcknowledger{}
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery, 4)}

	var mu sync.Mutex
	matched := 0
	w := NewWorker(&Config{
		Logger:      discardLogger(),
		Consumer:    consumer,
		Alerts:      &fakeAlerts{alerts: testAlerts},
		Concurrency: 2,
		JobTimeout:  time.Second,
		OnMatch: func(context.Context, domain.JobAlert, domain.Job) {
			mu.Lock()
			matched++
			mu.Unlock()
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	assert.Equal(t, 2, consumer.qos)
	assert.Contains(t, consumer.tag, "alert-worker-")

	created, err := json.Marshal(jobEvent(t, events.ActionCreated, goJob))
	require.NoError(t, err)
	deleted, err := json.Marshal(events.Event{Type: "job.deleted", Entity: domain.EntityJob, EntityID: 7})
	require.NoError(t, err)
	noData, err := json.Marshal(events.Event{Type: "job.created", Entity: domain.EntityJob, EntityID: 8})
	require.NoError(t, err)

	consumer.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: created}
	consumer.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: deleted}
	consumer.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte("{not json")}
	consumer.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 4, Body: noData}

	require.Eventually(t, func() bool {
		return len(ack.byTag()) == 4
	}, 2*time.Second, 10*time.Millisecond)

	w.Stop()

	settled := ack.byTag()
	assert.True(t, settled[1].ack, "matched job is acked")
	assert.True(t, settled[2].ack, "unhandled event is acked")
	assert.False(t, settled[3].ack, "malformed body is nacked")
	assert.False(t, settled[3].requeue)
	assert.False(t, settled[4].ack, "missing data is nacked")
	assert.False(t, settled[4].requeue)

	mu.Lock()
	assert.Equal(t, 1, matched)
	mu.Unlock()
}

func TestWorker_StartFailsWithoutConsumer(t *testing.T) {
	w := NewWorker(&Config{
		Logger:   discardLogger(),
		Consumer: &fakeConsumer{err: errors.New("channel closed")},
		Alerts:   &fakeAlerts{},
	})

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start consuming")
}

func TestWorker_StopIsIdempotent(t *testing.T) {
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery)}
	w := NewWorker(&Config{Logger: discardLogger(), Consumer: consumer, Alerts: &fakeAlerts{}})

	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()
}
