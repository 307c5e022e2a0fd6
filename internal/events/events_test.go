package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	evt, err := New("job", ActionCreated, 4, map[string]string{"title": "Go Developer"}, at)
	require.NoError(t, err)

	assert.Equal(t, "job.created", evt.Type)
	assert.Equal(t, "job", evt.Entity)
	assert.Equal(t, 4, evt.EntityID)
	assert.Equal(t, time.UTC, evt.OccurredAt.Location())
	assert.JSONEq(t, `{"title":"Go Developer"}`, string(evt.Data))

	deleted, err := New("resume", ActionDeleted, 2, nil, at)
	require.NoError(t, err)
	assert.Nil(t, deleted.Data)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"type":"job.updated","entity":"job","entity_id":3}`},
		{name: "malformed", body: `{"type":`, wantErr: true},
		{name: "missing type", body: `{"entity":"job"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := Decode([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "job.updated", evt.Type)
			assert.Equal(t, 3, evt.EntityID)
		})
	}
}

type fakeBroker struct {
	routingKeys  []string
	bodies       [][]byte
	contentTypes []string
	err          error
}

func (f *fakeBroker) PublishWithRetry(_ context.Context, routingKey string, body []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.routingKeys = append(f.routingKeys, routingKey)
	f.bodies = append(f.bodies, body)
	f.contentTypes = append(f.contentTypes, contentType)
	return nil
}

func TestRabbitPublisher_Publish(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("publishes json", func(t *testing.T) {
		broker := &fakeBroker{}
		pub := NewRabbitPublisher(broker, logger)

		evt, err := New("job_alert", ActionUpdated, 9, nil, time.Now())
		require.NoError(t, err)
		require.NoError(t, pub.Publish(context.Background(), evt))

		require.Len(t, broker.bodies, 1)
		assert.Equal(t, "application/json", broker.contentTypes[0])
		assert.Equal(t, "job_alert.updated", broker.routingKeys[0])

		var decoded Event
		require.NoError(t, json.Unmarshal(broker.bodies[0], &decoded))
		assert.Equal(t, "job_alert.updated", decoded.Type)
		assert.Equal(t, 9, decoded.EntityID)
	})

	t.Run("broker failure is wrapped", func(t *testing.T) {
		pub := NewRabbitPublisher(&fakeBroker{err: errors.New("channel closed")}, logger)

		err := pub.Publish(context.Background(), Event{Type: "job.deleted"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish job.deleted event")
	})

	t.Run("nop publisher", func(t *testing.T) {
		assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
	})
}
