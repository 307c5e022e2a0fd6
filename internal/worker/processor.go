package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/events"
	"github.com/cuongbtq/jobsearch/internal/query"
	workerdomain "github.com/cuongbtq/jobsearch/internal/worker/domain"
)

// processEvent matches a created or updated job against the active alerts
// and returns the alerts it satisfies.
func (w *Worker) processEvent(ctx context.Context, evt events.Event) ([]domain.JobAlert, error) {
	if evt.Entity != domain.EntityJob || evt.Type == events.Type(domain.EntityJob, events.ActionDeleted) {
		return nil, fmt.Errorf("%w: %s", workerdomain.ErrUnhandledEvent, evt.Type)
	}

	if len(evt.Data) == 0 {
		return nil, fmt.Errorf("%w: %s has no data", workerdomain.ErrInvalidPayload, evt.Type)
	}

	var job domain.Job
	if err := json.Unmarshal(evt.Data, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", workerdomain.ErrInvalidPayload, err)
	}

	if w.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.jobTimeout)
		defer cancel()
	}

	alerts, err := w.alerts.Active(ctx)
	if err != nil {
		return nil, workerdomain.NewRetryableError(fmt.Errorf("failed to load active alerts: %w", err))
	}

	matches := query.MatchingAlerts(alerts, job)
	for _, alert := range matches {
		w.onMatch(ctx, alert, job)
	}

	w.logger.Debug("Job evaluated against alerts",
		slog.Int("job_id", job.ID),
		slog.Int("active_alerts", len(alerts)),
		slog.Int("matches", len(matches)),
	)

	return matches, nil
}
