package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/campuspass/campuspass/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionPurge is the task type for purging expired session records.
	TaskSessionPurge = "session:purge"
)

// SessionPurger deletes expired session audit records.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// NewSessionPurgeTask constructs an Asynq task. The task carries no
// payload; the handler computes the cutoff at execution time.
func NewSessionPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskSessionPurge, nil)
}

// NewSessionPurgeHandler returns the handler for TaskSessionPurge tasks.
func NewSessionPurgeHandler(purger SessionPurger, logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("session_purge")
		purged, err := purger.PurgeExpiredSessions(ctx, time.Now().UTC())
		if err != nil {
			return tracker.End(err)
		}
		if logger != nil {
			logger.Info("purged expired sessions", slog.Int64("count", purged))
		}
		return tracker.End(nil)
	}
}
