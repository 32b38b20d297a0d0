package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/restora/internal/restaurant"
	"github.com/kalambet/restora/internal/storage"
)

// JobType is the job queue type of notification emails.
const JobType = "notify_email"

// Queue accepts new jobs.
type Queue interface {
	EnqueueJob(job storage.Job) error
}

// JobStore abstracts the job queue operations the worker needs.
type JobStore interface {
	ClaimNextJob(types []string) (*storage.Job, error)
	CompleteJob(id string) error
	FailJob(id string, errMsg string) error
}

// Enqueue validates n and queues it for delivery. It returns the job id.
func Enqueue(q Queue, n restaurant.Notification) (string, error) {
	if err := restaurant.ValidateNotification(n); err != nil {
		return "", err
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("marshalling notification: %w", err)
	}
	job := storage.Job{
		ID:          uuid.New().String(),
		Type:        JobType,
		PayloadJSON: string(payload),
	}
	if err := q.EnqueueJob(job); err != nil {
		return "", fmt.Errorf("enqueueing notification: %w", err)
	}
	return job.ID, nil
}

// Worker delivers queued notification emails.
type Worker struct {
	store  JobStore
	mailer Mailer
	poll   time.Duration
	logger *slog.Logger
}

// NewWorker creates a Worker with the given dependencies.
// If pollInterval is <= 0, it defaults to 500ms.
func NewWorker(store JobStore, mailer Mailer, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &Worker{
		store:  store,
		mailer: mailer,
		poll:   pollInterval,
		logger: slog.Default(),
	}
}

// Run polls for jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		done, err := w.RunOnce(ctx)
		if err != nil {
			w.logger.Error("worker iteration failed", "error", err)
		}
		if done {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.poll):
		}
	}
}

// RunOnce claims and processes a single notification job.
// Returns true if a job was processed (regardless of success/failure).
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	job, err := w.store.ClaimNextJob([]string{JobType})
	if err != nil {
		return false, fmt.Errorf("claiming job: %w", err)
	}
	if job == nil {
		return false, nil
	}

	if err := w.processJob(ctx, job); err != nil {
		w.logger.Warn("job failed", "job_id", job.ID, "attempt", job.Attempts+1, "error", err)
		if failErr := w.store.FailJob(job.ID, err.Error()); failErr != nil {
			w.logger.Error("failed to mark job as failed", "job_id", job.ID, "error", failErr)
		}
		return true, nil
	}

	if err := w.store.CompleteJob(job.ID); err != nil {
		return true, fmt.Errorf("completing job %s: %w", job.ID, err)
	}
	return true, nil
}

func (w *Worker) processJob(ctx context.Context, job *storage.Job) error {
	var n restaurant.Notification
	if err := json.Unmarshal([]byte(job.PayloadJSON), &n); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}

	msg, err := Render(n)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", n.Type, err)
	}

	id, err := w.mailer.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sending %s to %s: %w", n.Type, n.To, err)
	}

	w.logger.Info("notification sent", "job_id", job.ID, "type", n.Type, "message_id", id)
	return nil
}
