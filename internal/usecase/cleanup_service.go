package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// CleanupService removes hosted assets scheduled by the API for deferred deletion.
type CleanupService interface {
	// HandleTask deletes every asset in the task. Deletion is idempotent, so a
	// failed task can be retried as a whole.
	HandleTask(ctx context.Context, task repository.AssetCleanupTask) error

	// Run consumes tasks from the queue until ctx is cancelled.
	Run(ctx context.Context) error
}

type cleanupService struct {
	media repository.MediaHost
	queue repository.CleanupQueue
}

// NewCleanupService creates a new CleanupService instance.
func NewCleanupService(media repository.MediaHost, queue repository.CleanupQueue) CleanupService {
	return &cleanupService{
		media: media,
		queue: queue,
	}
}

func (s *cleanupService) HandleTask(ctx context.Context, task repository.AssetCleanupTask) error {
	logger := slog.With(
		"reason", task.Reason,
		"retry_count", task.RetryCount,
	)

	var errs []error
	for _, u := range task.URLs {
		err := s.media.Delete(ctx, u)
		switch {
		case err == nil:
			logger.Info("hosted asset removed", "url", u)
		case errors.Is(err, repository.ErrObjectNotFound):
			// Not ours or already gone; retrying cannot help.
			logger.Warn("skipping unknown asset", "url", u, "error", err)
		default:
			errs = append(errs, fmt.Errorf("delete %s: %w", u, err))
		}
	}

	return errors.Join(errs...)
}

func (s *cleanupService) Run(ctx context.Context) error {
	return s.queue.ConsumeAssetCleanup(ctx, func(task repository.AssetCleanupTask) error {
		return s.HandleTask(ctx, task)
	})
}
