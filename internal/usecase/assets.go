package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// assetJanitor removes hosted assets that are no longer referenced.
// Removal failures are handed to the cleanup queue so the worker can retry them.
type assetJanitor struct {
	media repository.MediaHost
	queue repository.CleanupQueue
}

// discard deletes the given assets. It never fails the caller.
func (j assetJanitor) discard(ctx context.Context, reason string, urls ...string) {
	// Removal runs after the owning document changed; a cancelled request must not skip it.
	ctx = context.WithoutCancel(ctx)

	var pending []string
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := j.media.Delete(ctx, u); err != nil {
			slog.Warn("failed to delete hosted asset, scheduling cleanup",
				"url", u,
				"reason", reason,
				"error", err,
			)
			pending = append(pending, u)
		}
	}

	if len(pending) == 0 {
		return
	}
	if err := j.schedule(ctx, reason, pending); err != nil {
		slog.Error("failed to schedule asset cleanup",
			"urls", pending,
			"reason", reason,
			"error", err,
		)
	}
}

func (j assetJanitor) schedule(ctx context.Context, reason string, urls []string) error {
	if j.queue == nil {
		return fmt.Errorf("no cleanup queue configured")
	}
	task := repository.AssetCleanupTask{URLs: urls, Reason: reason}
	if err := j.queue.PublishAssetCleanup(ctx, task); err != nil {
		return fmt.Errorf("publish cleanup task: %w", err)
	}
	metrics.CleanupTasksTotal.WithLabelValues(metrics.CleanupPublished).Inc()
	return nil
}

// upload pushes a staged file to the media host, mapping failures to ErrMediaUpload.
func (j assetJanitor) upload(ctx context.Context, localPath string, kind repository.AssetKind) (*repository.Asset, error) {
	asset, err := j.media.Upload(ctx, localPath, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMediaUpload, err)
	}
	return asset, nil
}
