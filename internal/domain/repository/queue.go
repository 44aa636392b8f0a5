package repository

import "context"

// AssetCleanupTask asks the worker to remove hosted assets that could not be
// deleted inline.
type AssetCleanupTask struct {
	URLs       []string `json:"urls"`
	Reason     string   `json:"reason"`
	RetryCount int      `json:"retry_count"`
}

// CleanupQueue defines the interface for the deferred asset cleanup queue.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type CleanupQueue interface {
	// PublishAssetCleanup schedules hosted assets for removal.
	// Used by the API server when an inline delete fails.
	PublishAssetCleanup(ctx context.Context, task AssetCleanupTask) error

	// ConsumeAssetCleanup processes cleanup tasks until ctx is cancelled.
	// Used by the worker service.
	ConsumeAssetCleanup(ctx context.Context, handler func(task AssetCleanupTask) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
