// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidtube"

var (
	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - cache_type: redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// StoreOperationsTotal tracks document store operations.
	// Labels:
	//   - operation: find, insert, update, delete, aggregate, count
	//   - collection: users, videos, comments, likes, subscriptions, tweets, playlists
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of document store operations",
		},
		[]string{"operation", "collection"},
	)

	// MediaOperationsTotal tracks media host calls.
	// Labels:
	//   - operation: upload, delete
	//   - kind: video, image
	//   - status: success, error
	MediaOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_operations_total",
			Help:      "Total number of media host operations",
		},
		[]string{"operation", "kind", "status"},
	)

	// ToggleOutcomesTotal tracks like and subscription toggles.
	// Labels:
	//   - relation: video_like, comment_like, tweet_like, subscription
	//   - outcome: added, removed, noop
	ToggleOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggle_outcomes_total",
			Help:      "Total number of relationship toggles by outcome",
		},
		[]string{"relation", "outcome"},
	)

	// CleanupTasksTotal tracks deferred asset cleanup tasks.
	// Labels:
	//   - result: published, completed, retried, dropped
	CleanupTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_tasks_total",
			Help:      "Total number of asset cleanup tasks",
		},
		[]string{"result"},
	)

	// HTTPRequestsTotal tracks served API requests.
	// Labels:
	//   - method: HTTP method
	//   - route: chi route pattern, e.g. /api/v1/videos/{videoId}
	//   - status: response status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache type constants.
const (
	CacheTypeRedis = "redis"
)

// Store operation constants.
const (
	StoreOpFind      = "find"
	StoreOpInsert    = "insert"
	StoreOpUpdate    = "update"
	StoreOpDelete    = "delete"
	StoreOpAggregate = "aggregate"
	StoreOpCount     = "count"
)

// Media operation constants.
const (
	MediaOpUpload = "upload"
	MediaOpDelete = "delete"

	MediaStatusSuccess = "success"
	MediaStatusError   = "error"
)

// Toggle constants.
const (
	RelationVideoLike    = "video_like"
	RelationCommentLike  = "comment_like"
	RelationTweetLike    = "tweet_like"
	RelationSubscription = "subscription"

	ToggleAdded   = "added"
	ToggleRemoved = "removed"
	ToggleNoop    = "noop"
)

// Cleanup task result constants.
const (
	CleanupPublished = "published"
	CleanupCompleted = "completed"
	CleanupRetried   = "retried"
	CleanupDropped   = "dropped"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
