package usecase

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// CachedVideoServiceConfig holds configuration for CachedVideoService.
type CachedVideoServiceConfig struct {
	// CacheTTL is the TTL for cached video metadata. View counts served from
	// the cache may lag by up to this long.
	CacheTTL time.Duration
}

// DefaultCachedVideoServiceConfig returns the default configuration.
func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedVideoService wraps VideoService with caching capabilities.
// It implements the decorator pattern to add caching without modifying the original service.
type cachedVideoService struct {
	delegate VideoService
	videos   repository.VideoRepository
	cache    cache.VideoCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoService creates a new CachedVideoService wrapping the provided VideoService.
// Cache misses are loaded from videos directly so the cached entry does not depend on the viewer.
func NewCachedVideoService(
	delegate VideoService,
	videos repository.VideoRepository,
	videoCache cache.VideoCache,
	cfg CachedVideoServiceConfig,
) VideoService {
	return &cachedVideoService{
		delegate: delegate,
		videos:   videos,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

func (s *cachedVideoService) ListVideos(ctx context.Context, input ListVideosInput) (*model.Page[*model.Video], error) {
	return s.delegate.ListVideos(ctx, input)
}

// PublishVideo delegates to the underlying service.
// No caching for create operations - the video is immediately returned.
func (s *cachedVideoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	return s.delegate.PublishVideo(ctx, input)
}

// GetVideo retrieves a video with caching.
// Uses singleflight to prevent cache stampede on concurrent requests for the same video.
func (s *cachedVideoService) GetVideo(ctx context.Context, videoID, viewerID primitive.ObjectID) (*model.Video, error) {
	// Use singleflight to coalesce concurrent requests
	key := videoID.Hex()
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getVideoWithCache(ctx, videoID)
	})

	// Record singleflight metrics
	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	video := result.(*model.Video)
	if !video.VisibleTo(viewerID) {
		return nil, repository.ErrVideoNotFound
	}
	// Return a copy to avoid handing out the shared result.
	out := *video
	return &out, nil
}

// getVideoWithCache implements the cache-aside pattern.
func (s *cachedVideoService) getVideoWithCache(ctx context.Context, videoID primitive.ObjectID) (*model.Video, error) {
	// Try cache first
	video, err := s.cache.Get(ctx, videoID)
	if err != nil {
		// Log cache error but continue to database
		slog.Warn("cache get failed, falling back to database",
			"video_id", videoID.Hex(),
			"error", err,
		)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
	}

	if video != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeRedis).Inc()
		return video, nil // Cache hit
	}
	if err == nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeRedis).Inc()
	}

	// Cache miss - fetch from database
	video, err = s.videos.GetWithOwner(ctx, videoID)
	if err != nil {
		return nil, err
	}

	// Store in cache (errors logged but not propagated)
	if err := s.cache.Set(ctx, video, s.cacheTTL); err != nil {
		slog.Warn("failed to cache video",
			"video_id", videoID.Hex(),
			"error", err,
		)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
	}

	return video, nil
}

// RecordView does not invalidate the cache; cached view counts may lag.
func (s *cachedVideoService) RecordView(ctx context.Context, videoID, viewerID primitive.ObjectID) error {
	return s.delegate.RecordView(ctx, videoID, viewerID)
}

func (s *cachedVideoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error) {
	video, err := s.delegate.UpdateVideo(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, input.VideoID, "update")
	return video, nil
}

func (s *cachedVideoService) DeleteVideo(ctx context.Context, videoID, userID primitive.ObjectID) error {
	if err := s.delegate.DeleteVideo(ctx, videoID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, videoID, "delete")
	return nil
}

func (s *cachedVideoService) TogglePublish(ctx context.Context, videoID, userID primitive.ObjectID) (*model.Video, error) {
	video, err := s.delegate.TogglePublish(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, videoID, "toggle publish")
	return video, nil
}

// invalidate removes a video from the cache after a successful mutation.
// Failure is non-critical: the entry expires after the TTL.
func (s *cachedVideoService) invalidate(ctx context.Context, videoID primitive.ObjectID, op string) {
	if err := s.cache.Delete(ctx, videoID); err != nil {
		slog.Warn("failed to invalidate video cache",
			"video_id", videoID.Hex(),
			"operation", op,
			"error", err,
		)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
}
