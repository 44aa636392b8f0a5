package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// ListVideosInput filters the public video listing.
type ListVideosInput struct {
	Query    string
	OwnerID  primitive.ObjectID // zero lists every channel
	ViewerID primitive.ObjectID
	Page     model.PageRequest
}

// PublishVideoInput contains the fields of a publish request.
// VideoPath and ThumbnailPath point to staged local files.
type PublishVideoInput struct {
	OwnerID       primitive.ObjectID
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput edits a video's details. An empty ThumbnailPath keeps the current thumbnail.
type UpdateVideoInput struct {
	VideoID       primitive.ObjectID
	UserID        primitive.ObjectID
	Title         string
	Description   string
	ThumbnailPath string
}

// VideoService defines the interface for video business logic operations.
type VideoService interface {
	ListVideos(ctx context.Context, input ListVideosInput) (*model.Page[*model.Video], error)

	// PublishVideo uploads the video and thumbnail and creates the Video only
	// after both uploads succeed.
	PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error)

	// GetVideo retrieves a video with its owner. Unpublished videos are only
	// visible to their owner.
	GetVideo(ctx context.Context, videoID, viewerID primitive.ObjectID) (*model.Video, error)

	// RecordView increments the view count and records the video in the viewer's history.
	RecordView(ctx context.Context, videoID, viewerID primitive.ObjectID) error

	UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error)

	// DeleteVideo removes the video with its likes, then its hosted assets.
	DeleteVideo(ctx context.Context, videoID, userID primitive.ObjectID) error

	TogglePublish(ctx context.Context, videoID, userID primitive.ObjectID) (*model.Video, error)
}

// VideoServiceConfig holds configuration for VideoService.
type VideoServiceConfig struct {
	// WatchHistoryLimit caps the number of entries kept in a user's history.
	WatchHistoryLimit int
}

// DefaultVideoServiceConfig returns the default configuration.
func DefaultVideoServiceConfig() VideoServiceConfig {
	return VideoServiceConfig{
		WatchHistoryLimit: 100,
	}
}

type videoService struct {
	videos repository.VideoRepository
	likes  repository.LikeRepository
	users  repository.UserRepository
	tx     repository.Transactor
	assets assetJanitor

	watchHistoryLimit int
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(
	videos repository.VideoRepository,
	likes repository.LikeRepository,
	users repository.UserRepository,
	tx repository.Transactor,
	media repository.MediaHost,
	queue repository.CleanupQueue,
	cfg VideoServiceConfig,
) VideoService {
	return &videoService{
		videos:            videos,
		likes:             likes,
		users:             users,
		tx:                tx,
		assets:            assetJanitor{media: media, queue: queue},
		watchHistoryLimit: cfg.WatchHistoryLimit,
	}
}

// ListVideos lists published videos. Owners listing their own channel also see unpublished ones.
func (s *videoService) ListVideos(ctx context.Context, input ListVideosInput) (*model.Page[*model.Video], error) {
	filter := repository.VideoFilter{
		OwnerID:       input.OwnerID,
		PublishedOnly: input.OwnerID.IsZero() || input.OwnerID != input.ViewerID,
		Query:         strings.TrimSpace(input.Query),
	}
	return s.videos.List(ctx, filter, input.Page)
}

func (s *videoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	title, description, err := model.ValidateVideoDetails(input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	if input.VideoPath == "" {
		return nil, ErrVideoFileRequired
	}
	if input.ThumbnailPath == "" {
		return nil, ErrThumbnailRequired
	}

	var file, thumb *repository.Asset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.assets.upload(gctx, input.VideoPath, repository.AssetVideo)
		file = a
		return err
	})
	g.Go(func() error {
		a, err := s.assets.upload(gctx, input.ThumbnailPath, repository.AssetImage)
		thumb = a
		return err
	})
	if err := g.Wait(); err != nil {
		s.assets.discard(ctx, "video publish failed", assetURL(file), assetURL(thumb))
		return nil, err
	}

	video, err := model.NewVideo(input.OwnerID, title, description, file.URL, thumb.URL, file.Duration)
	if err != nil {
		s.assets.discard(ctx, "video publish failed", file.URL, thumb.URL)
		return nil, err
	}

	if err := s.videos.Create(ctx, video); err != nil {
		s.assets.discard(ctx, "video publish failed", file.URL, thumb.URL)
		return nil, fmt.Errorf("create video: %w", err)
	}

	return video, nil
}

func (s *videoService) GetVideo(ctx context.Context, videoID, viewerID primitive.ObjectID) (*model.Video, error) {
	video, err := s.videos.GetWithOwner(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.VisibleTo(viewerID) {
		return nil, repository.ErrVideoNotFound
	}
	return video, nil
}

func (s *videoService) RecordView(ctx context.Context, videoID, viewerID primitive.ObjectID) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if !video.VisibleTo(viewerID) {
		return repository.ErrVideoNotFound
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.videos.IncrementViews(gctx, videoID); err != nil {
			return fmt.Errorf("increment views: %w", err)
		}
		return nil
	})
	if !viewerID.IsZero() {
		g.Go(func() error {
			if err := s.users.AddToWatchHistory(gctx, viewerID, videoID, s.watchHistoryLimit); err != nil {
				return fmt.Errorf("add to watch history: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// UpdateVideo edits title and description. A new thumbnail is uploaded first,
// swapped into the document, and only then is the old one removed.
func (s *videoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error) {
	title, description, err := model.ValidateVideoDetails(input.Title, input.Description)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedVideo(ctx, input.VideoID, input.UserID); err != nil {
		return nil, err
	}

	update := repository.VideoUpdate{Title: title, Description: description, UpdatedAt: time.Now()}
	if input.ThumbnailPath != "" {
		thumb, err := s.assets.upload(ctx, input.ThumbnailPath, repository.AssetImage)
		if err != nil {
			return nil, err
		}
		update.Thumbnail = thumb.URL
	}

	previous, err := s.videos.Update(ctx, input.VideoID, update)
	if err != nil {
		s.assets.discard(ctx, "video update failed", update.Thumbnail)
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update video: %w", err)
	}

	// The thumbnail to remove is the one this update overwrote.
	updated := *previous
	updated.Title = update.Title
	updated.Description = update.Description
	updated.UpdatedAt = update.UpdatedAt
	if update.Thumbnail != "" {
		updated.Thumbnail = update.Thumbnail
		if previous.Thumbnail != update.Thumbnail {
			s.assets.discard(ctx, "thumbnail replaced", previous.Thumbnail)
		}
	}
	return &updated, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, videoID, userID primitive.ObjectID) error {
	if _, err := s.ownedVideo(ctx, videoID, userID); err != nil {
		return err
	}

	var deleted *model.Video
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		v, err := s.videos.Delete(ctx, videoID)
		if err != nil {
			return err
		}
		deleted = v

		target := model.LikeTarget{Kind: model.TargetVideo, ID: videoID}
		if _, err := s.likes.DeleteByTarget(ctx, target); err != nil {
			return fmt.Errorf("delete video likes: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.assets.discard(ctx, "video deleted", deleted.VideoFile, deleted.Thumbnail)
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, videoID, userID primitive.ObjectID) (*model.Video, error) {
	if _, err := s.ownedVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}
	return s.videos.TogglePublished(ctx, videoID)
}

func (s *videoService) ownedVideo(ctx context.Context, videoID, userID primitive.ObjectID) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}
	return video, nil
}
