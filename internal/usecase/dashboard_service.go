package usecase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// DashboardService reports on the caller's own channel.
type DashboardService interface {
	ChannelStats(ctx context.Context, userID primitive.ObjectID) (*model.ChannelStats, error)
	// ChannelVideos lists all of the user's videos, published or not.
	ChannelVideos(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Video], error)
}

type dashboardService struct {
	videos repository.VideoRepository
	subs   repository.SubscriptionRepository
	likes  repository.LikeRepository
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(
	videos repository.VideoRepository,
	subs repository.SubscriptionRepository,
	likes repository.LikeRepository,
) DashboardService {
	return &dashboardService{
		videos: videos,
		subs:   subs,
		likes:  likes,
	}
}

// ChannelStats gathers the counters concurrently; any failure fails the whole report.
func (s *dashboardService) ChannelStats(ctx context.Context, userID primitive.ObjectID) (*model.ChannelStats, error) {
	var stats model.ChannelStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		videos, views, err := s.videos.Stats(gctx, userID)
		if err != nil {
			return fmt.Errorf("video stats: %w", err)
		}
		stats.TotalVideos = videos
		stats.TotalViews = views
		return nil
	})
	g.Go(func() error {
		n, err := s.subs.CountSubscribers(gctx, userID)
		if err != nil {
			return fmt.Errorf("count subscribers: %w", err)
		}
		stats.TotalSubscribers = n
		return nil
	})
	g.Go(func() error {
		n, err := s.likes.CountForOwner(gctx, userID)
		if err != nil {
			return fmt.Errorf("count likes: %w", err)
		}
		stats.TotalLikes = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *dashboardService) ChannelVideos(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Video], error) {
	return s.videos.List(ctx, repository.VideoFilter{OwnerID: userID}, page)
}
