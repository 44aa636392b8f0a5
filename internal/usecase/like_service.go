package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// LikeService toggles likes on videos, comments, and tweets.
// Each toggle reports whether the target is liked by the user afterwards.
type LikeService interface {
	ToggleVideoLike(ctx context.Context, videoID, userID primitive.ObjectID) (bool, error)
	ToggleCommentLike(ctx context.Context, commentID, userID primitive.ObjectID) (bool, error)
	ToggleTweetLike(ctx context.Context, tweetID, userID primitive.ObjectID) (bool, error)
	LikedVideos(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error)
}

type likeService struct {
	likes    repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	tweets   repository.TweetRepository
}

// NewLikeService creates a new LikeService instance.
func NewLikeService(
	likes repository.LikeRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	tweets repository.TweetRepository,
) LikeService {
	return &likeService{
		likes:    likes,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
	}
}

func (s *likeService) ToggleVideoLike(ctx context.Context, videoID, userID primitive.ObjectID) (bool, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	if !video.VisibleTo(userID) {
		return false, repository.ErrVideoNotFound
	}
	return s.toggle(ctx, model.TargetVideo, videoID, userID, metrics.RelationVideoLike)
}

func (s *likeService) ToggleCommentLike(ctx context.Context, commentID, userID primitive.ObjectID) (bool, error) {
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return false, err
	}
	return s.toggle(ctx, model.TargetComment, commentID, userID, metrics.RelationCommentLike)
}

func (s *likeService) ToggleTweetLike(ctx context.Context, tweetID, userID primitive.ObjectID) (bool, error) {
	if _, err := s.tweets.GetByID(ctx, tweetID); err != nil {
		return false, err
	}
	return s.toggle(ctx, model.TargetTweet, tweetID, userID, metrics.RelationTweetLike)
}

// toggle removes an existing like or creates a new one. A concurrent create that
// loses the race on the unique index leaves the target liked, which is the
// requested end state.
func (s *likeService) toggle(ctx context.Context, kind model.TargetKind, id, userID primitive.ObjectID, relation string) (bool, error) {
	target, err := model.NewLikeTarget(kind, id)
	if err != nil {
		return false, err
	}

	removed, err := s.likes.Delete(ctx, target, userID)
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}
	if removed {
		metrics.ToggleOutcomesTotal.WithLabelValues(relation, metrics.ToggleRemoved).Inc()
		return false, nil
	}

	like, err := model.NewLike(target, userID)
	if err != nil {
		return false, err
	}
	if err := s.likes.Create(ctx, like); err != nil {
		if errors.Is(err, repository.ErrDuplicateLike) {
			metrics.ToggleOutcomesTotal.WithLabelValues(relation, metrics.ToggleNoop).Inc()
			return true, nil
		}
		return false, fmt.Errorf("create like: %w", err)
	}
	metrics.ToggleOutcomesTotal.WithLabelValues(relation, metrics.ToggleAdded).Inc()
	return true, nil
}

func (s *likeService) LikedVideos(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error) {
	return s.likes.ListLikedVideos(ctx, userID, page)
}
