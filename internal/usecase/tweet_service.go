package usecase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// TweetService defines operations on channel tweets.
type TweetService interface {
	CreateTweet(ctx context.Context, ownerID primitive.ObjectID, content string) (*model.Tweet, error)
	UserTweets(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Tweet], error)
	UpdateTweet(ctx context.Context, tweetID, userID primitive.ObjectID, content string) (*model.Tweet, error)
	// DeleteTweet removes the tweet together with its likes.
	DeleteTweet(ctx context.Context, tweetID, userID primitive.ObjectID) error
}

type tweetService struct {
	tweets repository.TweetRepository
	users  repository.UserRepository
	likes  repository.LikeRepository
	tx     repository.Transactor
}

// NewTweetService creates a new TweetService instance.
func NewTweetService(
	tweets repository.TweetRepository,
	users repository.UserRepository,
	likes repository.LikeRepository,
	tx repository.Transactor,
) TweetService {
	return &tweetService{
		tweets: tweets,
		users:  users,
		likes:  likes,
		tx:     tx,
	}
}

func (s *tweetService) CreateTweet(ctx context.Context, ownerID primitive.ObjectID, content string) (*model.Tweet, error) {
	tweet, err := model.NewTweet(ownerID, content)
	if err != nil {
		return nil, err
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

func (s *tweetService) UserTweets(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Tweet], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.tweets.ListByOwner(ctx, userID, page)
}

func (s *tweetService) UpdateTweet(ctx context.Context, tweetID, userID primitive.ObjectID, content string) (*model.Tweet, error) {
	content, err := model.ValidateContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, tweetID, userID); err != nil {
		return nil, err
	}
	return s.tweets.UpdateContent(ctx, tweetID, content)
}

func (s *tweetService) DeleteTweet(ctx context.Context, tweetID, userID primitive.ObjectID) error {
	if err := s.requireOwner(ctx, tweetID, userID); err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.tweets.Delete(ctx, tweetID); err != nil {
			return err
		}
		target := model.LikeTarget{Kind: model.TargetTweet, ID: tweetID}
		if _, err := s.likes.DeleteByTarget(ctx, target); err != nil {
			return fmt.Errorf("delete tweet likes: %w", err)
		}
		return nil
	})
}

func (s *tweetService) requireOwner(ctx context.Context, tweetID, userID primitive.ObjectID) error {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if !tweet.IsOwnedBy(userID) {
		return ErrForbidden
	}
	return nil
}
