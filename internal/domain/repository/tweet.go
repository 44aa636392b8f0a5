package repository

import (
	"context"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TweetRepository defines the interface for tweet persistence operations.
type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error

	// GetByID returns ErrTweetNotFound if the tweet does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)

	// ListByOwner returns one page of a user's tweets with the owner joined.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Tweet], error)

	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Tweet, error)

	Delete(ctx context.Context, id primitive.ObjectID) error
}
