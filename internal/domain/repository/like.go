package repository

import (
	"context"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeRepository defines the interface for like persistence operations.
// The store enforces at most one like per (target, likedBy).
type LikeRepository interface {
	// Create persists a like.
	// Returns ErrDuplicateLike if the user already liked the target.
	Create(ctx context.Context, like *model.Like) error

	// Delete removes the user's like on target and reports whether one existed.
	Delete(ctx context.Context, target model.LikeTarget, likedBy primitive.ObjectID) (bool, error)

	// DeleteByTarget removes every like on target.
	DeleteByTarget(ctx context.Context, target model.LikeTarget) (int64, error)

	// CountForOwner counts likes on all videos owned by ownerID.
	CountForOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)

	// ListLikedVideos returns one page of videos liked by the user, newest like first.
	ListLikedVideos(ctx context.Context, likedBy primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error)
}
