package repository

import (
	"context"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentRepository defines the interface for comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)

	// ListByVideo returns one page of a video's comments with owners joined.
	ListByVideo(ctx context.Context, videoID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error)

	// UpdateContent replaces the content and returns the updated comment.
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error)

	Delete(ctx context.Context, id primitive.ObjectID) error
}
