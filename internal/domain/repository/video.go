package repository

import (
	"context"
	"time"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoFilter narrows a video listing. Zero values mean "no filter".
type VideoFilter struct {
	OwnerID       primitive.ObjectID
	PublishedOnly bool
	Query         string // matched against title and description
}

// VideoUpdate holds the editable fields of a video. Empty Thumbnail leaves it unchanged.
type VideoUpdate struct {
	Title       string
	Description string
	Thumbnail   string
	UpdatedAt   time.Time
}

// VideoRepository defines the interface for video persistence operations.
type VideoRepository interface {
	// Create persists a new video.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video without joins.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error)

	// GetWithOwner retrieves a video with its owner summary joined.
	GetWithOwner(ctx context.Context, id primitive.ObjectID) (*model.Video, error)

	// List returns one page of videos matching filter, each with its owner joined.
	List(ctx context.Context, filter VideoFilter, page model.PageRequest) (*model.Page[*model.Video], error)

	// Update applies the editable fields and returns the video as it was before the update.
	Update(ctx context.Context, id primitive.ObjectID, update VideoUpdate) (*model.Video, error)

	// TogglePublished flips isPublished and returns the updated video.
	TogglePublished(ctx context.Context, id primitive.ObjectID) (*model.Video, error)

	// IncrementViews adds one to the view counter.
	IncrementViews(ctx context.Context, id primitive.ObjectID) error

	// Delete removes a video and returns the deleted document.
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Video, error)

	// Stats aggregates video count and total views for one owner.
	Stats(ctx context.Context, ownerID primitive.ObjectID) (videos int64, views int64, err error)
}
