package repository

import (
	"context"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaylistRepository defines the interface for playlist persistence operations.
type PlaylistRepository interface {
	// Create returns ErrDuplicatePlaylist if the owner already has a playlist with that name.
	Create(ctx context.Context, playlist *model.Playlist) error

	// GetByID returns ErrPlaylistNotFound if the playlist does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error)

	// GetWithVideos retrieves a playlist with its videos and their owners joined.
	// Unpublished videos are included only when viewerID owns them.
	GetWithVideos(ctx context.Context, id, viewerID primitive.ObjectID) (*model.Playlist, error)

	// ListByOwner returns all playlists of a user, newest first.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Playlist, error)

	// AddVideo appends videoID and returns the updated playlist.
	// Adding a video that is already present leaves the playlist unchanged and reports added=false.
	AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (playlist *model.Playlist, added bool, err error)

	// RemoveVideo removes videoID and returns the updated playlist.
	RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*model.Playlist, error)

	// Update sets the name and description and returns the updated playlist.
	// Returns ErrDuplicatePlaylist if the new name collides with another playlist of the owner.
	Update(ctx context.Context, id primitive.ObjectID, name, description string) (*model.Playlist, error)

	Delete(ctx context.Context, id primitive.ObjectID) error
}
