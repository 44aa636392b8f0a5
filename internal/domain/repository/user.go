package repository

import (
	"context"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create persists a new user.
	// Returns ErrDuplicateUser if the username or email is taken.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)

	// GetByUsernameOrEmail retrieves the user whose username or email matches.
	// Either argument may be empty. Returns ErrUserNotFound if nothing matches.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)

	// GetByUsername retrieves a user by their (normalized) username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// UpdateAccount sets the full name and email of a user.
	// Returns ErrDuplicateUser if the email is taken by another user.
	UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*model.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	// SetAvatar replaces the avatar URL and returns the user as it was before the update.
	SetAvatar(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error)

	// SetCoverImage replaces the cover image URL and returns the user as it was before the update.
	SetCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error)

	// SetRefreshToken stores the refresh token currently issued to the user.
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error

	// RotateRefreshToken replaces the stored refresh token with next only if it
	// still equals current. Returns ErrStaleRefreshToken otherwise.
	RotateRefreshToken(ctx context.Context, id primitive.ObjectID, current, next string) error

	// ClearRefreshToken removes the stored refresh token.
	ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error

	// AddToWatchHistory moves videoID to the front of the user's history,
	// removing any earlier occurrence and keeping at most limit entries.
	AddToWatchHistory(ctx context.Context, id, videoID primitive.ObjectID, limit int) error

	// GetChannelProfile retrieves a channel by username with subscriber counts
	// and whether viewerID is subscribed to it.
	GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*model.ChannelProfile, error)

	// GetWatchHistory returns the videos in the user's history, most recent first, with owners joined.
	GetWatchHistory(ctx context.Context, id primitive.ObjectID) ([]*model.Video, error)
}
