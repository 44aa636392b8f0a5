package repository

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrCommentNotFound is returned when a comment cannot be found.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrTweetNotFound is returned when a tweet cannot be found.
	ErrTweetNotFound = errors.New("tweet not found")

	// ErrPlaylistNotFound is returned when a playlist cannot be found.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrStaleRefreshToken is returned when the stored refresh token no longer
	// matches the one being rotated.
	ErrStaleRefreshToken = errors.New("refresh token was already rotated")

	// ErrDuplicateUser is returned when the username or email is already taken.
	ErrDuplicateUser = errors.New("user with this username or email already exists")

	// ErrDuplicateLike is returned when the same user already liked the same target.
	ErrDuplicateLike = errors.New("already liked")

	// ErrDuplicateSubscription is returned when the subscriber already follows the channel.
	ErrDuplicateSubscription = errors.New("already subscribed")

	// ErrDuplicatePlaylist is returned when the owner already has a playlist with that name.
	ErrDuplicatePlaylist = errors.New("playlist with this name already exists")

	// ErrBucketNotFound is returned when the configured media bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrObjectNotFound is returned when a hosted asset does not exist.
	ErrObjectNotFound = errors.New("object not found")
)
