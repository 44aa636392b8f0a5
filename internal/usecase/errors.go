package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned when login fails for any reason tied to the supplied credentials.
	ErrInvalidCredentials = errors.New("invalid user credentials")

	// ErrCredentialsRequired is returned when neither username nor email is supplied.
	ErrCredentialsRequired = errors.New("username or email is required")

	// ErrInvalidRefreshToken is returned when a refresh token is missing, invalid, or superseded.
	ErrInvalidRefreshToken = errors.New("refresh token is expired or used")

	// ErrIncorrectPassword is returned when the current password does not match on password change.
	ErrIncorrectPassword = errors.New("old password is incorrect")

	// ErrForbidden is returned when a user mutates a resource they do not own.
	ErrForbidden = errors.New("you are not allowed to modify this resource")

	// ErrMediaUpload is returned when the media host rejects an upload after retries.
	ErrMediaUpload = errors.New("failed to upload media")

	ErrAvatarRequired     = errors.New("avatar file is required")
	ErrCoverImageRequired = errors.New("cover image file is required")
	ErrVideoFileRequired  = errors.New("video file is required")
	ErrThumbnailRequired  = errors.New("thumbnail file is required")

	// ErrAlreadyInPlaylist is returned when a video is added to a playlist that already holds it.
	ErrAlreadyInPlaylist = errors.New("video is already in the playlist")
)
