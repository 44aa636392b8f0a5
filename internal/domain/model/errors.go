package model

import "errors"

var (
	ErrInvalidOwnerID     = errors.New("owner ID cannot be empty")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title exceeds maximum length of 255 characters")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrEmptyContent       = errors.New("content cannot be empty")
	ErrContentTooLong     = errors.New("content exceeds maximum length of 5000 characters")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrInvalidEmail       = errors.New("email is not valid")
	ErrEmptyFullName      = errors.New("full name cannot be empty")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrPasswordTooLong    = errors.New("password exceeds maximum length of 72 bytes")
	ErrEmptyPlaylistName  = errors.New("playlist name cannot be empty")
	ErrInvalidLikeTarget  = errors.New("like target must reference exactly one video, comment or tweet")
	ErrSelfSubscription   = errors.New("a user cannot subscribe to their own channel")
	ErrInvalidPage        = errors.New("page must be a positive number")
	ErrInvalidLimit       = errors.New("limit must be between 1 and 100")
	ErrInvalidSortField   = errors.New("sort field is not allowed")
	ErrInvalidSortDir     = errors.New("sort direction must be asc or desc")
)

const (
	maxTitleLength   = 255
	maxContentLength = 5000

	// MaxPasswordBytes is the longest password bcrypt will hash.
	MaxPasswordBytes = 72
)
