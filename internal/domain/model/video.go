package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is an uploaded video owned by a user.
type Video struct {
	ID          primitive.ObjectID
	OwnerID     primitive.ObjectID
	Owner       *UserSummary // populated on joined reads only
	Title       string
	Description string
	VideoFile   string
	Thumbnail   string
	Duration    float64 // seconds, as reported by the media host
	Views       int64
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewVideo creates a published Video from already hosted assets.
func NewVideo(ownerID primitive.ObjectID, title, description, videoFile, thumbnail string, duration float64) (*Video, error) {
	if ownerID.IsZero() {
		return nil, ErrInvalidOwnerID
	}
	title, description, err := ValidateVideoDetails(title, description)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Video{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Duration:    duration,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ValidateVideoDetails trims and validates the editable text fields of a video.
func ValidateVideoDetails(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return "", "", ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return "", "", ErrTitleTooLong
	}
	if description == "" {
		return "", "", ErrEmptyDescription
	}
	return title, description, nil
}

// IsOwnedBy reports whether userID owns the video.
func (v *Video) IsOwnedBy(userID primitive.ObjectID) bool {
	return v.OwnerID == userID
}

// VisibleTo reports whether the video can be seen by viewerID.
// Unpublished videos are only visible to their owner.
func (v *Video) VisibleTo(viewerID primitive.ObjectID) bool {
	return v.IsPublished || v.IsOwnedBy(viewerID)
}

// ChannelStats aggregates the numbers shown on a channel dashboard.
type ChannelStats struct {
	TotalVideos      int64
	TotalViews       int64
	TotalSubscribers int64
	TotalLikes       int64
}
