package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a text comment on a video.
type Comment struct {
	ID        primitive.ObjectID
	VideoID   primitive.ObjectID
	OwnerID   primitive.ObjectID
	Owner     *UserSummary
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewComment(videoID, ownerID primitive.ObjectID, content string) (*Comment, error) {
	if ownerID.IsZero() {
		return nil, ErrInvalidOwnerID
	}
	content, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Comment{
		ID:        primitive.NewObjectID(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateContent trims free-form text used by comments and tweets.
func ValidateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if len(content) > maxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

func (c *Comment) IsOwnedBy(userID primitive.ObjectID) bool {
	return c.OwnerID == userID
}
