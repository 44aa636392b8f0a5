package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tweet is a short text post on a user's channel.
type Tweet struct {
	ID        primitive.ObjectID
	OwnerID   primitive.ObjectID
	Owner     *UserSummary
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewTweet(ownerID primitive.ObjectID, content string) (*Tweet, error) {
	if ownerID.IsZero() {
		return nil, ErrInvalidOwnerID
	}
	content, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Tweet{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Tweet) IsOwnedBy(userID primitive.ObjectID) bool {
	return t.OwnerID == userID
}
