package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind identifies which entity a Like points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

func (k TargetKind) IsValid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	default:
		return false
	}
}

func (k TargetKind) String() string {
	return string(k)
}

// LikeTarget is the tagged reference a Like points at.
// A Like always carries exactly one target, so there is no way to express
// a like on both a video and a comment.
type LikeTarget struct {
	Kind TargetKind
	ID   primitive.ObjectID
}

func NewLikeTarget(kind TargetKind, id primitive.ObjectID) (LikeTarget, error) {
	if !kind.IsValid() || id.IsZero() {
		return LikeTarget{}, ErrInvalidLikeTarget
	}
	return LikeTarget{Kind: kind, ID: id}, nil
}

// Like records that a user liked a target. Its existence is the "liked" state.
type Like struct {
	ID        primitive.ObjectID
	Target    LikeTarget
	LikedBy   primitive.ObjectID
	CreatedAt time.Time
}

func NewLike(target LikeTarget, likedBy primitive.ObjectID) (*Like, error) {
	if !target.Kind.IsValid() || target.ID.IsZero() {
		return nil, ErrInvalidLikeTarget
	}
	if likedBy.IsZero() {
		return nil, ErrInvalidOwnerID
	}
	return &Like{
		ID:        primitive.NewObjectID(),
		Target:    target,
		LikedBy:   likedBy,
		CreatedAt: time.Now(),
	}, nil
}

// LikedVideo is a like on a video joined with the video and its owner.
type LikedVideo struct {
	LikeID  primitive.ObjectID
	LikedAt time.Time
	Video   *Video
}
