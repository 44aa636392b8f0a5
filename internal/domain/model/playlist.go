package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist is an ordered list of videos. Names are unique per owner.
type Playlist struct {
	ID          primitive.ObjectID
	OwnerID     primitive.ObjectID
	Name        string
	Description string
	VideoIDs    []primitive.ObjectID
	Videos      []*Video // populated on joined reads only
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewPlaylist(ownerID primitive.ObjectID, name, description string) (*Playlist, error) {
	if ownerID.IsZero() {
		return nil, ErrInvalidOwnerID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyPlaylistName
	}

	now := time.Now()
	return &Playlist{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		VideoIDs:    []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *Playlist) IsOwnedBy(userID primitive.ObjectID) bool {
	return p.OwnerID == userID
}

// Contains reports whether the playlist already holds videoID.
func (p *Playlist) Contains(videoID primitive.ObjectID) bool {
	for _, id := range p.VideoIDs {
		if id == videoID {
			return true
		}
	}
	return false
}
