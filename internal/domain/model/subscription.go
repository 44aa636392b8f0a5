package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription links a subscriber to a channel. Its existence is the "subscribed" state.
type Subscription struct {
	ID           primitive.ObjectID
	SubscriberID primitive.ObjectID
	ChannelID    primitive.ObjectID
	Subscriber   *UserSummary
	Channel      *UserSummary
	CreatedAt    time.Time
}

func NewSubscription(subscriberID, channelID primitive.ObjectID) (*Subscription, error) {
	if subscriberID.IsZero() || channelID.IsZero() {
		return nil, ErrInvalidOwnerID
	}
	if subscriberID == channelID {
		return nil, ErrSelfSubscription
	}
	return &Subscription{
		ID:           primitive.NewObjectID(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}, nil
}

// SubscriberList is the subscribers of one channel.
type SubscriberList struct {
	Count       int64
	Subscribers []*Subscription
}
