package repository

import (
	"context"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionRepository defines the interface for subscription persistence operations.
// The store enforces at most one subscription per (subscriber, channel).
type SubscriptionRepository interface {
	// Create returns ErrDuplicateSubscription if the subscription already exists.
	Create(ctx context.Context, sub *model.Subscription) error

	// Delete removes the subscription and reports whether one existed.
	Delete(ctx context.Context, subscriberID, channelID primitive.ObjectID) (bool, error)

	// ListSubscribers returns the channel's subscribers with their summaries joined.
	ListSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]*model.Subscription, error)

	// CountSubscribers counts the channel's subscribers.
	CountSubscribers(ctx context.Context, channelID primitive.ObjectID) (int64, error)

	// ListSubscribedChannels returns the channels a user follows with their summaries joined.
	ListSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]*model.Subscription, error)
}
