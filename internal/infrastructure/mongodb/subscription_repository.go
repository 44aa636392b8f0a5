package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// SubscriptionRepository implements repository.SubscriptionRepository using MongoDB.
type SubscriptionRepository struct {
	subs *mongo.Collection
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)

// NewSubscriptionRepository creates a new SubscriptionRepository instance.
func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{subs: db.Collection(collSubscriptions)}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	observe(metrics.StoreOpInsert, collSubscriptions)
	if _, err := r.subs.InsertOne(ctx, newSubscriptionDocument(sub)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSubscription
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID primitive.ObjectID) (bool, error) {
	observe(metrics.StoreOpDelete, collSubscriptions)

	res, err := r.subs.DeleteOne(ctx, bson.D{
		{Key: "subscriber", Value: subscriberID},
		{Key: "channel", Value: channelID},
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// ListSubscribers returns the channel's subscribers, newest first.
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]*model.Subscription, error) {
	return r.list(ctx, bson.D{{Key: "channel", Value: channelID}}, "subscriber", "subscriberInfo")
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	observe(metrics.StoreOpCount, collSubscriptions)

	n, err := r.subs.CountDocuments(ctx, bson.D{{Key: "channel", Value: channelID}})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return n, nil
}

// ListSubscribedChannels returns the channels the user follows, newest first.
func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]*model.Subscription, error) {
	return r.list(ctx, bson.D{{Key: "subscriber", Value: subscriberID}}, "channel", "channelInfo")
}

func (r *SubscriptionRepository) list(ctx context.Context, match bson.D, joinField, as string) ([]*model.Subscription, error) {
	pipeline := []bson.D{matchStage(match)}
	pipeline = append(pipeline, lookupUser(joinField, as)...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}})

	docs, err := aggregateAll[subscriptionDocument](ctx, r.subs, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subs := make([]*model.Subscription, 0, len(docs))
	for _, d := range docs {
		subs = append(subs, d.toModel())
	}
	return subs, nil
}
