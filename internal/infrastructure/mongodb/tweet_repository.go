package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// TweetRepository implements repository.TweetRepository using MongoDB.
type TweetRepository struct {
	tweets *mongo.Collection
}

var _ repository.TweetRepository = (*TweetRepository)(nil)

// NewTweetRepository creates a new TweetRepository instance.
func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{tweets: db.Collection(collTweets)}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	observe(metrics.StoreOpInsert, collTweets)
	if _, err := r.tweets.InsertOne(ctx, newTweetDocument(tweet)); err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	observe(metrics.StoreOpFind, collTweets)

	var doc tweetDocument
	if err := r.tweets.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to get tweet by ID: %w", err)
	}
	return doc.toModel(), nil
}

// ListByOwner returns one page of a user's tweets with the owner joined.
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Tweet], error) {
	p, err := aggregatePage(ctx, r.tweets,
		[]bson.D{matchStage(bson.D{{Key: "owner", Value: ownerID}})},
		page, (*tweetDocument).toModel, lookupOwner()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	return p, nil
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Tweet, error) {
	observe(metrics.StoreOpUpdate, collTweets)

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc tweetDocument
	if err := r.tweets.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	return doc.toModel(), nil
}

func (r *TweetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	observe(metrics.StoreOpDelete, collTweets)

	res, err := r.tweets.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrTweetNotFound
	}
	return nil
}
