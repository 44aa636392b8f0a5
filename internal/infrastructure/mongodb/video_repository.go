package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// VideoRepository implements repository.VideoRepository using MongoDB.
type VideoRepository struct {
	videos *mongo.Collection
}

var _ repository.VideoRepository = (*VideoRepository)(nil)

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{videos: db.Collection(collVideos)}
}

// Create persists a new video.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	observe(metrics.StoreOpInsert, collVideos)
	if _, err := r.videos.InsertOne(ctx, newVideoDocument(video)); err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// GetByID retrieves a video without joins.
func (r *VideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	observe(metrics.StoreOpFind, collVideos)

	var doc videoDocument
	if err := r.videos.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}
	return doc.toModel(), nil
}

// GetWithOwner retrieves a video with its owner joined.
func (r *VideoRepository) GetWithOwner(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	pipeline := append([]bson.D{matchStage(bson.D{{Key: "_id", Value: id}})}, lookupOwner()...)

	docs, err := aggregateAll[videoDocument](ctx, r.videos, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get video with owner: %w", err)
	}
	if len(docs) == 0 {
		return nil, repository.ErrVideoNotFound
	}
	return docs[0].toModel(), nil
}

// List returns one page of videos matching filter.
func (r *VideoRepository) List(ctx context.Context, filter repository.VideoFilter, page model.PageRequest) (*model.Page[*model.Video], error) {
	match := bson.D{}
	if !filter.OwnerID.IsZero() {
		match = append(match, bson.E{Key: "owner", Value: filter.OwnerID})
	}
	if filter.PublishedOnly {
		match = append(match, bson.E{Key: "isPublished", Value: true})
	}
	if filter.Query != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
		}})
	}

	p, err := aggregatePage(ctx, r.videos, []bson.D{matchStage(match)}, page,
		(*videoDocument).toModel, lookupOwner()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return p, nil
}

// Update applies the editable fields and returns the previous state of the video.
func (r *VideoRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.VideoUpdate) (*model.Video, error) {
	updatedAt := update.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	set := bson.D{
		{Key: "title", Value: update.Title},
		{Key: "description", Value: update.Description},
		{Key: "updatedAt", Value: updatedAt},
	}
	if update.Thumbnail != "" {
		set = append(set, bson.E{Key: "thumbnail", Value: update.Thumbnail})
	}
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: set}}, options.Before)
}

// TogglePublished flips isPublished atomically.
func (r *VideoRepository) TogglePublished(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isPublished", Value: bson.D{{Key: "$not", Value: bson.A{"$isPublished"}}}},
			{Key: "updatedAt", Value: time.Now()},
		}}},
	}
	return r.findOneAndUpdate(ctx, id, update, options.After)
}

// IncrementViews adds one to the view counter.
func (r *VideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	observe(metrics.StoreOpUpdate, collVideos)

	res, err := r.videos.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrVideoNotFound
	}
	return nil
}

// Delete removes a video and returns the deleted document.
func (r *VideoRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	observe(metrics.StoreOpDelete, collVideos)

	var doc videoDocument
	if err := r.videos.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to delete video: %w", err)
	}
	return doc.toModel(), nil
}

// Stats aggregates video count and total views for one owner.
func (r *VideoRepository) Stats(ctx context.Context, ownerID primitive.ObjectID) (int64, int64, error) {
	type statsDocument struct {
		Videos int64 `bson:"videos"`
		Views  int64 `bson:"views"`
	}

	pipeline := []bson.D{
		matchStage(bson.D{{Key: "owner", Value: ownerID}}),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "videos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "views", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}

	docs, err := aggregateAll[statsDocument](ctx, r.videos, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate video stats: %w", err)
	}
	if len(docs) == 0 {
		return 0, 0, nil
	}
	return docs[0].Videos, docs[0].Views, nil
}

func (r *VideoRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update interface{}, returnDoc options.ReturnDocument) (*model.Video, error) {
	observe(metrics.StoreOpUpdate, collVideos)

	opts := options.FindOneAndUpdate().SetReturnDocument(returnDoc)
	var doc videoDocument
	if err := r.videos.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return doc.toModel(), nil
}
