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

// CommentRepository implements repository.CommentRepository using MongoDB.
type CommentRepository struct {
	comments *mongo.Collection
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

// NewCommentRepository creates a new CommentRepository instance.
func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{comments: db.Collection(collComments)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	observe(metrics.StoreOpInsert, collComments)
	if _, err := r.comments.InsertOne(ctx, newCommentDocument(comment)); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	observe(metrics.StoreOpFind, collComments)

	var doc commentDocument
	if err := r.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}
	return doc.toModel(), nil
}

// ListByVideo returns one page of a video's comments with owners joined.
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error) {
	p, err := aggregatePage(ctx, r.comments,
		[]bson.D{matchStage(bson.D{{Key: "video", Value: videoID}})},
		page, (*commentDocument).toModel, lookupOwner()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return p, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error) {
	observe(metrics.StoreOpUpdate, collComments)

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc commentDocument
	if err := r.comments.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return doc.toModel(), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	observe(metrics.StoreOpDelete, collComments)

	res, err := r.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrCommentNotFound
	}
	return nil
}
