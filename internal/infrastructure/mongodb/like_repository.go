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

// LikeRepository implements repository.LikeRepository using MongoDB.
// Uniqueness of (targetType, target, likedBy) is enforced by the uniq_target_liker index.
type LikeRepository struct {
	likes *mongo.Collection
}

var _ repository.LikeRepository = (*LikeRepository)(nil)

// NewLikeRepository creates a new LikeRepository instance.
func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{likes: db.Collection(collLikes)}
}

// Create persists a like. A concurrent duplicate surfaces as ErrDuplicateLike.
func (r *LikeRepository) Create(ctx context.Context, like *model.Like) error {
	observe(metrics.StoreOpInsert, collLikes)
	if _, err := r.likes.InsertOne(ctx, newLikeDocument(like)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateLike
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// Delete removes the user's like on target and reports whether one existed.
func (r *LikeRepository) Delete(ctx context.Context, target model.LikeTarget, likedBy primitive.ObjectID) (bool, error) {
	observe(metrics.StoreOpDelete, collLikes)

	filter := append(targetFilter(target), bson.E{Key: "likedBy", Value: likedBy})
	res, err := r.likes.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteByTarget removes every like on target.
func (r *LikeRepository) DeleteByTarget(ctx context.Context, target model.LikeTarget) (int64, error) {
	observe(metrics.StoreOpDelete, collLikes)

	res, err := r.likes.DeleteMany(ctx, targetFilter(target))
	if err != nil {
		return 0, fmt.Errorf("failed to delete likes of %s: %w", target.Kind, err)
	}
	return res.DeletedCount, nil
}

// CountForOwner counts likes on all videos owned by ownerID.
func (r *LikeRepository) CountForOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	type countDocument struct {
		Total int64 `bson:"total"`
	}

	pipeline := []bson.D{
		matchStage(bson.D{{Key: "targetType", Value: model.TargetVideo.String()}}),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collVideos},
			{Key: "localField", Value: "target"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
		}}},
		matchStage(bson.D{{Key: "video.owner", Value: ownerID}}),
		{{Key: "$count", Value: "total"}},
	}

	docs, err := aggregateAll[countDocument](ctx, r.likes, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	return docs[0].Total, nil
}

// ListLikedVideos returns one page of videos liked by the user.
// Likes whose video no longer exists, or is unpublished and owned by someone
// else, are skipped.
func (r *LikeRepository) ListLikedVideos(ctx context.Context, likedBy primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error) {
	videoPipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
			{Key: "$eq", Value: bson.A{"$_id", "$$videoId"}},
		}}}}},
	}
	for _, s := range lookupOwner() {
		videoPipeline = append(videoPipeline, s)
	}

	pipeline := []bson.D{
		matchStage(bson.D{
			{Key: "likedBy", Value: likedBy},
			{Key: "targetType", Value: model.TargetVideo.String()},
		}),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collVideos},
			{Key: "let", Value: bson.D{{Key: "videoId", Value: "$target"}}},
			{Key: "pipeline", Value: videoPipeline},
			{Key: "as", Value: "video"},
		}}},
		{{Key: "$unwind", Value: "$video"}},
		matchStage(bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "video.isPublished", Value: true}},
			bson.D{{Key: "video.owner", Value: likedBy}},
		}}}),
	}

	p, err := aggregatePage(ctx, r.likes, pipeline, page, (*likeDocument).toLikedVideo)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	return p, nil
}

func targetFilter(target model.LikeTarget) bson.D {
	return bson.D{
		{Key: "targetType", Value: target.Kind.String()},
		{Key: "target", Value: target.ID},
	}
}
