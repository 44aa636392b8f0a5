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

// UserRepository implements repository.UserRepository using MongoDB.
type UserRepository struct {
	users  *mongo.Collection
	videos *mongo.Collection
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:  db.Collection(collUsers),
		videos: db.Collection(collVideos),
	}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	observe(metrics.StoreOpInsert, collUsers)
	if _, err := r.users.InsertOne(ctx, newUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// GetByUsernameOrEmail retrieves the user matching either identifier.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	var or bson.A
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if len(or) == 0 {
		return nil, repository.ErrUserNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "$or", Value: or}})
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

// UpdateAccount sets the full name and email.
func (r *UserRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*model.User, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "fullName", Value: fullName},
		{Key: "email", Value: email},
		{Key: "updatedAt", Value: time.Now()},
	}}}

	user, err := r.findOneAndUpdate(ctx, id, update, options.After)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.updateOne(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: passwordHash},
		{Key: "updatedAt", Value: time.Now()},
	}}})
}

// SetAvatar replaces the avatar and returns the previous state of the user.
func (r *UserRepository) SetAvatar(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "avatar", Value: url},
		{Key: "updatedAt", Value: time.Now()},
	}}}, options.Before)
}

// SetCoverImage replaces the cover image and returns the previous state of the user.
func (r *UserRepository) SetCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "coverImage", Value: url},
		{Key: "updatedAt", Value: time.Now()},
	}}}, options.Before)
}

// SetRefreshToken stores the currently issued refresh token.
func (r *UserRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return r.updateOne(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "refreshToken", Value: token},
	}}})
}

// RotateRefreshToken swaps the stored refresh token in a single conditional
// update, so a token can be exchanged at most once.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, current, next string) error {
	observe(metrics.StoreOpUpdate, collUsers)

	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "refreshToken", Value: current},
	}
	res, err := r.users.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: bson.D{
		{Key: "refreshToken", Value: next},
	}}})
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrStaleRefreshToken
	}
	return nil
}

// ClearRefreshToken removes the stored refresh token.
func (r *UserRepository) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.D{{Key: "$unset", Value: bson.D{
		{Key: "refreshToken", Value: ""},
	}}})
}

// AddToWatchHistory moves videoID to the front of the history in a single update.
func (r *UserRepository) AddToWatchHistory(ctx context.Context, id, videoID primitive.ObjectID, limit int) error {
	withoutVideo := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$watchHistory", bson.A{}}}}},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", videoID}}}},
	}}}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "watchHistory", Value: bson.D{{Key: "$slice", Value: bson.A{
				bson.D{{Key: "$concatArrays", Value: bson.A{bson.A{videoID}, withoutVideo}}},
				limit,
			}}}},
		}}},
	}

	return r.updateOne(ctx, id, update)
}

// GetChannelProfile retrieves a channel with its subscription counts.
func (r *UserRepository) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*model.ChannelProfile, error) {
	lookupSubs := func(foreignField, as string) bson.D {
		return bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collSubscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: foreignField},
			{Key: "as", Value: as},
		}}}
	}

	pipeline := []bson.D{
		matchStage(bson.D{{Key: "username", Value: username}}),
		lookupSubs("channel", "subscribers"),
		lookupSubs("subscriber", "subscribedTo"),
		{{Key: "$addFields", Value: bson.D{
			{Key: "subscribersCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "channelsSubscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: bson.D{{Key: "$in", Value: bson.A{viewerID, "$subscribers.subscriber"}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "email", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "channelsSubscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
		}}},
	}

	docs, err := aggregateAll[channelProfileDocument](ctx, r.users, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}
	if len(docs) == 0 {
		return nil, repository.ErrUserNotFound
	}
	return docs[0].toModel(), nil
}

// GetWatchHistory returns the user's watched videos, most recent first.
func (r *UserRepository) GetWatchHistory(ctx context.Context, id primitive.ObjectID) ([]*model.Video, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(user.WatchHistory) == 0 {
		return []*model.Video{}, nil
	}

	pipeline := append([]bson.D{
		matchStage(bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: user.WatchHistory}}}}),
	}, lookupOwner()...)

	docs, err := aggregateAll[videoDocument](ctx, r.videos, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}

	byID := make(map[primitive.ObjectID]*videoDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	videos := make([]*model.Video, 0, len(docs))
	for _, vid := range user.WatchHistory {
		if d, ok := byID[vid]; ok {
			videos = append(videos, d.toModel())
		}
	}
	return videos, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	observe(metrics.StoreOpFind, collUsers)

	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toModel(), nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update interface{}, rd options.ReturnDocument) (*model.User, error) {
	observe(metrics.StoreOpUpdate, collUsers)

	opts := options.FindOneAndUpdate().SetReturnDocument(rd)
	var doc userDocument
	err := r.users.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return doc.toModel(), nil
}

func (r *UserRepository) updateOne(ctx context.Context, id primitive.ObjectID, update interface{}) error {
	observe(metrics.StoreOpUpdate, collUsers)

	res, err := r.users.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
