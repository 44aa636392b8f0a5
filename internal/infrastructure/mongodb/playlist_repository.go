package mongodb

import (
	"context"
	"errors"
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

// PlaylistRepository implements repository.PlaylistRepository using MongoDB.
type PlaylistRepository struct {
	playlists *mongo.Collection
}

var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)

// NewPlaylistRepository creates a new PlaylistRepository instance.
func NewPlaylistRepository(db *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{playlists: db.Collection(collPlaylists)}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	observe(metrics.StoreOpInsert, collPlaylists)
	if _, err := r.playlists.InsertOne(ctx, newPlaylistDocument(playlist)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicatePlaylist
		}
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error) {
	observe(metrics.StoreOpFind, collPlaylists)

	var doc playlistDocument
	if err := r.playlists.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist by ID: %w", err)
	}
	return doc.toModel(), nil
}

// GetWithVideos retrieves a playlist with its videos joined, in playlist order.
// Unpublished videos are only joined for their owner.
func (r *PlaylistRepository) GetWithVideos(ctx context.Context, id, viewerID primitive.ObjectID) (*model.Playlist, error) {
	visible := bson.A{bson.D{{Key: "isPublished", Value: true}}}
	if !viewerID.IsZero() {
		visible = append(visible, bson.D{{Key: "owner", Value: viewerID}})
	}
	videoPipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "$expr", Value: bson.D{{Key: "$in", Value: bson.A{"$_id", "$$videoIds"}}}},
			{Key: "$or", Value: visible},
		}}},
	}
	for _, s := range lookupOwner() {
		videoPipeline = append(videoPipeline, s)
	}

	pipeline := []bson.D{
		matchStage(bson.D{{Key: "_id", Value: id}}),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collVideos},
			{Key: "let", Value: bson.D{{Key: "videoIds", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$videos", bson.A{}}}}}}},
			{Key: "pipeline", Value: videoPipeline},
			{Key: "as", Value: "videoDocs"},
		}}},
	}

	docs, err := aggregateAll[playlistDocument](ctx, r.playlists, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist with videos: %w", err)
	}
	if len(docs) == 0 {
		return nil, repository.ErrPlaylistNotFound
	}

	p := docs[0].toModel()
	if p.Videos == nil {
		p.Videos = []*model.Video{}
	}
	return p, nil
}

// ListByOwner returns all playlists of a user, newest first.
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Playlist, error) {
	observe(metrics.StoreOpFind, collPlaylists)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.playlists.Find(ctx, bson.D{{Key: "owner", Value: ownerID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*playlistDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}

	playlists := make([]*model.Playlist, 0, len(docs))
	for _, d := range docs {
		playlists = append(playlists, d.toModel())
	}
	return playlists, nil
}

// AddVideo appends videoID unless it is already present.
func (r *PlaylistRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*model.Playlist, bool, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "videos", Value: bson.D{{Key: "$ne", Value: videoID}}},
	}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "videos", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
	}

	p, err := r.findOneAndUpdate(ctx, filter, update)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, repository.ErrPlaylistNotFound) {
		return nil, false, err
	}

	// Either the playlist is missing or it already holds the video.
	p, err = r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return p, false, nil
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*model.Playlist, error) {
	update := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "videos", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
	}
	return r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update)
}

func (r *PlaylistRepository) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*model.Playlist, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "description", Value: description},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	return r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update)
}

func (r *PlaylistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	observe(metrics.StoreOpDelete, collPlaylists)

	res, err := r.playlists.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrPlaylistNotFound
	}
	return nil
}

func (r *PlaylistRepository) findOneAndUpdate(ctx context.Context, filter, update bson.D) (*model.Playlist, error) {
	observe(metrics.StoreOpUpdate, collPlaylists)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc playlistDocument
	if err := r.playlists.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrPlaylistNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicatePlaylist
		}
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return doc.toModel(), nil
}
