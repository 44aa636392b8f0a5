package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// Collection names.
const (
	collUsers         = "users"
	collVideos        = "videos"
	collComments      = "comments"
	collLikes         = "likes"
	collSubscriptions = "subscriptions"
	collTweets        = "tweets"
	collPlaylists     = "playlists"
)

// ClientConfig holds configuration for the MongoDB client.
type ClientConfig struct {
	URI                    string
	Database               string
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ServerSelectionTimeout time.Duration
	// Transactions enables multi-document transactions. Requires a replica set.
	Transactions bool
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig(uri, database string) ClientConfig {
	return ClientConfig{
		URI:                    uri,
		Database:               database,
		MaxPoolSize:            50,
		MinPoolSize:            5,
		ServerSelectionTimeout: 10 * time.Second,
		Transactions:           true,
	}
}

// Client wraps a MongoDB connection and the application database.
type Client struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

var _ repository.Transactor = (*Client)(nil)

// NewClient connects to MongoDB and verifies the connection.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{
		client:       client,
		db:           client.Database(cfg.Database),
		transactions: cfg.Transactions,
	}, nil
}

// Database returns the application database.
// Use this for creating repository instances.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Ping verifies the database connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a multi-document transaction.
// When transactions are disabled fn runs directly and each write commits on its own.
func (c *Client) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !c.transactions {
		return fn(ctx)
	}

	sess, err := c.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the indexes the repositories rely on.
// Unique indexes back the duplicate checks of users, likes, subscriptions and playlists.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName("uniq_username").SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_email").SetUnique(true)},
		},
		collVideos: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("owner_created")},
			{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("published_created")},
		},
		collComments: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("video_created")},
		},
		collLikes: {
			{
				Keys:    bson.D{{Key: "targetType", Value: 1}, {Key: "target", Value: 1}, {Key: "likedBy", Value: 1}},
				Options: options.Index().SetName("uniq_target_liker").SetUnique(true),
			},
			{Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("liker_created")},
		},
		collSubscriptions: {
			{
				Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
				Options: options.Index().SetName("uniq_subscriber_channel").SetUnique(true),
			},
			{Keys: bson.D{{Key: "channel", Value: 1}}, Options: options.Index().SetName("channel")},
		},
		collTweets: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("owner_created")},
		},
		collPlaylists: {
			{
				Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetName("uniq_owner_name").SetUnique(true),
			},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
