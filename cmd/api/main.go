package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidtube/internal/api/handler"
	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/auth"
	"github.com/hszk-dev/vidtube/internal/config"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/mongodb"
	"github.com/hszk-dev/vidtube/internal/infrastructure/queue"
	"github.com/hszk-dev/vidtube/internal/infrastructure/storage"
	"github.com/hszk-dev/vidtube/internal/probe"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// handlers groups the HTTP handlers mounted by setupRouter.
type handlers struct {
	users         *handler.UserHandler
	videos        *handler.VideoHandler
	comments      *handler.CommentHandler
	likes         *handler.LikeHandler
	subscriptions *handler.SubscriptionHandler
	tweets        *handler.TweetHandler
	playlists     *handler.PlaylistHandler
	dashboard     *handler.DashboardHandler
	health        *handler.HealthHandler
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Media.TempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	// Initialize infrastructure clients
	mongoCfg := mongodb.DefaultClientConfig(cfg.Mongo.URI, cfg.Mongo.Database)
	mongoCfg.MaxPoolSize = cfg.Mongo.MaxPoolSize
	mongoCfg.MinPoolSize = cfg.Mongo.MinPoolSize
	mongoCfg.ServerSelectionTimeout = cfg.Mongo.ServerSelectionTimeout
	mongoCfg.Transactions = cfg.Mongo.Transactions

	mongoClient, err := mongodb.NewClient(ctx, mongoCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer closeCancel()
		if err := mongoClient.Close(closeCtx); err != nil {
			logger.Error("failed to disconnect from MongoDB", slog.String("error", err.Error()))
		}
	}()
	logger.Info("connected to MongoDB", slog.String("database", cfg.Mongo.Database))

	db := mongoClient.Database()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	prober := probe.NewFFprobe(probe.Config{Timeout: cfg.Media.ProbeTimeout})
	mediaHost, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:     cfg.MinIO.Endpoint,
		AccessKey:    cfg.MinIO.AccessKey,
		SecretKey:    cfg.MinIO.SecretKey,
		Bucket:       cfg.MinIO.Bucket,
		UseSSL:       cfg.MinIO.UseSSL,
		PublicURL:    cfg.MinIO.PublicURL,
		Timeout:      cfg.MinIO.Timeout,
		MaxAttempts:  cfg.MinIO.MaxAttempts,
		RetryBackoff: cfg.MinIO.RetryBackoff,
	}, prober)
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO", slog.String("bucket", mediaHost.Bucket()))

	queueCfg := queue.DefaultClientConfig(cfg.RabbitMQ.URL())
	queueCfg.QueueName = cfg.RabbitMQ.Queue
	queueCfg.RoutingKey = cfg.RabbitMQ.Queue
	queueClient, err := queue.NewClient(ctx, queueCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	tokens, err := auth.NewTokenIssuer(auth.TokenIssuerConfig{
		AccessSecret:  cfg.Auth.AccessTokenSecret,
		AccessTTL:     cfg.Auth.AccessTokenExpiry,
		RefreshSecret: cfg.Auth.RefreshTokenSecret,
		RefreshTTL:    cfg.Auth.RefreshTokenExpiry,
		Issuer:        cfg.Auth.Issuer,
	})
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	// Initialize repositories
	userRepo := mongodb.NewUserRepository(db)
	videoRepo := mongodb.NewVideoRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	likeRepo := mongodb.NewLikeRepository(db)
	subRepo := mongodb.NewSubscriptionRepository(db)
	tweetRepo := mongodb.NewTweetRepository(db)
	playlistRepo := mongodb.NewPlaylistRepository(db)

	deps := map[string]handler.Pinger{
		"mongodb": mongoClient,
		"minio":   mediaHost,
	}

	// Initialize services
	videoSvc := usecase.NewVideoService(
		videoRepo, likeRepo, userRepo, mongoClient, mediaHost, queueClient,
		usecase.VideoServiceConfig{WatchHistoryLimit: cfg.Media.WatchHistory},
	)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis")

		videoSvc = usecase.NewCachedVideoService(
			videoSvc,
			videoRepo,
			cache.NewRedisVideoCache(redisClient),
			usecase.CachedVideoServiceConfig{CacheTTL: cfg.Redis.VideoTTL},
		)
		deps["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	uploads := handler.UploadConfig{TempDir: cfg.Media.TempDir, MaxBytes: cfg.Media.MaxUploadBytes}
	h := handlers{
		users: handler.NewUserHandler(
			usecase.NewUserService(userRepo, tokens, mediaHost, queueClient),
			handler.CookieConfig{
				Secure:     cfg.Server.SecureCookies,
				AccessTTL:  tokens.AccessTTL(),
				RefreshTTL: tokens.RefreshTTL(),
			},
			uploads,
		),
		videos:        handler.NewVideoHandler(videoSvc, uploads),
		comments:      handler.NewCommentHandler(usecase.NewCommentService(commentRepo, videoRepo, likeRepo, mongoClient)),
		likes:         handler.NewLikeHandler(usecase.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)),
		subscriptions: handler.NewSubscriptionHandler(usecase.NewSubscriptionService(subRepo, userRepo)),
		tweets:        handler.NewTweetHandler(usecase.NewTweetService(tweetRepo, userRepo, likeRepo, mongoClient)),
		playlists:     handler.NewPlaylistHandler(usecase.NewPlaylistService(playlistRepo, videoRepo, userRepo)),
		dashboard:     handler.NewDashboardHandler(usecase.NewDashboardService(videoRepo, subRepo, likeRepo)),
		health:        handler.NewHealthHandler(deps),
	}

	r := setupRouter(logger, cfg.Server.CORSOrigin, tokens, h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(logger *slog.Logger, corsOrigin string, tokens middleware.AccessTokenParser, h handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(corsOrigin))

	authenticated := middleware.Authenticate(tokens)
	optional := middleware.OptionalAuthenticate(tokens)

	r.Get("/health", h.health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", h.health.Health)

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.users.Register)
			r.Post("/login", h.users.Login)
			r.Post("/refresh-token", h.users.RefreshToken)
			r.With(optional).Get("/c/{username}", h.users.ChannelProfile)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/logout", h.users.Logout)
				r.Post("/change-password", h.users.ChangePassword)
				r.Get("/current-user", h.users.CurrentUser)
				r.Patch("/update-account", h.users.UpdateAccount)
				r.Patch("/avatar", h.users.UpdateAvatar)
				r.Patch("/cover-image", h.users.UpdateCoverImage)
				r.Get("/history", h.users.WatchHistory)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.With(optional).Get("/", h.videos.List)
			r.With(optional).Get("/{videoId}", h.videos.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", h.videos.Publish)
				r.Patch("/{videoId}", h.videos.Update)
				r.Delete("/{videoId}", h.videos.Delete)
				r.Patch("/toggle/publish/{videoId}", h.videos.TogglePublish)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.With(optional).Get("/{videoId}", h.comments.List)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/{videoId}", h.comments.Add)
				r.Patch("/c/{commentId}", h.comments.Update)
				r.Delete("/c/{commentId}", h.comments.Delete)
			})
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/toggle/v/{videoId}", h.likes.ToggleVideo)
			r.Post("/toggle/c/{commentId}", h.likes.ToggleComment)
			r.Post("/toggle/t/{tweetId}", h.likes.ToggleTweet)
			r.Get("/videos", h.likes.LikedVideos)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/c/{channelId}", h.subscriptions.Subscribers)
			r.Get("/u/{subscriberId}", h.subscriptions.SubscribedChannels)
			r.With(authenticated).Post("/c/{channelId}", h.subscriptions.Toggle)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Get("/user/{userId}", h.tweets.ListByUser)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", h.tweets.Create)
				r.Patch("/{tweetId}", h.tweets.Update)
				r.Delete("/{tweetId}", h.tweets.Delete)
			})
		})

		r.Route("/playlist", func(r chi.Router) {
			r.Get("/user/{userId}", h.playlists.ListByUser)
			r.With(optional).Get("/{playlistId}", h.playlists.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", h.playlists.Create)
				r.Patch("/{playlistId}", h.playlists.Update)
				r.Delete("/{playlistId}", h.playlists.Delete)
				r.Patch("/add/{videoId}/{playlistId}", h.playlists.AddVideo)
				r.Patch("/remove/{videoId}/{playlistId}", h.playlists.RemoveVideo)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/stats", h.dashboard.Stats)
			r.Get("/videos", h.dashboard.Videos)
		})
	})

	return r
}
