package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// minioClient defines the interface for MinIO operations.
// This abstraction allows for easier unit testing with mocks.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// Prober reports the duration of a local media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// ClientConfig holds configuration for the MinIO media host.
type ClientConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base of the endpoint used to build asset URLs.
	// Defaults to http(s)://Endpoint.
	PublicURL string
	// Timeout bounds each individual MinIO call.
	Timeout time.Duration
	// MaxAttempts is the number of tries for a failing call, including the first.
	MaxAttempts int
	// RetryBackoff is the delay before the second attempt; it doubles for each further attempt.
	RetryBackoff time.Duration
}

// withDefaults fills unset URL, timeout and retry settings.
func (c ClientConfig) withDefaults() ClientConfig {
	if c.PublicURL == "" {
		scheme := "http"
		if c.UseSSL {
			scheme = "https"
		}
		c.PublicURL = scheme + "://" + c.Endpoint
	}
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 200 * time.Millisecond
	}
	return c
}

// Client hosts media in a MinIO bucket and implements repository.MediaHost.
type Client struct {
	client  minioClient
	prober  Prober
	cfg     ClientConfig
	baseURL string // PublicURL + "/" + bucket + "/"
	sleep   func(ctx context.Context, d time.Duration) error
}

var _ repository.MediaHost = (*Client)(nil)

// NewClient creates a new MinIO media host.
// It verifies the bucket exists during initialization to fail fast on misconfiguration.
func NewClient(ctx context.Context, cfg ClientConfig, prober Prober) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newClientWithMinioClient(ctx, client, prober, cfg)
}

// newClientWithMinioClient creates a Client with a given minioClient implementation.
// This is used for dependency injection in tests.
func newClientWithMinioClient(ctx context.Context, client minioClient, prober Prober, cfg ClientConfig) (*Client, error) {
	cfg = cfg.withDefaults()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrBucketNotFound, cfg.Bucket)
	}

	return &Client{
		client:  client,
		prober:  prober,
		cfg:     cfg,
		baseURL: cfg.PublicURL + "/" + cfg.Bucket + "/",
		sleep:   sleepContext,
	}, nil
}

// Upload stores the local file under a fresh key and returns its public URL.
// Videos are probed for their duration before upload.
func (c *Client) Upload(ctx context.Context, localPath string, kind repository.AssetKind) (*repository.Asset, error) {
	asset, err := c.upload(ctx, localPath, kind)
	status := metrics.MediaStatusSuccess
	if err != nil {
		status = metrics.MediaStatusError
	}
	metrics.MediaOperationsTotal.WithLabelValues(metrics.MediaOpUpload, string(kind), status).Inc()
	return asset, err
}

func (c *Client) upload(ctx context.Context, localPath string, kind repository.AssetKind) (*repository.Asset, error) {
	prefix, err := keyPrefix(kind)
	if err != nil {
		return nil, err
	}

	var duration float64
	if kind == repository.AssetVideo {
		probeCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		duration, err = c.prober.Duration(probeCtx, localPath)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to probe video: %w", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	key := prefix + uuid.NewString() + ext
	opts := minio.PutObjectOptions{ContentType: contentType(ext)}

	var info minio.UploadInfo
	err = c.retry(ctx, "upload", func(ctx context.Context) error {
		var putErr error
		info, putErr = c.client.FPutObject(ctx, c.cfg.Bucket, key, localPath, opts)
		return putErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &repository.Asset{
		URL:      c.baseURL + key,
		Key:      key,
		Size:     info.Size,
		Duration: duration,
	}, nil
}

// Delete removes the asset behind a URL previously returned by Upload.
func (c *Client) Delete(ctx context.Context, assetURL string) error {
	key, err := c.KeyFromURL(assetURL)
	if err != nil {
		return err
	}

	err = c.retry(ctx, "delete", func(ctx context.Context) error {
		return c.client.RemoveObject(ctx, c.cfg.Bucket, key, minio.RemoveObjectOptions{})
	})
	status := metrics.MediaStatusSuccess
	if err != nil {
		status = metrics.MediaStatusError
	}
	metrics.MediaOperationsTotal.WithLabelValues(metrics.MediaOpDelete, kindOfKey(key), status).Inc()
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// KeyFromURL derives the object key from a hosted asset URL.
// Returns ErrObjectNotFound for URLs outside the configured bucket.
func (c *Client) KeyFromURL(assetURL string) (string, error) {
	key, ok := strings.CutPrefix(assetURL, c.baseURL)
	if !ok || key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %s", repository.ErrObjectNotFound, assetURL)
	}
	return key, nil
}

// Exists checks if an asset exists in the bucket.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.client.StatObject(ctx, c.cfg.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}

// Ping verifies the MinIO connection is alive by checking bucket access.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.client.BucketExists(ctx, c.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to ping minio: %w", err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.cfg.Bucket
}

// retry runs fn with a per-attempt timeout, backing off exponentially between
// attempts. Context cancellation by the caller stops retrying immediately.
func (c *Client) retry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	backoff := c.cfg.RetryBackoff
	var err error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		err = fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) || attempt == c.cfg.MaxAttempts {
			break
		}

		slog.Warn("media host call failed, retrying",
			slog.String("operation", op),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		if sleepErr := c.sleep(ctx, backoff); sleepErr != nil {
			return sleepErr
		}
		backoff *= 2
	}
	return err
}

// retryable reports whether a MinIO error may succeed on a later attempt.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch minio.ToErrorResponse(err).Code {
	case "AccessDenied", "NoSuchBucket", "InvalidAccessKeyId", "SignatureDoesNotMatch", "EntityTooLarge":
		return false
	}
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

const (
	videoPrefix = "videos/"
	imagePrefix = "images/"
)

func keyPrefix(kind repository.AssetKind) (string, error) {
	switch kind {
	case repository.AssetVideo:
		return videoPrefix, nil
	case repository.AssetImage:
		return imagePrefix, nil
	default:
		return "", fmt.Errorf("unknown asset kind %q", kind)
	}
}

func kindOfKey(key string) string {
	if strings.HasPrefix(key, videoPrefix) {
		return string(repository.AssetVideo)
	}
	return string(repository.AssetImage)
}

// videoContentTypes covers containers missing from the builtin mime table.
var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

func contentType(ext string) string {
	if ct, ok := videoContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
