package repository

import "context"

// AssetKind selects where and how an uploaded file is hosted.
type AssetKind string

const (
	AssetVideo AssetKind = "video"
	AssetImage AssetKind = "image"
)

// Asset describes a file after it has been hosted.
type Asset struct {
	URL      string
	Key      string
	Size     int64
	Duration float64 // seconds; zero for images
}

// MediaHost defines the interface for hosting user-uploaded media.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type MediaHost interface {
	// Upload hosts the local file at localPath and returns its stable URL and metadata.
	// The local file is left in place; callers own its removal.
	Upload(ctx context.Context, localPath string, kind AssetKind) (*Asset, error)

	// Delete removes the asset identified by its hosted URL.
	// Returns ErrObjectNotFound if the URL does not point at a hosted asset.
	Delete(ctx context.Context, url string) error
}
