package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// PlaylistService defines playlist operations. Only the owner may change a playlist.
type PlaylistService interface {
	CreatePlaylist(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*model.Playlist, error)
	UserPlaylists(ctx context.Context, userID primitive.ObjectID) ([]*model.Playlist, error)
	// GetPlaylist joins published videos, plus the viewer's own unpublished ones.
	GetPlaylist(ctx context.Context, playlistID, viewerID primitive.ObjectID) (*model.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID, userID primitive.ObjectID) (*model.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID, userID primitive.ObjectID) (*model.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlistID, userID primitive.ObjectID, name, description string) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID, userID primitive.ObjectID) error
}

type playlistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	users     repository.UserRepository
}

// NewPlaylistService creates a new PlaylistService instance.
func NewPlaylistService(
	playlists repository.PlaylistRepository,
	videos repository.VideoRepository,
	users repository.UserRepository,
) PlaylistService {
	return &playlistService{
		playlists: playlists,
		videos:    videos,
		users:     users,
	}
}

func (s *playlistService) CreatePlaylist(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*model.Playlist, error) {
	playlist, err := model.NewPlaylist(ownerID, name, description)
	if err != nil {
		return nil, err
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		if errors.Is(err, repository.ErrDuplicatePlaylist) {
			return nil, err
		}
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return playlist, nil
}

func (s *playlistService) UserPlaylists(ctx context.Context, userID primitive.ObjectID) ([]*model.Playlist, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	if playlists == nil {
		playlists = []*model.Playlist{}
	}
	return playlists, nil
}

func (s *playlistService) GetPlaylist(ctx context.Context, playlistID, viewerID primitive.ObjectID) (*model.Playlist, error) {
	return s.playlists.GetWithVideos(ctx, playlistID, viewerID)
}

func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID, userID primitive.ObjectID) (*model.Playlist, error) {
	if err := s.requireOwner(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.VisibleTo(userID) {
		return nil, repository.ErrVideoNotFound
	}

	playlist, added, err := s.playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyInPlaylist
	}
	return playlist, nil
}

// RemoveVideo is idempotent: removing a video that is not in the playlist succeeds.
func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID, userID primitive.ObjectID) (*model.Playlist, error) {
	if err := s.requireOwner(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	return s.playlists.RemoveVideo(ctx, playlistID, videoID)
}

func (s *playlistService) UpdatePlaylist(ctx context.Context, playlistID, userID primitive.ObjectID, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrEmptyPlaylistName
	}
	if err := s.requireOwner(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	return s.playlists.Update(ctx, playlistID, name, strings.TrimSpace(description))
}

func (s *playlistService) DeletePlaylist(ctx context.Context, playlistID, userID primitive.ObjectID) error {
	if err := s.requireOwner(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlists.Delete(ctx, playlistID)
}

func (s *playlistService) requireOwner(ctx context.Context, playlistID, userID primitive.ObjectID) error {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if !playlist.IsOwnedBy(userID) {
		return ErrForbidden
	}
	return nil
}
