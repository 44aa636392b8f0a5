package handler

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/usecase"
)

type PlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
}

// PlaylistHandler handles playlist requests.
type PlaylistHandler struct {
	svc usecase.PlaylistService
}

func NewPlaylistHandler(svc usecase.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// Create handles POST /api/v1/playlist
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	var req PlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.CreatePlaylist(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusCreated, toPlaylistResponse(playlist), "Playlist created successfully")
}

// ListByUser handles GET /api/v1/playlist/user/{userId}
func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	playlists, err := h.svc.UserPlaylists(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := make([]PlaylistResponse, 0, len(playlists))
	for _, p := range playlists {
		resp = append(resp, toPlaylistResponse(p))
	}
	Success(w, http.StatusOK, resp, "Playlists fetched successfully")
}

// Get handles GET /api/v1/playlist/{playlistId}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.GetPlaylist(r.Context(), playlistID, viewer(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPlaylistResponse(playlist), "Playlist fetched successfully")
}

// AddVideo handles PATCH /api/v1/playlist/add/{videoId}/{playlistId}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	userID, playlistID, videoID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}

	playlist, err := h.svc.AddVideo(r.Context(), playlistID, videoID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPlaylistResponse(playlist), "Video added to playlist")
}

// RemoveVideo handles PATCH /api/v1/playlist/remove/{videoId}/{playlistId}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	userID, playlistID, videoID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}

	playlist, err := h.svc.RemoveVideo(r.Context(), playlistID, videoID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPlaylistResponse(playlist), "Video removed from playlist")
}

// Update handles PATCH /api/v1/playlist/{playlistId}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	var req PlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.UpdatePlaylist(r.Context(), playlistID, userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPlaylistResponse(playlist), "Playlist updated successfully")
}

// Delete handles DELETE /api/v1/playlist/{playlistId}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.svc.DeletePlaylist(r.Context(), playlistID, userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, nil, "Playlist deleted successfully")
}

func (h *PlaylistHandler) membershipParams(w http.ResponseWriter, r *http.Request) (userID, playlistID, videoID primitive.ObjectID, ok bool) {
	var err error
	if userID, err = currentUser(r); err == nil {
		if playlistID, err = pathID(r, "playlistId"); err == nil {
			videoID, err = pathID(r, "videoId")
		}
	}
	if err != nil {
		handleServiceError(w, r, err)
		return userID, playlistID, videoID, false
	}
	return userID, playlistID, videoID, true
}
