package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// Form fields of video uploads.
const (
	fieldVideoFile = "videoFile"
	fieldThumbnail = "thumbnail"
)

type VideoDetailsRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc     usecase.VideoService
	uploads UploadConfig
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService, uploads UploadConfig) *VideoHandler {
	return &VideoHandler{svc: svc, uploads: uploads}
}

// List handles GET /api/v1/videos?query=&userId=&page=&limit=&sortBy=&sortType=
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r, model.VideoSortFields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var ownerID primitive.ObjectID
	if raw := strings.TrimSpace(r.URL.Query().Get("userId")); raw != "" {
		if ownerID, err = primitive.ObjectIDFromHex(raw); err != nil {
			handleServiceError(w, r, ErrInvalidID)
			return
		}
	}

	videos, err := h.svc.ListVideos(r.Context(), usecase.ListVideosInput{
		Query:    r.URL.Query().Get("query"),
		OwnerID:  ownerID,
		ViewerID: viewer(r),
		Page:     page,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPageResponse(videos, toVideoResponse), "Videos fetched successfully")
}

// Publish handles POST /api/v1/videos (multipart: videoFile, thumbnail, title, description)
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	files, err := stageUploads(w, r, h.uploads, fieldVideoFile, fieldThumbnail)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	defer files.cleanup()

	req := VideoDetailsRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := validate.Struct(req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	video, err := h.svc.PublishVideo(r.Context(), usecase.PublishVideoInput{
		OwnerID:       userID,
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     files.path(fieldVideoFile),
		ThumbnailPath: files.path(fieldThumbnail),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusCreated, toVideoResponse(video), "Video published successfully")
}

// Get handles GET /api/v1/videos/{videoId}. A successful read counts as a view.
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	viewerID := viewer(r)

	video, err := h.svc.GetVideo(r.Context(), videoID, viewerID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.svc.RecordView(r.Context(), videoID, viewerID); err != nil {
		slog.WarnContext(r.Context(), "failed to record view",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("video_id", videoID.Hex()),
			slog.String("error", err.Error()),
		)
	}

	Success(w, http.StatusOK, toVideoResponse(video), "Video fetched successfully")
}

// Update handles PATCH /api/v1/videos/{videoId} (multipart: title, description, optional thumbnail)
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	files, err := stageUploads(w, r, h.uploads, fieldThumbnail)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	defer files.cleanup()

	req := VideoDetailsRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := validate.Struct(req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	video, err := h.svc.UpdateVideo(r.Context(), usecase.UpdateVideoInput{
		VideoID:       videoID,
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailPath: files.path(fieldThumbnail),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toVideoResponse(video), "Video details updated successfully")
}

// Delete handles DELETE /api/v1/videos/{videoId}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), videoID, userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, nil, "Video deleted successfully")
}

// TogglePublish handles PATCH /api/v1/videos/toggle/publish/{videoId}
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	video, err := h.svc.TogglePublish(r.Context(), videoID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toVideoResponse(video), "Video publish status changed")
}
