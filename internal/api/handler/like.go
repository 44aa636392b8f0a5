package handler

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type LikeStatusResponse struct {
	IsLiked bool `json:"isLiked"`
}

// LikeHandler handles like toggles and the liked-videos listing.
type LikeHandler struct {
	svc usecase.LikeService
}

func NewLikeHandler(svc usecase.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// ToggleVideo handles POST /api/v1/likes/toggle/v/{videoId}
func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoId", h.svc.ToggleVideoLike, "Video")
}

// ToggleComment handles POST /api/v1/likes/toggle/c/{commentId}
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentId", h.svc.ToggleCommentLike, "Comment")
}

// ToggleTweet handles POST /api/v1/likes/toggle/t/{tweetId}
func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "tweetId", h.svc.ToggleTweetLike, "Tweet")
}

// LikedVideos handles GET /api/v1/likes/videos
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	page, err := pageRequest(r, model.LikedVideoSortFields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	liked, err := h.svc.LikedVideos(r.Context(), userID, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPageResponse(liked, toLikedVideoResponse), "Liked videos fetched successfully")
}

func (h *LikeHandler) toggle(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	toggle func(ctx context.Context, targetID, userID primitive.ObjectID) (bool, error),
	noun string,
) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	targetID, err := pathID(r, param)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	liked, err := toggle(r.Context(), targetID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	message := noun + " unliked successfully"
	if liked {
		message = noun + " liked successfully"
	}
	Success(w, http.StatusOK, LikeStatusResponse{IsLiked: liked}, message)
}
