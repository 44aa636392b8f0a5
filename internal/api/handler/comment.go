package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// ContentRequest is the body of comment and tweet writes.
type ContentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// CommentHandler handles comment requests.
type CommentHandler struct {
	svc usecase.CommentService
}

func NewCommentHandler(svc usecase.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List handles GET /api/v1/comments/{videoId}
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	page, err := pageRequest(r, model.CommentSortFields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	comments, err := h.svc.ListVideoComments(r.Context(), videoID, viewer(r), page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPageResponse(comments, toCommentResponse), "Comments fetched successfully")
}

// Add handles POST /api/v1/comments/{videoId}
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
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
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	comment, err := h.svc.AddComment(r.Context(), videoID, userID, req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusCreated, toCommentResponse(comment), "Comment added successfully")
}

// Update handles PATCH /api/v1/comments/c/{commentId}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), commentID, userID, req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toCommentResponse(comment), "Comment updated successfully")
}

// Delete handles DELETE /api/v1/comments/c/{commentId}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), commentID, userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, nil, "Comment deleted successfully")
}
