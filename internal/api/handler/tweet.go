package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// TweetHandler handles tweet requests.
type TweetHandler struct {
	svc usecase.TweetService
}

func NewTweetHandler(svc usecase.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

// Create handles POST /api/v1/tweets
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	tweet, err := h.svc.CreateTweet(r.Context(), userID, req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusCreated, toTweetResponse(tweet), "Tweet created successfully")
}

// ListByUser handles GET /api/v1/tweets/user/{userId}
func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	page, err := pageRequest(r, model.TweetSortFields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	tweets, err := h.svc.UserTweets(r.Context(), userID, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPageResponse(tweets, toTweetResponse), "Tweets fetched successfully")
}

// Update handles PATCH /api/v1/tweets/{tweetId}
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	tweetID, err := pathID(r, "tweetId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	tweet, err := h.svc.UpdateTweet(r.Context(), tweetID, userID, req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toTweetResponse(tweet), "Tweet updated successfully")
}

// Delete handles DELETE /api/v1/tweets/{tweetId}
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	tweetID, err := pathID(r, "tweetId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.svc.DeleteTweet(r.Context(), tweetID, userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, nil, "Tweet deleted successfully")
}
