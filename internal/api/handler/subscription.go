package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/usecase"
)

type SubscriptionStatusResponse struct {
	IsSubscribed bool `json:"isSubscribed"`
}

// SubscriptionHandler handles channel subscription requests.
type SubscriptionHandler struct {
	svc usecase.SubscriptionService
}

func NewSubscriptionHandler(svc usecase.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Toggle handles POST /api/v1/subscriptions/c/{channelId}
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	channelID, err := pathID(r, "channelId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	subscribed, err := h.svc.ToggleSubscription(r.Context(), channelID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	message := "Channel unsubscribed successfully"
	if subscribed {
		message = "Channel subscribed successfully"
	}
	Success(w, http.StatusOK, SubscriptionStatusResponse{IsSubscribed: subscribed}, message)
}

// Subscribers handles GET /api/v1/subscriptions/c/{channelId}
func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	list, err := h.svc.ChannelSubscribers(r.Context(), channelID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, SubscribersResponse{
		Count:       list.Count,
		Subscribers: toSubscriptionResponses(list.Subscribers),
	}, "Subscribers fetched successfully")
}

// SubscribedChannels handles GET /api/v1/subscriptions/u/{subscriberId}
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := pathID(r, "subscriberId")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	subs, err := h.svc.SubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toSubscriptionResponses(subs), "Subscribed channels fetched successfully")
}
