package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// DashboardHandler reports on the caller's own channel.
type DashboardHandler struct {
	svc usecase.DashboardService
}

func NewDashboardHandler(svc usecase.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	stats, err := h.svc.ChannelStats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, ChannelStatsResponse{
		TotalVideos:      stats.TotalVideos,
		TotalViews:       stats.TotalViews,
		TotalSubscribers: stats.TotalSubscribers,
		TotalLikes:       stats.TotalLikes,
	}, "Channel stats fetched successfully")
}

// Videos handles GET /api/v1/dashboard/videos
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	page, err := pageRequest(r, model.VideoSortFields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	videos, err := h.svc.ChannelVideos(r.Context(), userID, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toPageResponse(videos, toVideoResponse), "Channel videos fetched successfully")
}
