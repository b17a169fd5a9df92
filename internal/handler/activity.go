package handler

import (
	"net/http"

	"github.com/nexuslan/arena/internal/activity"
	"github.com/nexuslan/arena/internal/domain"
)

// ActivityHandler serves the public activity feed
type ActivityHandler struct {
	service activity.Service
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service activity.Service) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// HandleFeed returns recent activity entries
// @Summary Activity feed
// @Description Returns recent gamification activity, newest first
// @Tags activity
// @Produce json
// @Param user_id query string false "Filter by user"
// @Param type query string false "Filter by activity type"
// @Param limit query int false "Maximum entries"
// @Param skip query int false "Entries to skip"
// @Success 200 {array} domain.ActivityEntry
// @Router /activity [get]
func (h *ActivityHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	limit, skip, ok := GetPaginationParams(r, w, 0)
	if !ok {
		return
	}

	filter := domain.ActivityFilter{
		UserID: r.URL.Query().Get("user_id"),
		Type:   domain.ActivityType(r.URL.Query().Get("type")),
		Limit:  limit,
		Skip:   skip,
	}

	entries, err := h.service.ListFeed(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "list activity feed", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
