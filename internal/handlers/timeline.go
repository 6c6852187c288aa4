package handlers

import (
	"net/http"
	"time"

	"forma-backend/internal/services"
)

type TimelineHandler struct {
	timelineService *services.TimelineService
}

func NewTimelineHandler(timelineService *services.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineService: timelineService}
}

// Get returns one day's merged activity feed for a child. The optional
// date query parameter is YYYY-MM-DD in server-local time; it defaults
// to today.
func (h *TimelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	childID, ok := urlUUID(r, "childId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
		return
	}

	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Date must be YYYY-MM-DD", r))
			return
		}
		date = &parsed
	}

	entries, err := h.timelineService.GetTimeline(r.Context(), childID, date)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successList(entries, len(entries)))
}
