package handlers

import (
	"encoding/json"
	"net/http"

	"forma-backend/internal/middleware"
	"forma-backend/internal/models"
	"forma-backend/internal/services"
)

// SessionHandler serves the sleep, play and cry lifecycle endpoints.
// Each method takes the session kind and returns the handler for it, so
// the router mounts the same code three times.
type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) Start(kind models.SessionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.StartSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
			return
		}

		session, err := h.sessionService.Start(r.Context(), middleware.GetUserID(r.Context()), kind, req)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, success(session))
	}
}

func (h *SessionHandler) End(kind models.SessionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlUUID(r, "id")
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
			return
		}

		var req models.EndSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
			return
		}

		session, err := h.sessionService.End(r.Context(), id, kind, req)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, success(session))
	}
}

func (h *SessionHandler) Summary(kind models.SessionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, ok := urlUUID(r, "childId")
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
			return
		}

		summary, err := h.sessionService.GetSummary(r.Context(), childID, kind)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, success(summary))
	}
}

func (h *SessionHandler) List(kind models.SessionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, ok := urlUUID(r, "childId")
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
			return
		}

		from, err := timeQuery(r, "from")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid from timestamp", r))
			return
		}
		to, err := timeQuery(r, "to")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid to timestamp", r))
			return
		}

		sessions, err := h.sessionService.List(r.Context(), childID, kind, from, to)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, successList(sessions, len(sessions)))
	}
}

func (h *SessionHandler) Delete(kind models.SessionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlUUID(r, "id")
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
			return
		}

		if err := h.sessionService.Delete(r.Context(), id, kind, middleware.GetUserID(r.Context()), middleware.GetRole(r.Context())); err != nil {
			handleServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Log deleted"})
	}
}
