package handlers

import (
	"encoding/json"
	"net/http"

	"forma-backend/internal/middleware"
	"forma-backend/internal/models"
	"forma-backend/internal/services"
)

type DiaperHandler struct {
	diaperService *services.DiaperService
}

func NewDiaperHandler(diaperService *services.DiaperService) *DiaperHandler {
	return &DiaperHandler{diaperService: diaperService}
}

func (h *DiaperHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddDiaperLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	log, err := h.diaperService.Add(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, success(log))
}

func (h *DiaperHandler) ListByChild(w http.ResponseWriter, r *http.Request) {
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

	logs, err := h.diaperService.ListByChild(r.Context(), childID, from, to)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successList(logs, len(logs)))
}

func (h *DiaperHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	logs, err := h.diaperService.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successList(logs, len(logs)))
}

func (h *DiaperHandler) Summary(w http.ResponseWriter, r *http.Request) {
	childID, ok := urlUUID(r, "childId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
		return
	}

	summary, err := h.diaperService.GetSummary(r.Context(), childID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, success(summary))
}

// CheckOverdue runs an on-demand overdue sweep and returns the findings
// without sending notifications.
func (h *DiaperHandler) CheckOverdue(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.diaperService.CheckOverdue(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successList(alerts, len(alerts)))
}

func (h *DiaperHandler) Audit(w http.ResponseWriter, r *http.Request) {
	report, err := h.diaperService.Audit(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, success(report))
}

func (h *DiaperHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid log ID", r))
		return
	}

	if err := h.diaperService.Delete(r.Context(), id, middleware.GetUserID(r.Context()), middleware.GetRole(r.Context())); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Log deleted"})
}
