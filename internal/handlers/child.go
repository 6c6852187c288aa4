package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"forma-backend/internal/middleware"
	"forma-backend/internal/models"
	"forma-backend/internal/services"
)

type ChildHandler struct {
	childService *services.ChildService
}

func NewChildHandler(childService *services.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	children, err := h.childService.List(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successList(children, len(children)))
}

func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
		return
	}

	child, err := h.childService.Get(r.Context(), id, middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, success(child))
}

func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	child, err := h.childService.Create(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, success(child))
}

func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
		return
	}

	var req models.UpdateChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	child, err := h.childService.Update(r.Context(), id, middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, success(child))
}

func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
		return
	}

	if err := h.childService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Child deleted"})
}

func (h *ChildHandler) AddDeviceEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
		return
	}

	var event models.DeviceEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if event.RecordedAt.IsZero() {
		event.RecordedAt = time.Now()
	}

	if err := h.childService.AddDeviceEvent(r.Context(), id, &event); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, success(event))
}

func (h *ChildHandler) ListDeviceEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
		return
	}

	events, err := h.childService.ListDeviceEvents(r.Context(), id, middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successList(events, len(events)))
}
