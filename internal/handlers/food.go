package handlers

import (
	"encoding/json"
	"net/http"

	"forma-backend/internal/middleware"
	"forma-backend/internal/models"
	"forma-backend/internal/services"
)

type FoodHandler struct {
	foodService *services.FoodService
}

func NewFoodHandler(foodService *services.FoodService) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

func (h *FoodHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddFoodLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	log, err := h.foodService.Add(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, success(log))
}

func (h *FoodHandler) ListByChild(w http.ResponseWriter, r *http.Request) {
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

	logs, err := h.foodService.ListByChild(r.Context(), childID, from, to)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successList(logs, len(logs)))
}

func (h *FoodHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	logs, err := h.foodService.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successList(logs, len(logs)))
}

func (h *FoodHandler) Summary(w http.ResponseWriter, r *http.Request) {
	childID, ok := urlUUID(r, "childId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid child ID", r))
		return
	}

	summary, err := h.foodService.GetSummary(r.Context(), childID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, success(summary))
}

func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid log ID", r))
		return
	}

	if err := h.foodService.Delete(r.Context(), id, middleware.GetUserID(r.Context()), middleware.GetRole(r.Context())); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Log deleted"})
}
