package http

import (
	"encoding/json"
	"net/http"

	"github.com/openclass/class-service/internal/service"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	coordinator *service.Coordinator
}

func NewHandler(coordinator *service.Coordinator) *Handler {
	return &Handler{coordinator: coordinator}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /rooms/{id}
func (h *Handler) GetRoomStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stats, ok := h.coordinator.Stats(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
