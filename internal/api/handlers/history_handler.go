package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"linkguard/internal/pkg/errors"
	"linkguard/internal/platform/repositories"
)

type HistoryHandler struct {
	repo *repositories.HistoryRepository
}

func NewHistoryHandler(repo *repositories.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	records, err := h.repo.ListRecent(limit)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, "failed to load scan history")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
