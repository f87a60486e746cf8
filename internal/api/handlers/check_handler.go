package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"linkguard/internal/engine/urlcheck"
	"linkguard/internal/pkg/errors"
)

type CheckHandler struct {
	checker *urlcheck.Checker
}

func NewCheckHandler(checker *urlcheck.Checker) *CheckHandler {
	return &CheckHandler{checker: checker}
}

// Check handles POST /check-urls. The payload must carry "urls" as an array
// of strings; anything else is rejected before any work starts. The response
// always has one result per input URL, same order.
func (h *CheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URLs json.RawMessage `json:"urls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrInvalidInput.Error())
		return
	}

	var urls []string
	if req.URLs == nil || json.Unmarshal(req.URLs, &urls) != nil || urls == nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrInvalidInput.Error())
		return
	}

	// A client disconnect must not abort in-flight external calls; the batch
	// runs to completion regardless.
	results := h.checker.CheckBatch(context.WithoutCancel(r.Context()), urls)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
