package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Checker taxonomy. Per-item failures are folded into the item's own result;
// these sentinels cover the cases that surface as request-level errors or
// carry a fixed message.
var (
	ErrInvalidInput   = errors.New("Invalid input: URLs must be an array")
	ErrInvalidURL     = errors.New("invalid URL format")
	ErrScanIncomplete = errors.New("no scan results available")
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
