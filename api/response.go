package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/export"
	"github.com/0xalexb/confedit/store"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// Error codes.
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeKeyNotFound      = "KEY_NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeParse            = "PARSE_ERROR"
	ErrCodeTooLarge         = "REQUEST_TOO_LARGE"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeEditError maps a store or export error onto the status taxonomy.
func writeEditError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	detail := ErrorDetail{Code: code, Message: err.Error()}

	var editErr *store.EditError
	if errors.As(err, &editErr) && len(editErr.Path) > 0 {
		detail.Path = editErr.Path.String()
	}

	writeJSON(w, status, ErrorResponse{Error: detail})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrWrongKind):
		return http.StatusBadRequest, ErrCodeInvalidRequest
	case errors.Is(err, store.ErrNoDocument), errors.Is(err, export.ErrUnknownHandle):
		return http.StatusNotFound, ErrCodeNotFound
	}

	switch document.KindOf(err) {
	case document.KindKeyNotFound:
		return http.StatusNotFound, ErrCodeKeyNotFound
	case document.KindValidation:
		return http.StatusUnprocessableEntity, ErrCodeValidation
	case document.KindParse:
		return http.StatusBadRequest, ErrCodeParse
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
