package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nairp/resort-booking/internal/domain"
)

// errorDetail is the machine-readable error inside every failure envelope.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the failure envelope: {"success":false,"error":{...}}.
// Every response carries the success flag so clients can branch on it
// without inspecting status codes.
type errorResponse struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — headers are already written; nothing useful to do on failure.
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the HTTP status and error code the
// API contract defines, falling back to a generic 500 for anything
// unclassified (the slog middleware has already logged the request).
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorCode(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrInvalidQuote):
		writeErrorCode(w, http.StatusUnprocessableEntity, "invalid_quote", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeErrorCode(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrOrderCreation), errors.Is(err, domain.ErrGatewayFailed):
		writeErrorCode(w, http.StatusBadGateway, "order_creation_failed", unwrapMessage(err))
	case errors.Is(err, domain.ErrVerificationFailed):
		writeErrorCode(w, http.StatusBadRequest, "verification_failed", unwrapMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
	default:
		writeErrorCode(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// writeErrorCode writes the failure envelope with an explicit status and code.
func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// requestError writes the envelope for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeErrorCode(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.PricingService.BulkUpdate: validation error: no
// entries to update" → "no entries to update".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrInvalidQuote.Error(),
		domain.ErrOrderCreation.Error(),
		domain.ErrVerificationFailed.Error(),
	} {
		if i := strings.Index(msg, sentinel+": "); i >= 0 {
			return msg[i+len(sentinel)+2:]
		}
	}
	return msg
}
