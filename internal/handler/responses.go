package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// headers are already sent, so encoding failures can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	logger.FromContext(r.Context()).Warn(LogMsgServiceCallFailed, "operation", opName, "status", status, "error", err)
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgLocationNotFoundErr = "Location not found"
	ErrMsgUpstreamAuthError   = "The inventory server rejected the bridge credentials. Re-authentication required."
	ErrMsgUpstreamFailedError = "The inventory server did not accept the request. Please try again."
	ErrMsgUpstreamUnavailErr  = "The inventory server is temporarily unavailable. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Failures of the inventory server surface as 502/503 since the bridge is a gateway to it.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrLocationNotFound):
		return http.StatusNotFound, ErrMsgLocationNotFoundErr
	case errors.Is(err, domain.ErrReauthRequired), errors.Is(err, domain.ErrAuthFailed):
		return http.StatusBadGateway, ErrMsgUpstreamAuthError
	case errors.Is(err, domain.ErrOperationFailed), errors.Is(err, domain.ErrAPIFailed):
		return http.StatusBadGateway, ErrMsgUpstreamFailedError
	case errors.Is(err, domain.ErrUpdateFailed):
		return http.StatusServiceUnavailable, ErrMsgUpstreamUnavailErr
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
