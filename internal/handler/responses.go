package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/logger"
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

	// Headers are already sent, so encode failures can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeResponseFailed, "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteResponseFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the status and message mapped from it
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError     = "Something went wrong"
	ErrMsgUnknownError           = "Unknown error"
	ErrMsgInvalidRequestError    = "Invalid request. Please check your inputs."
	ErrMsgConnectionNotFoundErr  = "Provider is not connected"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgInvalidProviderError   = "Unsupported provider"
	ErrMsgSyncInProgressError    = "A sync is already running for this provider"
	ErrMsgSyncDisabledError      = "Sync is disabled for this provider"
	ErrMsgReconnectRequiredError = "Provider authorization expired. Please reconnect."
	ErrMsgProviderRateLimitedErr = "Provider rate limit reached. Please try again later."
	ErrMsgProviderUnavailableErr = "Provider is temporarily unavailable. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Store and unknown errors never leak their text.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrInvalidProvider):
		return http.StatusBadRequest, ErrMsgInvalidProviderError
	case errors.Is(err, domain.ErrConnectionNotFound):
		return http.StatusNotFound, ErrMsgConnectionNotFoundErr
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrSyncInProgress):
		return http.StatusConflict, ErrMsgSyncInProgressError
	case errors.Is(err, domain.ErrSyncDisabled):
		return http.StatusConflict, ErrMsgSyncDisabledError
	case errors.Is(err, domain.ErrAuthenticationExpired),
		errors.Is(err, domain.ErrNoRefreshToken),
		errors.Is(err, domain.ErrTokenRefreshFailed):
		return http.StatusConflict, ErrMsgReconnectRequiredError
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrMsgProviderRateLimitedErr
	case errors.Is(err, domain.ErrProviderAPI):
		return http.StatusBadGateway, ErrMsgProviderUnavailableErr
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
