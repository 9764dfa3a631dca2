package httputil

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"moviweb/internal/apperror"
)

// Error codes matching API specification
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeBadGateway   = "UPSTREAM_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing useful left to do.
			return
		}
	}
}

// WriteError writes an error response matching API spec format:
// {"error": {"code": "ERROR_CODE", "message": "Human readable message"}}
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	response := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
	WriteJSON(w, status, response)
}

// WriteAppError translates a service-layer error into a response. 4xx kinds
// carry their own corrective message to the user; 5xx kinds answer with a
// generic "try again" message and keep the detail in the server log.
func WriteAppError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		log.Printf("[HTTP] Unclassified error: %v", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternal, "Something went wrong. Please try again.")
		return
	}

	switch {
	case errors.Is(appErr, apperror.ErrValidation):
		WriteError(w, appErr.Status, ErrCodeBadRequest, appErr.Message)
	case errors.Is(appErr, apperror.ErrAuth):
		WriteError(w, appErr.Status, ErrCodeUnauthorized, appErr.Message)
	case errors.Is(appErr, apperror.ErrNotFound):
		WriteError(w, appErr.Status, ErrCodeNotFound, appErr.Message)
	case errors.Is(appErr, apperror.ErrExternal):
		log.Printf("[HTTP] Upstream failure: %s: %v", appErr.Message, appErr.Cause)
		WriteError(w, appErr.Status, ErrCodeBadGateway, "The movie information service is unavailable. Please try again later.")
	default:
		log.Printf("[HTTP] Persistence failure: %s: %v", appErr.Message, appErr.Cause)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternal, "Something went wrong. Please try again.")
	}
}

// Common error response helpers

// WriteBadRequest writes a 400 Bad Request error
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// WriteUnauthorized writes a 401 Unauthorized error
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// WriteUnauthorizedWithCode writes a 401 Unauthorized error with a custom code
func WriteUnauthorizedWithCode(w http.ResponseWriter, code string, message string) {
	WriteError(w, http.StatusUnauthorized, code, message)
}

// WriteNotFound writes a 404 Not Found error
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}
