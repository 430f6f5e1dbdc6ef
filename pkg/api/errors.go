package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeInvalidRequest  ErrorType = "invalid_request"
	ErrorTypeUnauthorized    ErrorType = "unauthorized"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeTooManyRequests ErrorType = "too_many_requests"
	ErrorTypeServerError     ErrorType = "server_error"
)

// APIError is a structured, machine-distinguishable API error. Code
// identifies the specific failure kind within a type (e.g. "expired"
// under unauthorized) so clients react to codes, not message text.
type APIError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level
// error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewUnauthorizedError creates an APIError for missing or invalid credentials.
func NewUnauthorizedError(code, message string) *APIError {
	return &APIError{Type: ErrorTypeUnauthorized, Code: code, Message: message}
}

// NewForbiddenError creates an APIError for authenticated but disallowed requests.
func NewForbiddenError(code, message string) *APIError {
	return &APIError{Type: ErrorTypeForbidden, Code: code, Message: message}
}

// NewNotFoundError creates an APIError for resources that cannot be found.
func NewNotFoundError(message string) *APIError {
	return &APIError{Type: ErrorTypeNotFound, Message: message}
}

// NewInvalidRequestError creates an APIError for requests the client can correct.
func NewInvalidRequestError(code, message string) *APIError {
	return &APIError{Type: ErrorTypeInvalidRequest, Code: code, Message: message}
}

// NewTooManyRequestsError creates an APIError for rate limiting.
func NewTooManyRequestsError(message string) *APIError {
	return &APIError{Type: ErrorTypeTooManyRequests, Message: message}
}

// NewServerError creates an APIError for internal server errors.
// Details stay in server logs; the client message is generic.
func NewServerError(message string) *APIError {
	return &APIError{Type: ErrorTypeServerError, Message: message}
}

// WriteError serializes an APIError to the response with the given status.
func WriteError(w http.ResponseWriter, status int, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: apiErr})
}

// WriteJSON serializes a success payload to the response.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
