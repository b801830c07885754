package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-auth error
type ErrorResponse struct {
	Success bool                   `json:"success"`
	Error   int                    `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// AuthErrorResponse is the body of every guard rejection. Message carries the
// machine-readable code and the human-readable description.
type AuthErrorResponse struct {
	Success bool             `json:"success"`
	Error   int              `json:"error"`
	Message AuthErrorMessage `json:"message"`
}

// AuthErrorMessage is the message object of AuthErrorResponse
type AuthErrorMessage struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// statusMessages are the fixed messages returned for each error status
var statusMessages = map[int]string{
	http.StatusBadRequest:          "unprocessable",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// StatusMessage returns the fixed message for status
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes {"success": true, key: value}
func WriteSuccess(w http.ResponseWriter, status int, key string, value interface{}) error {
	return WriteJSON(w, status, map[string]interface{}{
		"success": true,
		key:       value,
	})
}

// WriteError writes the error body for status with its fixed message
func WriteError(w http.ResponseWriter, status int, details map[string]interface{}) error {
	return WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: StatusMessage(status),
		Details: details,
	})
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, details map[string]interface{}) error {
	return WriteError(w, http.StatusBadRequest, details)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter) error {
	return WriteError(w, http.StatusNotFound, nil)
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed response
func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteError(w, http.StatusMethodNotAllowed, nil)
}

// WriteUnprocessable writes a 422 Unprocessable Entity response
func WriteUnprocessable(w http.ResponseWriter, details map[string]interface{}) error {
	return WriteError(w, http.StatusUnprocessableEntity, details)
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter) error {
	return WriteError(w, http.StatusInternalServerError, nil)
}

// WriteUnauthorized writes a 401 guard rejection
func WriteUnauthorized(w http.ResponseWriter, code, description string) error {
	return WriteJSON(w, http.StatusUnauthorized, AuthErrorResponse{
		Success: false,
		Error:   http.StatusUnauthorized,
		Message: AuthErrorMessage{Code: code, Description: description},
	})
}
