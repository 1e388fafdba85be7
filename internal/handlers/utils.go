package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pius706975/poolseek-be/internal/apperr"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a success body with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse is a success body with a payload.
type DataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, DataResponse{Message: message, Data: data})
}

// renderError maps business errors onto their status code; anything untyped
// is reported as a 500 without leaking internals.
func renderError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		writeError(w, appErr.Status, appErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

// bearerToken extracts the token from the Authorization header. The bool is
// false when the header is absent or blank; callers on protected routes
// answer that case with 404 "User not found" rather than 401.
func bearerToken(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", false
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1]), true
	}
	return auth, true
}

// requireBearer applies the missing-header behavior shared by all protected
// routes.
func requireBearer(w http.ResponseWriter, r *http.Request) (string, bool) {
	tokenString, ok := bearerToken(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, MessageResponse{Message: "User not found"})
		return "", false
	}
	return tokenString, true
}
