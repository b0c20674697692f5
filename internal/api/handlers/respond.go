// Package handlers holds the HTTP surface. Two error body shapes coexist on
// purpose: auth routes answer {"error": message}, setup and license routes
// answer {"success": false, "message": message}. The frontend consumes both.
package handlers

import (
	"encoding/json"
	"net/http"

	appErr "github.com/pranto48/lifeos-backend/pkg/errors"
	"github.com/pranto48/lifeos-backend/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("response encode failed")
	}
}

// writeAuthError emits the auth-route error shape.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeOpError emits the setup/license error shape.
func writeOpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

// statusFor maps an application error code to an HTTP status.
func statusFor(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict:
		return http.StatusConflict
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
