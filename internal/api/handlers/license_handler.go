package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pranto48/lifeos-backend/internal/auth"
	"github.com/pranto48/lifeos-backend/internal/license"
	appErr "github.com/pranto48/lifeos-backend/pkg/errors"
)

type LicenseHandler struct {
	svc  *license.Service
	auth *auth.Service
}

func NewLicenseHandler(svc *license.Service, authSvc *auth.Service) *LicenseHandler {
	return &LicenseHandler{svc: svc, auth: authSvc}
}

func (h *LicenseHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LicenseKey string `json:"license_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOpError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.LicenseKey == "" {
		writeOpError(w, http.StatusBadRequest, "license_key is required")
		return
	}

	// Caller identity is best effort: the portal accepts an empty user id.
	userID := h.auth.UserID(bearerToken(r))

	payload, err := h.svc.Verify(r.Context(), req.LicenseKey, userID)
	if err != nil {
		writeOpError(w, statusFor(err), appErr.MessageOf(err, "License verification failed"))
		return
	}

	// The portal payload is passed through opaque: its shape belongs to the
	// portal, not to this backend.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *LicenseHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": license.StatusHint,
	})
}
