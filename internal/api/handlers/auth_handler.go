package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pranto48/lifeos-backend/internal/auth"
	appErr "github.com/pranto48/lifeos-backend/pkg/errors"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type sessionResponse struct {
	Token string        `json:"token,omitempty"`
	User  *auth.Account `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeAuthError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, account, err := h.svc.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeAuthError(w, statusFor(err), appErr.MessageOf(err, "Registration failed"))
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: account})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeAuthError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, account, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, statusFor(err), appErr.MessageOf(err, "Login failed"))
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: account})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeAuthError(w, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	account, err := h.svc.Session(r.Context(), token)
	if err != nil {
		writeAuthError(w, statusFor(err), appErr.MessageOf(err, "Invalid session"))
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: account})
}

// Logout is stateless: tokens stay valid until they expire, the client just
// discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) string {
	ah := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return ""
	}
	return strings.TrimSpace(ah[len("Bearer "):])
}
