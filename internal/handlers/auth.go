package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ems-dash/apiserver/internal/services"
	"github.com/ems-dash/apiserver/internal/store"
)

// AuthHandler provides cookie-session authentication endpoints.
type AuthHandler struct {
	userService *services.UserService
	session     SessionConfig
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, session SessionConfig) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		session:     session,
	}
}

type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// SessionUser is the identity subset returned to clients.
type SessionUser struct {
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
}

type CheckAuthResponse struct {
	Authenticated bool    `json:"authenticated"`
	User          *Claims `json:"user,omitempty"`
}

// Login verifies credentials against the store and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "All fields are required!"})
		return
	}
	if req.UserName == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "All fields are required!"})
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: err.Error()})
		return
	}

	token, err := issueToken(user, h.session.Secret, sessionTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: err.Error()})
		return
	}

	http.SetCookie(w, h.session.sessionCookie(token, int(sessionTTL.Seconds())))
	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		User: SessionUser{
			UserID:   user.UserID,
			UserName: user.UserName,
			Role:     user.Role,
		},
	})
}

// CheckAuth is a probe: it reports whether the request carries a valid
// session but never produces an error status.
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		writeJSON(w, http.StatusOK, CheckAuthResponse{Authenticated: false})
		return
	}

	claims, err := parseClaims(cookie.Value, h.session.Secret)
	if err != nil {
		writeJSON(w, http.StatusOK, CheckAuthResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, CheckAuthResponse{Authenticated: true, User: claims})
}

// Logout clears the session cookie. Idempotent: clearing with no active
// session is still a success.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.session.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}
