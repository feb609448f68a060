package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"customblog/internal/middleware"
	"customblog/internal/models"
	"customblog/internal/session"
	"customblog/internal/store"
)

// MemberFinder looks members up by their sign-in email.
type MemberFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
}

// SessionManager starts and ends member sessions.
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions SessionManager
	members  MemberFinder
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions SessionManager, members MemberFinder) *Auth {
	return &Auth{sessions: sessions, members: members}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the member's credentials and starts a session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := a.members.FindByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if m == nil || !store.CheckPassword(m, req.Password) {
		slog.Info("login failed", "email", req.Email)
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		MemberID:    m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("member logged in", "member_id", m.ID)
	writeJSON(w, http.StatusOK, m)
}

// Logout ends the current session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in member's session identity.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
