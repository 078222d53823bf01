package handler

import (
	"context"
	"debt-ledger/internal/api/handler/dto"
	"debt-ledger/internal/domain/session"
	"debt-ledger/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

// SessionManager is the part of session.Holder the auth endpoints drive.
type SessionManager interface {
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignUp(ctx context.Context, email, password, confirm string) (*session.Session, error)
	SignOut(ctx context.Context) error
	Principal() *session.Principal
}

type AuthHandler struct {
	sessions SessionManager
	logger   *slog.Logger
}

func NewAuthHandler(s SessionManager, l *slog.Logger) *AuthHandler {
	if s == nil {
		panic("session manager cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AuthHandler{
		sessions: s,
		logger:   l.With("component", "AuthHandler"),
	}
}

// SignIn handles POST /auth/signin
// @Summary Sign in
// @Description Authenticates with e-mail and password. The returned bearer token is required by every ledger endpoint.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse "Signed in"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Wrong e-mail or password"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	sess, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Sign in failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User signed in", slog.String("userID", sess.Principal.ID))
	respondJSON(w, http.StatusOK, dto.NewSessionResponse(sess))
}

// SignUp handles POST /auth/signup
// @Summary Create an account
// @Description Registers a new user and signs them in. Password and confirmation must match and have at least 6 characters.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "New account"
// @Success 201 {object} dto.SessionResponse "Account created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "E-mail already registered"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	sess, err := h.sessions.SignUp(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Sign up failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User signed up", slog.String("userID", sess.Principal.ID))
	respondJSON(w, http.StatusCreated, dto.NewSessionResponse(sess))
}

// SignOut handles POST /auth/signout
// @Summary Sign out
// @Description Ends the current session and clears the in-memory ledger.
// @Tags Authentication
// @Success 204 "Signed out"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /auth/signout [post]
// @Security BearerAuth
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Sign out failed", slog.Any("error", err))
		respondError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "User signed out")
	respondJSON(w, http.StatusNoContent, nil)
}

// CurrentSession handles GET /auth/session
// @Summary Current session
// @Description Reports whether a user is signed in.
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.CurrentSessionResponse "Session state"
// @Router /auth/session [get]
func (h *AuthHandler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.NewCurrentSessionResponse(h.sessions.Principal()))
}
