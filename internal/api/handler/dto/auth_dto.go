package dto

import (
	"debt-ledger/internal/domain/session"
	"time"
)

type SignInRequest struct {
	Email    string `json:"email" example:"dona.maria@mercearia.com"`
	Password string `json:"password" example:"segredo"`
}

type SignUpRequest struct {
	Email           string `json:"email" example:"dona.maria@mercearia.com"`
	Password        string `json:"password" example:"segredo"`
	ConfirmPassword string `json:"confirmPassword" example:"segredo"`
}

type PrincipalResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SessionResponse struct {
	User      PrincipalResponse `json:"user"`
	Token     string            `json:"token,omitempty"`
	TokenType string            `json:"tokenType,omitempty"`
	ExpiresAt *time.Time        `json:"expiresAt,omitempty"`
}

type CurrentSessionResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *PrincipalResponse `json:"user,omitempty"`
}

func NewSessionResponse(s *session.Session) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	resp := SessionResponse{
		User:      PrincipalResponse{ID: s.Principal.ID, Email: s.Principal.Email},
		Token:     s.Token,
		TokenType: "Bearer",
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt.UTC()
		resp.ExpiresAt = &exp
	}
	return resp
}

func NewCurrentSessionResponse(p *session.Principal) CurrentSessionResponse {
	if p == nil {
		return CurrentSessionResponse{}
	}
	return CurrentSessionResponse{
		Authenticated: true,
		User:          &PrincipalResponse{ID: p.ID, Email: p.Email},
	}
}
