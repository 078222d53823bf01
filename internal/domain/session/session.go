package session

import (
	"context"
	"debt-ledger/internal/pkg/apperrors"
	"fmt"
	"time"
)

const MinPasswordLength = 6

var ErrInvalidCredentials = fmt.Errorf("%w: e-mail ou senha incorretos", apperrors.ErrUnauthorized)

type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	Principal Principal `json:"principal"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Listener receives session changes. A nil session means the session ended.
type Listener func(ctx context.Context, s *Session)

// Authenticator is the backend session collaborator.
type Authenticator interface {
	CurrentSession(ctx context.Context) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	Subscribe(l Listener) (unsubscribe func())
}
