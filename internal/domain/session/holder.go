package session

import (
	"context"
	"debt-ledger/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type ChangeKind string

const (
	SignedIn  ChangeKind = "signed_in"
	SignedOut ChangeKind = "signed_out"
)

type Change struct {
	Kind      ChangeKind
	Principal *Principal
}

type subscriber struct {
	id int
	fn func(ctx context.Context, c Change)
}

// Holder tracks the signed-in principal of the process and fans session changes out to
// subscribers. State only changes in response to authenticator notifications.
type Holder struct {
	auth   Authenticator
	logger *slog.Logger

	mu          sync.RWMutex
	current     *Session
	subscribers []subscriber
	nextID      int
	unsubscribe func()
}

func NewHolder(auth Authenticator, logger *slog.Logger) *Holder {
	if auth == nil {
		panic("authenticator cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewHolder, using default stderr handler")
	}
	return &Holder{
		auth:   auth,
		logger: logger.With(slog.String("component", "sessionHolder")),
	}
}

// Start subscribes to the authenticator and adopts an existing valid session, if any.
func (h *Holder) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.unsubscribe == nil {
		h.unsubscribe = h.auth.Subscribe(h.handleAuthChange)
	}
	h.mu.Unlock()

	s, err := h.auth.CurrentSession(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "Could not query current session, staying signed out", slog.Any("error", err))
		return fmt.Errorf("failed to query current session: %w", err)
	}
	if s == nil {
		h.logger.InfoContext(ctx, "No existing session found")
		return nil
	}
	h.logger.InfoContext(ctx, "Existing session found", slog.String("principalID", s.Principal.ID))
	h.adopt(ctx, s)
	return nil
}

func (h *Holder) Stop() {
	h.mu.Lock()
	unsubscribe := h.unsubscribe
	h.unsubscribe = nil
	h.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Subscribe registers fn for every later session change.
func (h *Holder) Subscribe(fn func(ctx context.Context, c Change)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subscribers = append(h.subscribers, subscriber{id: id, fn: fn})
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subscribers {
			if s.id == id {
				h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (h *Holder) Principal() *Principal {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return nil
	}
	p := h.current.Principal
	return &p
}

func (h *Holder) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password", "password is required")
	}

	s, err := h.auth.SignIn(ctx, email, password)
	if err != nil {
		h.logger.WarnContext(ctx, "Sign in failed", slog.String("email", email), slog.Any("error", err))
		return nil, err
	}
	return s, nil
}

func (h *Holder) SignUp(ctx context.Context, email, password, confirm string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password", "password is required")
	}
	if password != confirm {
		return nil, apperrors.NewValidationError("confirmPassword", "passwords do not match")
	}
	if len(password) < MinPasswordLength {
		return nil, apperrors.NewValidationError("password", fmt.Sprintf("password must have at least %d characters", MinPasswordLength))
	}

	s, err := h.auth.SignUp(ctx, email, password)
	if err != nil {
		h.logger.WarnContext(ctx, "Sign up failed", slog.String("email", email), slog.Any("error", err))
		return nil, err
	}
	return s, nil
}

// SignOut asks the authenticator to end the session. Local state is cleared by the
// resulting change notification.
func (h *Holder) SignOut(ctx context.Context) error {
	if err := h.auth.SignOut(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Sign out failed", slog.Any("error", err))
		return err
	}
	return nil
}

func (h *Holder) handleAuthChange(ctx context.Context, s *Session) {
	if s == nil {
		h.clear(ctx)
		return
	}
	h.adopt(ctx, s)
}

func (h *Holder) adopt(ctx context.Context, s *Session) {
	h.mu.Lock()
	cp := *s
	h.current = &cp
	p := cp.Principal
	h.mu.Unlock()

	h.logger.InfoContext(ctx, "Session adopted", slog.String("principalID", p.ID))
	h.notify(ctx, Change{Kind: SignedIn, Principal: &p})
}

func (h *Holder) clear(ctx context.Context) {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()

	h.logger.InfoContext(ctx, "Session cleared")
	h.notify(ctx, Change{Kind: SignedOut})
}

func (h *Holder) notify(ctx context.Context, c Change) {
	h.mu.RLock()
	subs := make([]subscriber, len(h.subscribers))
	copy(subs, h.subscribers)
	h.mu.RUnlock()

	for _, s := range subs {
		s.fn(ctx, c)
	}
}
