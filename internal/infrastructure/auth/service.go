package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"debt-ledger/internal/config"
	"debt-ledger/internal/domain/session"
	"debt-ledger/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = 24 * time.Hour
	tokenIssuer     = "debt-ledger"
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service authenticates users against the users table and issues HS256 tokens.
// It is the session.Authenticator of the process.
type Service struct {
	users    UserStore
	sessions SessionStore
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu        sync.Mutex
	listeners map[int]session.Listener
	nextID    int
}

var _ session.Authenticator = (*Service)(nil)

func NewService(users UserStore, sessions SessionStore, cfg config.AuthConfig, logger *slog.Logger) *Service {
	if users == nil {
		panic("user store cannot be nil")
	}
	if sessions == nil {
		sessions = NewMemorySessionStore()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to auth.NewService, using default stderr handler")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Service{
		users:     users,
		sessions:  sessions,
		secret:    []byte(cfg.JWTSecret),
		ttl:       ttl,
		now:       time.Now,
		logger:    logger.With("component", "AuthService"),
		listeners: make(map[int]session.Listener),
	}
}

func (s *Service) CurrentSession(ctx context.Context) (*session.Session, error) {
	token, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	claims, err := s.ParseToken(token)
	if err != nil {
		s.logger.InfoContext(ctx, "Stored session is no longer valid, discarding", slog.Any("error", err))
		if clearErr := s.sessions.Clear(ctx); clearErr != nil {
			s.logger.WarnContext(ctx, "Failed to discard stored session", slog.Any("error", clearErr))
		}
		return nil, nil
	}

	user, err := s.users.FindUserByID(ctx, claims.Subject)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.WrapRemoteError(err, "failed to load session user")
	}

	return &session.Session{
		Principal: session.Principal{ID: user.ID, Email: user.Email},
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	email = normalizeEmail(email)
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, session.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.WrapRemoteError(err, "failed to sign in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, session.ErrInvalidCredentials
	}

	return s.start(ctx, user)
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*session.Session, error) {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %w", apperrors.ErrInternalServer, err)
	}

	user, err := s.users.CreateUser(ctx, email, string(hash))
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		return nil, fmt.Errorf("%w: e-mail já cadastrado", apperrors.ErrAlreadyExists)
	}
	if err != nil {
		return nil, apperrors.WrapRemoteError(err, "failed to sign up")
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("userID", user.ID))
	return s.start(ctx, user)
}

func (s *Service) SignOut(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Session terminated")
	s.emit(ctx, nil)
	return nil
}

func (s *Service) Subscribe(l session.Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// ParseToken validates signature, issuer and expiry of a bearer token.
func (s *Service) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	return claims, nil
}

func (s *Service) start(ctx context.Context, user *User) (*session.Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to sign token: %w", apperrors.ErrInternalServer, err)
	}

	if err := s.sessions.Save(ctx, token, s.ttl); err != nil {
		return nil, err
	}

	sess := &session.Session{
		Principal: session.Principal{ID: user.ID, Email: user.Email},
		Token:     token,
		ExpiresAt: expiresAt,
	}
	s.logger.InfoContext(ctx, "Session started", slog.String("userID", user.ID))
	s.emit(ctx, sess)
	return sess, nil
}

func (s *Service) emit(ctx context.Context, sess *session.Session) {
	s.mu.Lock()
	listeners := make([]session.Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, sess)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
