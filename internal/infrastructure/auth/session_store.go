package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"debt-ledger/internal/pkg/apperrors"

	"github.com/redis/go-redis/v9"
)

const defaultSessionKey = "debt-ledger:session"

// SessionStore keeps the token of the process-wide session so it survives restarts.
type SessionStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	// Load returns "" when no session is stored.
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type RedisSessionStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisSessionStore(client redis.Cmdable) *RedisSessionStore {
	if client == nil {
		panic("redis client cannot be nil for RedisSessionStore")
	}
	return &RedisSessionStore{client: client, key: defaultSessionKey}
}

func (s *RedisSessionStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to store session: %w", apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: failed to load session: %w", apperrors.ErrInternalServer, err)
	}
	return token, nil
}

func (s *RedisSessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: failed to clear session: %w", apperrors.ErrInternalServer, err)
	}
	return nil
}

type MemorySessionStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{now: time.Now}
}

func (s *MemorySessionStore) Save(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = time.Time{}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		s.token = ""
		s.expiresAt = time.Time{}
	}
	return s.token, nil
}

func (s *MemorySessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}
