package middleware

import (
	"context"
	"debt-ledger/internal/config"
	"debt-ledger/internal/domain/session"
	"debt-ledger/internal/infrastructure/auth"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type principalKey struct{}

type TokenVerifier interface {
	ParseToken(token string) (*auth.Claims, error)
}

type PrincipalSource interface {
	Principal() *session.Principal
}

// AuthMiddleware accepts a bearer token only if it belongs to the session the process
// currently holds.
func AuthMiddleware(cfg config.AuthConfig, verifier TokenVerifier, current PrincipalSource, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := authenticate(r, verifier, current, logger)
			if !ok {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
		})
	}
}

// PrincipalFrom returns the principal stored by AuthMiddleware.
func PrincipalFrom(ctx context.Context) (session.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(session.Principal)
	return p, ok
}

func authenticate(r *http.Request, verifier TokenVerifier, current PrincipalSource, logger *slog.Logger) (session.Principal, bool) {
	ctx := r.Context()
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.WarnContext(ctx, "AuthMiddleware: Missing Authorization header")
		return session.Principal{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logger.WarnContext(ctx, "AuthMiddleware: Invalid Authorization header format")
		return session.Principal{}, false
	}

	claims, err := verifier.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		logger.WarnContext(ctx, "AuthMiddleware: Invalid token", "error", err)
		return session.Principal{}, false
	}

	p := current.Principal()
	if p == nil || p.ID != claims.Subject {
		logger.WarnContext(ctx, "AuthMiddleware: Token does not belong to the active session", "subject", claims.Subject)
		return session.Principal{}, false
	}

	logger.DebugContext(ctx, "AuthMiddleware: Authenticated request", "principalID", p.ID)
	return *p, true
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"message": "Unauthorized"},
	})
}
