package postgres

import (
	"context"
	"log/slog"
	"os"

	"debt-ledger/internal/infrastructure/auth"
)

const (
	insertUserQuery = `
        INSERT INTO users (email, password_hash)
        VALUES ($1, $2)
        RETURNING id::text, email, password_hash, created_at`

	findUserByEmailQuery = `SELECT id::text, email, password_hash, created_at FROM users WHERE email = $1`

	findUserByIDQuery = `SELECT id::text, email, password_hash, created_at FROM users WHERE id = $1`
)

type UserRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ auth.UserStore = (*UserRepository)(nil)

func NewUserRepository(db DBPool, logger *slog.Logger) *UserRepository {
	if db == nil {
		panic("DBPool cannot be nil for UserRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &UserRepository{db: db, logger: logger.With("component", "UserRepository")}
}

func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash string) (_ *auth.User, err error) {
	defer track("create_user")(&err)
	logCtx := r.logger.With(slog.String("operation", "CreateUser"))

	u := &auth.User{}
	err = r.db.QueryRow(ctx, insertUserQuery, email, passwordHash).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, translateDBError(err, logCtx)
	}
	logCtx.InfoContext(ctx, "User created", slog.String("userID", u.ID))
	return u, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (_ *auth.User, err error) {
	defer track("find_user_by_email")(&err)
	return r.findOne(ctx, "FindUserByEmail", findUserByEmailQuery, email)
}

func (r *UserRepository) FindUserByID(ctx context.Context, id string) (_ *auth.User, err error) {
	defer track("find_user_by_id")(&err)
	return r.findOne(ctx, "FindUserByID", findUserByIDQuery, id)
}

func (r *UserRepository) findOne(ctx context.Context, operation, query string, arg string) (*auth.User, error) {
	u := &auth.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, translateDBError(err, r.logger.With(slog.String("operation", operation)))
	}
	return u, nil
}
