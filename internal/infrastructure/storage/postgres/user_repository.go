package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/user"
)

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log.With("component", "user_repository"),
	}
}

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func (r *UserRepository) Create(ctx context.Context, identity, passwordHash string) (int, error) {
	var userID int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (identity, password_hash) VALUES ($1, $2) RETURNING id`,
		identity, passwordHash).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, user.ErrAlreadyExists
		}
		r.log.Error("failed to create user", "error", err)
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return userID, nil
}

func (r *UserRepository) FindByIdentity(ctx context.Context, identity string) (user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, identity, password_hash, created_at FROM users WHERE identity = $1`, identity).
		Scan(&u.ID, &u.Identity, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}

	return u, nil
}
