package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"notebook/internal/domain/user"
)

type UserRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewUserRepository(db *sql.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, identity, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (identity, password_hash, created_at) VALUES (?, ?, ?)`,
		identity, passwordHash, time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, user.ErrAlreadyExists
		}
		r.log.Error("failed to create user", "error", err)
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return int(id), nil
}

func (r *UserRepository) FindByIdentity(ctx context.Context, identity string) (user.User, error) {
	var (
		u         user.User
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, identity, password_hash, created_at FROM users WHERE identity = ?`, identity).
		Scan(&u.ID, &u.Identity, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}

	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return u, nil
}
