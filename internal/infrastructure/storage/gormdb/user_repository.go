package gormdb

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
	"gorm.io/gorm"

	"notebook/internal/domain/user"
)

type UserRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewUserRepository(db *gorm.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, identity, passwordHash string) (int, error) {
	m := userModel{Identity: identity, PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, user.ErrAlreadyExists
		}
		r.log.Error("failed to create user", "error", err)
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return int(m.ID), nil
}

func (r *UserRepository) FindByIdentity(ctx context.Context, identity string) (user.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Where("identity = ?", identity).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}

	return user.User{
		ID:           int(m.ID),
		Identity:     m.Identity,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}, nil
}
