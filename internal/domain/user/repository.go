package user

import (
	"context"
)

type Repository interface {
	// Create возвращает ErrAlreadyExists при дубликате identity
	Create(ctx context.Context, identity, passwordHash string) (int, error)
	// FindByIdentity возвращает ErrNotFound, если пользователя нет
	FindByIdentity(ctx context.Context, identity string) (User, error)
}
