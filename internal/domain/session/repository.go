package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Session) error
	// Find возвращает ErrNotFound, если сессии нет
	Find(ctx context.Context, key string) (Session, error)
	// Delete не считает отсутствие сессии ошибкой
	Delete(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
