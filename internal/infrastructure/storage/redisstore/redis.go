package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/session"
)

const keyPrefix = "session:"

// NewClient creates and pings a Redis client.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// SessionRepository хранит сессии в Redis; истечение выполняет сам Redis через TTL
type SessionRepository struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewSessionRepository(rdb *redis.Client, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		rdb: rdb,
		log: log.With("component", "session_repository", "store", "redis"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, s session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}

	if err := r.rdb.Set(ctx, keyPrefix+s.Key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, key string) (session.Session, error) {
	val, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal(val, &s); err != nil {
		return session.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, keyPrefix+key).Err()
}

// DeleteExpired ничего не делает: ключи удаляются по TTL
func (r *SessionRepository) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
