package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/session"
)

type SessionRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSessionRepository(pool *pgxpool.Pool, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		pool: pool,
		log:  log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, s session.Session) error {
	data, err := s.Data()
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO sessions (session_key, data, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		s.Key, data, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, key string) (session.Session, error) {
	s := session.Session{Key: key}
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data, expires_at, created_at FROM sessions WHERE session_key = $1`, key).
		Scan(&data, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("select session: %w", err)
	}

	if err := s.SetData(data); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE session_key = $1`, key)
	return err
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
