package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"notebook/internal/domain/session"
)

type SessionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSessionRepository(db *sql.DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, s session.Session) error {
	data, err := s.Data()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (session_key, data, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		s.Key, string(data), s.ExpiresAt.Unix(), s.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, key string) (session.Session, error) {
	var (
		data                 string
		expiresAt, createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT data, expires_at, created_at FROM sessions WHERE session_key = ?`, key).
		Scan(&data, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("select session: %w", err)
	}

	s := session.Session{
		Key:       key,
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
		CreatedAt: time.Unix(createdAt, 0).UTC(),
	}
	if err := s.SetData([]byte(data)); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_key = ?`, key)
	return err
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
