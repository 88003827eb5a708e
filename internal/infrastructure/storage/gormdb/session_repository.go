package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
	"gorm.io/gorm"

	"notebook/internal/domain/session"
)

type SessionRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewSessionRepository(db *gorm.DB, log *slog.Logger) *SessionRepository {
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
	m := sessionModel{SessionKey: s.Key, Data: string(data), ExpiresAt: s.ExpiresAt, CreatedAt: s.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, key string) (session.Session, error) {
	var m sessionModel
	err := r.db.WithContext(ctx).Where("session_key = ?", key).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("select session: %w", err)
	}

	s := session.Session{Key: m.SessionKey, ExpiresAt: m.ExpiresAt, CreatedAt: m.CreatedAt}
	if err := s.SetData([]byte(m.Data)); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("session_key = ?", key).Delete(&sessionModel{}).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&sessionModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
