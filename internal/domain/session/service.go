package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

const idLen = 32

type Servicer interface {
	Create(ctx context.Context, p Payload) (string, error)
	Resolve(ctx context.Context, value string) (Payload, error)
	Destroy(ctx context.Context, value string) error
	Purge(ctx context.Context) (int64, error)
}

type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
}

func NewService(repo Repository, secret []byte, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		log:    log.With("component", "session_service"),
	}
}

// Create заводит сессию и возвращает значение для cookie: "<id>.<подпись>"
func (s *Service) Create(ctx context.Context, p Payload) (string, error) {
	idBytes := make([]byte, idLen)
	if _, err := rand.Read(idBytes); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	id := base64.RawURLEncoding.EncodeToString(idBytes)

	now := s.now()
	sess := Session{
		Key:       hashID(id),
		UserID:    p.UserID,
		Identity:  p.Identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return id + "." + s.sign(id), nil
}

func (s *Service) Resolve(ctx context.Context, value string) (Payload, error) {
	id, ok := s.verify(value)
	if !ok {
		return Payload{}, ErrInvalidSession
	}

	key := hashID(id)
	sess, err := s.repo.Find(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Payload{}, ErrInvalidSession
		}
		return Payload{}, fmt.Errorf("find session: %w", err)
	}

	if sess.Expired(s.now()) {
		if err := s.repo.Delete(ctx, key); err != nil {
			s.log.Warn("failed to delete expired session", "error", err)
		}
		return Payload{}, ErrExpired
	}

	return Payload{UserID: sess.UserID, Identity: sess.Identity}, nil
}

// Destroy удаляет сессию; неподписанное значение просто игнорируется
func (s *Service) Destroy(ctx context.Context, value string) error {
	id, ok := s.verify(value)
	if !ok {
		return nil
	}
	if err := s.repo.Delete(ctx, hashID(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) Purge(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	if n > 0 {
		s.log.Info("expired sessions purged", "count", n)
	}
	return n, nil
}

func (s *Service) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Service) verify(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" || sig == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(id))) {
		return "", false
	}
	return id, true
}

func hashID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
