package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"notebook/internal/domain/session"
)

type SessionIssuer struct {
	sessions session.Servicer
	ttl      time.Duration
	secure   bool
}

func NewSessionIssuer(sessions session.Servicer, ttl time.Duration, secure bool) *SessionIssuer {
	return &SessionIssuer{sessions: sessions, ttl: ttl, secure: secure}
}

func (s *SessionIssuer) Issue(ctx context.Context, p Principal) ([]http.Cookie, error) {
	value, err := s.sessions.Create(ctx, session.Payload{UserID: p.UserID, Identity: p.Identity})
	if err != nil {
		return nil, err
	}

	return []http.Cookie{{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}}, nil
}

func (s *SessionIssuer) Verify(ctx context.Context, c Carrier) (Principal, error) {
	value := c.Cookie(SessionCookie)
	if value == "" {
		return Principal{}, ErrNoCredentials
	}

	p, err := s.sessions.Resolve(ctx, value)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) || errors.Is(err, session.ErrExpired) {
			return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return Principal{}, err
	}

	return Principal{UserID: p.UserID, Identity: p.Identity}, nil
}

func (s *SessionIssuer) Revoke(ctx context.Context, c Carrier) ([]http.Cookie, error) {
	if value := c.Cookie(SessionCookie); value != "" {
		if err := s.sessions.Destroy(ctx, value); err != nil {
			return nil, err
		}
	}
	return []http.Cookie{clearCookie(SessionCookie, true, s.secure)}, nil
}
