package identity

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims - утверждения access-токена: стандартные плюс id пользователя и CSRF-значение
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"uid"`
	CSRF   string `json:"csrf"`
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration, secure bool) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, secure: secure, now: time.Now}
}

func (t *TokenIssuer) Issue(_ context.Context, p Principal) ([]http.Cookie, error) {
	now := t.now()
	csrf := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Identity,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		UserID: p.UserID,
		CSRF:   csrf,
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	maxAge := int(t.ttl.Seconds())
	return []http.Cookie{
		{
			Name:     AccessTokenCookie,
			Value:    signed,
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   t.secure,
			SameSite: http.SameSiteLaxMode,
		},
		{
			Name:     CSRFCookie,
			Value:    csrf,
			Path:     "/",
			MaxAge:   maxAge,
			Secure:   t.secure,
			SameSite: http.SameSiteLaxMode,
		},
	}, nil
}

func (t *TokenIssuer) Verify(_ context.Context, c Carrier) (Principal, error) {
	raw := c.Cookie(AccessTokenCookie)
	if raw == "" {
		return Principal{}, ErrNoCredentials
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}

	if isMutating(c.Method()) {
		header := c.Header(CSRFHeader)
		if header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(claims.CSRF)) != 1 {
			return Principal{}, ErrCSRFMismatch
		}
	}

	return Principal{UserID: claims.UserID, Identity: claims.Subject}, nil
}

// Revoke только очищает cookies: токен без состояния живет до exp
func (t *TokenIssuer) Revoke(_ context.Context, _ Carrier) ([]http.Cookie, error) {
	return []http.Cookie{
		clearCookie(AccessTokenCookie, true, t.secure),
		clearCookie(CSRFCookie, false, t.secure),
	}, nil
}
