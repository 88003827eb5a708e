package identity

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issue(t *testing.T, issuer *TokenIssuer) []http.Cookie {
	t.Helper()
	cookies, err := issuer.Issue(context.Background(), Principal{UserID: 42, Identity: "uid-42"})
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	return cookies
}

func TestTokenIssuer_Issue(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), 15*time.Minute, true)
	cookies := issue(t, issuer)

	access, csrf := cookies[0], cookies[1]
	assert.Equal(t, AccessTokenCookie, access.Name)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, 900, access.MaxAge)

	assert.Equal(t, CSRFCookie, csrf.Name)
	assert.False(t, csrf.HttpOnly, "csrf cookie must be readable by scripts")
	assert.NotEmpty(t, csrf.Value)
}

func TestTokenIssuer_Verify(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), 15*time.Minute, false)
	cookies := issue(t, issuer)

	p, err := issuer.Verify(context.Background(), carrierFrom(http.MethodGet, cookies))
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: 42, Identity: "uid-42"}, p)
}

func TestTokenIssuer_Verify_CSRF(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), 15*time.Minute, false)
	cookies := issue(t, issuer)
	csrf := cookies[1].Value

	tests := []struct {
		name    string
		method  string
		header  string
		wantErr error
	}{
		{name: "GET without header", method: http.MethodGet},
		{name: "PUT with header", method: http.MethodPut, header: csrf},
		{name: "POST without header", method: http.MethodPost, wantErr: ErrCSRFMismatch},
		{name: "DELETE with wrong header", method: http.MethodDelete, header: "forged", wantErr: ErrCSRFMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := carrierFrom(tt.method, cookies)
			if tt.header != "" {
				c.headers[CSRFHeader] = tt.header
			}

			_, err := issuer.Verify(context.Background(), c)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenIssuer_Verify_Invalid(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), 15*time.Minute, false)

	t.Run("no cookie", func(t *testing.T) {
		_, err := issuer.Verify(context.Background(), carrierFrom(http.MethodGet, nil))
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("garbage", func(t *testing.T) {
		c := carrierFrom(http.MethodGet, []http.Cookie{{Name: AccessTokenCookie, Value: "not-a-jwt"}})
		_, err := issuer.Verify(context.Background(), c)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		cookies := issue(t, NewTokenIssuer([]byte("other"), time.Minute, false))
		_, err := issuer.Verify(context.Background(), carrierFrom(http.MethodGet, cookies))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		cookies := issue(t, issuer)
		later := NewTokenIssuer([]byte("secret"), 15*time.Minute, false)
		later.now = func() time.Time { return time.Now().Add(time.Hour) }

		_, err := later.Verify(context.Background(), carrierFrom(http.MethodGet, cookies))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected alg", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "uid-42",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		c := carrierFrom(http.MethodGet, []http.Cookie{{Name: AccessTokenCookie, Value: raw}})
		_, err = issuer.Verify(context.Background(), c)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenIssuer_Revoke(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Minute, false)

	cookies, err := issuer.Revoke(context.Background(), carrierFrom(http.MethodPost, nil))
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		assert.Empty(t, ck.Value)
		assert.Equal(t, -1, ck.MaxAge)
	}
}
