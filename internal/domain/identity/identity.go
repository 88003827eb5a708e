// Package identity выбирает способ аутентификации (token, session, password)
// и прячет его за единым интерфейсом Strategy.
package identity

import (
	"context"
	"errors"
	"net/http"

	"notebook/internal/domain/user"
)

const (
	AccessTokenCookie = "access_token_cookie"
	CSRFCookie        = "csrf_access_token"
	CSRFHeader        = "X-CSRF-TOKEN"
	SessionCookie     = "session"
)

var (
	ErrNoCredentials = errors.New("missing authentication credentials")
	ErrInvalidToken  = errors.New("invalid or expired credentials")
	ErrCSRFMismatch  = errors.New("CSRF token mismatch")
)

// Principal - аутентифицированный владелец запроса
type Principal struct {
	UserID   int
	Identity string
}

// Carrier - то, что стратегии нужно от входящего запроса
type Carrier interface {
	Cookie(name string) string
	Header(name string) string
	Method() string
}

type Strategy interface {
	Name() string
	Register(ctx context.Context, creds user.Credentials) (user.User, error)
	Login(ctx context.Context, creds user.Credentials) (user.User, []http.Cookie, error)
	Verify(ctx context.Context, c Carrier) (Principal, error)
	Logout(ctx context.Context, c Carrier) ([]http.Cookie, error)
}

// Issuer выдает и проверяет артефакт аутентификации (JWT или сессию)
type Issuer interface {
	Issue(ctx context.Context, p Principal) ([]http.Cookie, error)
	Verify(ctx context.Context, c Carrier) (Principal, error)
	Revoke(ctx context.Context, c Carrier) ([]http.Cookie, error)
}

// IsAuthError сообщает, что ошибку стоит отдавать клиенту как 401
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrCSRFMismatch)
}

type requestCarrier struct {
	r *http.Request
}

// FromRequest адаптирует *http.Request к Carrier
func FromRequest(r *http.Request) Carrier {
	return requestCarrier{r: r}
}

func (c requestCarrier) Cookie(name string) string {
	ck, err := c.r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

func (c requestCarrier) Header(name string) string { return c.r.Header.Get(name) }
func (c requestCarrier) Method() string            { return c.r.Method }

func clearCookie(name string, httpOnly, secure bool) http.Cookie {
	return http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: httpOnly,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
