package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/session"
	"notebook/internal/domain/user"
)

// fakeCarrier - Carrier поверх map для тестов
type fakeCarrier struct {
	method  string
	cookies map[string]string
	headers map[string]string
}

func (c fakeCarrier) Cookie(name string) string { return c.cookies[name] }
func (c fakeCarrier) Header(name string) string { return c.headers[name] }
func (c fakeCarrier) Method() string            { return c.method }

// carrierFrom собирает Carrier из cookies, выданных стратегией
func carrierFrom(method string, cookies []http.Cookie) fakeCarrier {
	c := fakeCarrier{method: method, cookies: map[string]string{}, headers: map[string]string{}}
	for _, ck := range cookies {
		c.cookies[ck.Name] = ck.Value
	}
	return c
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, creds user.Credentials) (user.User, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, creds user.Credentials) (user.User, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) FindByIdentity(ctx context.Context, identity string) (user.User, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(user.User), args.Error(1)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Create(ctx context.Context, p session.Payload) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) Resolve(ctx context.Context, value string) (session.Payload, error) {
	args := m.Called(ctx, value)
	return args.Get(0).(session.Payload), args.Error(1)
}

func (m *MockSessions) Destroy(ctx context.Context, value string) error {
	return m.Called(ctx, value).Error(0)
}

func (m *MockSessions) Purge(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestAuthenticator_Login(t *testing.T) {
	users := new(MockUserService)
	auth := New("token", users, NewTokenIssuer([]byte("secret"), 0, false), slog.Default())

	creds := user.Credentials{UID: "uid-1"}
	users.On("Authenticate", mock.Anything, creds).Return(user.User{ID: 3, Identity: "uid-1"}, nil)

	u, cookies, err := auth.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, 3, u.ID)
	assert.Len(t, cookies, 2)
	assert.Equal(t, "token", auth.Name())
}

func TestAuthenticator_Login_UserError(t *testing.T) {
	users := new(MockUserService)
	auth := New("password", users, NewSessionIssuer(new(MockSessions), 0, false), slog.Default())

	creds := user.Credentials{Username: "bob", Password: "wrong"}
	users.On("Authenticate", mock.Anything, creds).Return(user.User{}, user.ErrInvalidCredentials)

	_, cookies, err := auth.Login(context.Background(), creds)
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Nil(t, cookies)
}

func TestAuthenticator_Register(t *testing.T) {
	users := new(MockUserService)
	auth := New("session", users, NewSessionIssuer(new(MockSessions), 0, false), slog.Default())

	creds := user.Credentials{UID: "uid-1"}
	users.On("Register", mock.Anything, creds).Return(user.User{}, user.ErrAlreadyExists)

	_, err := auth.Register(context.Background(), creds)
	assert.ErrorIs(t, err, user.ErrAlreadyExists)
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/api/notes", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "abc.def"})
	r.Header.Set(CSRFHeader, "csrf")

	c := FromRequest(r)
	assert.Equal(t, "abc.def", c.Cookie(SessionCookie))
	assert.Equal(t, "", c.Cookie(AccessTokenCookie))
	assert.Equal(t, "csrf", c.Header(CSRFHeader))
	assert.Equal(t, http.MethodPut, c.Method())
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(ErrNoCredentials))
	assert.True(t, IsAuthError(ErrCSRFMismatch))
	assert.False(t, IsAuthError(user.ErrNotFound))
}
