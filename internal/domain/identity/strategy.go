package identity

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/exp/slog"

	"notebook/internal/domain/user"
)

// Authenticator собирает стратегию из сервиса пользователей и выдающего артефакт Issuer
type Authenticator struct {
	name   string
	users  user.Servicer
	issuer Issuer
	log    *slog.Logger
}

func New(name string, users user.Servicer, issuer Issuer, log *slog.Logger) *Authenticator {
	return &Authenticator{
		name:   name,
		users:  users,
		issuer: issuer,
		log:    log.With("component", "auth", "strategy", name),
	}
}

func (a *Authenticator) Name() string { return a.name }

func (a *Authenticator) Register(ctx context.Context, creds user.Credentials) (user.User, error) {
	return a.users.Register(ctx, creds)
}

func (a *Authenticator) Login(ctx context.Context, creds user.Credentials) (user.User, []http.Cookie, error) {
	u, err := a.users.Authenticate(ctx, creds)
	if err != nil {
		return user.User{}, nil, err
	}

	cookies, err := a.issuer.Issue(ctx, Principal{UserID: u.ID, Identity: u.Identity})
	if err != nil {
		return user.User{}, nil, fmt.Errorf("issue credentials: %w", err)
	}

	a.log.Info("user logged in", "user_id", u.ID)

	return u, cookies, nil
}

func (a *Authenticator) Verify(ctx context.Context, c Carrier) (Principal, error) {
	return a.issuer.Verify(ctx, c)
}

func (a *Authenticator) Logout(ctx context.Context, c Carrier) ([]http.Cookie, error) {
	return a.issuer.Revoke(ctx, c)
}
