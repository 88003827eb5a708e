package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/identity"
)

type Auth struct {
	api      huma.API
	strategy identity.Strategy
	log      *slog.Logger
}

func New(api huma.API, strategy identity.Strategy, log *slog.Logger) *Auth {
	return &Auth{
		api:      api,
		strategy: strategy,
		log:      log.With("component", "auth_middleware"),
	}
}

type contextKey string

const (
	principalKey contextKey = "principal"
	carrierKey   contextKey = "carrier"
)

// carrier дополняет huma.Context чтением cookies
type carrier struct {
	huma.Context
}

func (c carrier) Cookie(name string) string {
	r := http.Request{Header: http.Header{"Cookie": {c.Header("Cookie")}}}
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		c := carrier{ctx}

		p, err := a.strategy.Verify(ctx.Context(), c)
		if err != nil {
			status := http.StatusUnauthorized
			if !identity.IsAuthError(err) {
				status = http.StatusInternalServerError
				a.log.Error("verify credentials", "error", err)
			} else {
				a.log.Debug("unauthorized request", "path", ctx.URL().Path, "error", err)
			}
			_ = huma.WriteErr(a.api, ctx, status, unauthorizedMessage(err, status))
			return
		}

		next(huma.WithContext(ctx, WithPrincipal(ctx.Context(), p, c)))
	}
}

func unauthorizedMessage(err error, status int) string {
	if status == http.StatusUnauthorized {
		return "Unauthorized: " + err.Error()
	}
	return err.Error()
}

// WithPrincipal кладет в контекст владельца запроса и источник его учетных данных
func WithPrincipal(ctx context.Context, p identity.Principal, c identity.Carrier) context.Context {
	ctx = context.WithValue(ctx, principalKey, p)
	return context.WithValue(ctx, carrierKey, c)
}

func GetPrincipal(ctx context.Context) (identity.Principal, bool) {
	p, ok := ctx.Value(principalKey).(identity.Principal)
	return p, ok
}

func GetCarrier(ctx context.Context) (identity.Carrier, bool) {
	c, ok := ctx.Value(carrierKey).(identity.Carrier)
	return c, ok
}
