package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notebook/internal/app/server/api/http/apierr"
	"notebook/internal/app/server/api/http/middleware/auth"
	"notebook/internal/domain/identity"
	"notebook/internal/domain/note"
)

type Handler struct {
	strategy identity.Strategy
	notes    note.Servicer
	log      *slog.Logger
	public   huma.Middlewares
	private  huma.Middlewares
}

// NewHandler; public - мидлвари открытых операций, private - операций под аутентификацией
func NewHandler(strategy identity.Strategy, notes note.Servicer, log *slog.Logger, public, private huma.Middlewares) *Handler {
	return &Handler{
		strategy: strategy,
		notes:    notes,
		log:      log.With("component", "user_handler"),
		public:   public,
		private:  private,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.protectedOp(), h.protected)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	u, err := h.strategy.Register(ctx, input.Body.credentials())
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &registerOutput{
		Body: authResponse{Message: "User registered successfully", User: viewOf(u)},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, cookies, err := h.strategy.Login(ctx, input.Body.credentials())
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &loginOutput{
		SetCookie: cookies,
		Body:      authResponse{Message: "Login successful", User: viewOf(u)},
	}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	p, ok := auth.GetPrincipal(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if notes, ok := input.Body.notes(); ok {
		if _, err := h.notes.Replace(ctx, p.Identity, notes); err != nil {
			return nil, apierr.From(h.log, err)
		}
	}

	c, _ := auth.GetCarrier(ctx)
	cookies, err := h.strategy.Logout(ctx, c)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &logoutOutput{
		SetCookie: cookies,
		Body:      messageResponse{Message: "Logout successful"},
	}, nil
}

func (h *Handler) protected(ctx context.Context, _ *struct{}) (*protectedOutput, error) {
	p, ok := auth.GetPrincipal(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	return &protectedOutput{Body: protectedResponse{LoggedInAs: p.Identity}}, nil
}
