package note

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notebook/internal/app/server/api/http/apierr"
	"notebook/internal/app/server/api/http/middleware/auth"
	"notebook/internal/domain/note"
)

type Handler struct {
	service    note.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service note.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "note_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.replaceOp(), h.replace)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	p, ok := auth.GetPrincipal(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	notes, err := h.service.List(ctx, p.Identity)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &listOutput{Body: toView(notes)}, nil
}

func (h *Handler) replace(ctx context.Context, input *replaceInput) (*replaceOutput, error) {
	p, ok := auth.GetPrincipal(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	n, err := h.service.Replace(ctx, p.Identity, toDomain(input.Body.Notes))
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &replaceOutput{Body: replaceResponse{Message: "Notes saved", Count: n}}, nil
}
