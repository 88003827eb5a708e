package dictionary

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notebook/internal/app/server/api/http/apierr"
	"notebook/internal/domain/dictionary"
)

type Handler struct {
	client     dictionary.Looker
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(client dictionary.Looker, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		client:     client,
		log:        log.With("component", "dictionary_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.definitionOp(), h.definition)
}

func (h *Handler) definition(ctx context.Context, input *definitionInput) (*definitionOutput, error) {
	raw, err := h.client.Lookup(ctx, input.Word)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &definitionOutput{ContentType: "application/json", Body: raw}, nil
}
