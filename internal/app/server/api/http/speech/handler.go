package speech

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notebook/internal/app/server/api/http/apierr"
	"notebook/internal/domain/speech"
)

type Handler struct {
	service    speech.Renderer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service speech.Renderer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "speech_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.ttsOp(), h.tts)
}

func (h *Handler) tts(ctx context.Context, input *ttsInput) (*ttsOutput, error) {
	audio, err := h.service.Render(ctx, input.Body.Text)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &ttsOutput{
		ContentType:        audio.ContentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", audio.Filename),
		Body:               audio.Data,
	}, nil
}
