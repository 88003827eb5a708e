package speech

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"notebook/internal/domain/speech"
)

func (h *Handler) ttsOp() huma.Operation {
	return huma.Operation{
		OperationID: "speech-tts",
		Method:      http.MethodPost,
		Path:        "/api/tts",
		Summary:     "Синтез речи в WAV",
		Tags:        []string{"speech"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "WAV attachment",
				Content: map[string]*huma.MediaType{
					speech.ContentType: {Schema: &huma.Schema{Type: "string", Format: "binary"}},
				},
			},
		},
		Middlewares: h.middleware,
	}
}
