package dictionary

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) definitionOp() huma.Operation {
	return huma.Operation{
		OperationID: "dictionary-definition",
		Method:      http.MethodGet,
		Path:        "/api/definition",
		Summary:     "Определение слова из публичного словаря",
		Description: "Возвращает JSON внешнего API без изменений",
		Tags:        []string{"dictionary"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Upstream JSON",
				Content:     map[string]*huma.MediaType{"application/json": {}},
			},
		},
		Middlewares: h.middleware,
	}
}
