package note

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "notes-list",
		Method:      http.MethodGet,
		Path:        "/api/notes",
		Summary:     "Заметки текущего пользователя",
		Tags:        []string{"notes"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) replaceOp() huma.Operation {
	return huma.Operation{
		OperationID: "notes-replace",
		Method:      http.MethodPut,
		Path:        "/api/notes",
		Summary:     "Полная замена заметок",
		Description: "Удаляет все заметки пользователя и сохраняет переданные в одной транзакции",
		Tags:        []string{"notes"},
		Middlewares: h.middleware,
	}
}
