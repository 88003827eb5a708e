package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "user-register",
		Method:        http.MethodPost,
		Path:          "/api/register",
		Summary:       "Регистрация пользователя",
		Tags:          []string{"users"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.public,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/api/login",
		Summary:     "Вход: выставляет cookies аутентификации",
		Tags:        []string{"users"},
		Middlewares: h.public,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-logout",
		Method:      http.MethodPost,
		Path:        "/api/logout",
		Summary:     "Выход; с полем notes сначала заменяет заметки",
		Tags:        []string{"users"},
		Middlewares: h.private,
	}
}

func (h *Handler) protectedOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-protected",
		Method:      http.MethodGet,
		Path:        "/api/protected",
		Summary:     "Текущий пользователь",
		Tags:        []string{"users"},
		Middlewares: h.private,
	}
}
