// Package apierr приводит ошибки к виду {"error": "..."} и переводит доменные ошибки в HTTP-статусы.
package apierr

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/dictionary"
	"notebook/internal/domain/identity"
	"notebook/internal/domain/note"
	"notebook/internal/domain/speech"
	"notebook/internal/domain/user"
)

// Error - тело любой ошибки API
type Error struct {
	status  int
	Message string `json:"error" doc:"Error message"`
}

func (e *Error) Error() string  { return e.Message }
func (e *Error) GetStatus() int { return e.status }

func New(status int, msg string) *Error {
	return &Error{status: status, Message: msg}
}

var once sync.Once

// Install подменяет конструктор ошибок huma. Ошибки валидации (422) отдаются как 400.
func Install() {
	once.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			if status == http.StatusUnprocessableEntity {
				status = http.StatusBadRequest
			}
			details := make([]string, 0, len(errs))
			for _, err := range errs {
				if err != nil {
					details = append(details, err.Error())
				}
			}
			if len(details) > 0 {
				msg = msg + ": " + strings.Join(details, "; ")
			}
			return New(status, msg)
		}
	})
}

// From переводит доменную ошибку в ошибку huma с подходящим статусом
func From(log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, note.ErrInvalidInput),
		errors.Is(err, speech.ErrEmptyText),
		errors.Is(err, dictionary.ErrEmptyWord):
		return New(http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials), identity.IsAuthError(err):
		return New(http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrNotFound):
		return New(http.StatusNotFound, err.Error())
	case errors.Is(err, user.ErrAlreadyExists):
		return New(http.StatusConflict, err.Error())
	case errors.Is(err, speech.ErrRateLimited):
		return New(http.StatusTooManyRequests, err.Error())
	default:
		log.Error("request failed", "error", err)
		return New(http.StatusInternalServerError, err.Error())
	}
}
