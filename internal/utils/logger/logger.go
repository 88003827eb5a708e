package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"notebook/internal/app/server/config"
)

// New создает логгер в зависимости от окружения
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel как New, но level (debug, info, warn, error) переопределяет уровень окружения
func NewWithLevel(env, level string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		if level == "" {
			return setupPrettySlog()
		}
		return setupPrettySlogLevel(parseLevel(level, slog.LevelDebug))
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(level, slog.LevelDebug),
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(level, slog.LevelInfo),
		}))
	}
}

func setupPrettySlog() *slog.Logger {
	return setupPrettySlogLevel(slog.LevelDebug)
}

func setupPrettySlogLevel(level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// Err - атрибут ошибки для логов
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
