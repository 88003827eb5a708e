// Package server собирает сервисы, HTTP API и запускает сервер.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"notebook/internal/app/server/api"
	"notebook/internal/app/server/config"
	"notebook/internal/domain/dictionary"
	"notebook/internal/domain/identity"
	"notebook/internal/domain/note"
	"notebook/internal/domain/session"
	"notebook/internal/domain/speech"
	"notebook/internal/domain/user"
	"notebook/internal/infrastructure/storage"
)

const purgeInterval = 10 * time.Minute

type App struct {
	cfg   *config.Config
	log   *slog.Logger
	repos *storage.Repositories

	Users    user.Servicer
	Sessions session.Servicer
	Strategy identity.Strategy
	Handler  http.Handler
}

// New открывает хранилище из конфигурации и собирает приложение с espeak-ng в качестве синтезатора
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	synth := speech.Espeak{Binary: cfg.Speech.Binary, Voice: cfg.Speech.Voice, Speed: cfg.Speech.Speed}
	dict := dictionary.NewClient(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout, log)

	return NewWithRepositories(cfg, repos, synth, dict, log), nil
}

// NewWithRepositories собирает приложение поверх уже открытых репозиториев
func NewWithRepositories(
	cfg *config.Config,
	repos *storage.Repositories,
	synth speech.Synthesizer,
	dict dictionary.Looker,
	log *slog.Logger,
) *App {
	a := &App{cfg: cfg, log: log, repos: repos}

	mode := user.IdentityOnly
	if cfg.Auth.Strategy == config.StrategyPassword {
		mode = user.WithPassword
	}
	a.Users = user.NewService(repos.Users, user.NewPasswordValidator(cfg.Auth.PasswordStrict), mode, log)

	var issuer identity.Issuer
	if cfg.UsesSessions() {
		a.Sessions = session.NewService(repos.Sessions, []byte(cfg.Auth.Secret), cfg.Auth.SessionTTL, log)
		issuer = identity.NewSessionIssuer(a.Sessions, cfg.Auth.SessionTTL, cfg.Auth.CookieSecure)
	} else {
		issuer = identity.NewTokenIssuer([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL, cfg.Auth.CookieSecure)
	}
	a.Strategy = identity.New(cfg.Auth.Strategy, a.Users, issuer, log)

	a.Handler = api.New(api.Deps{
		Strategy:       a.Strategy,
		Notes:          note.NewService(repos.Notes, a.Users, log),
		Speech:         speech.NewService(synth, cfg.Speech.TempDir, cfg.Speech.RateLimit, log),
		Dictionary:     dict,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, log)

	return a
}

// Run слушает RunAddress до отмены ctx, затем корректно останавливает сервер
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.RunAddress,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if a.Sessions != nil {
		go a.purgeLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", "address", srv.Addr, "strategy", a.cfg.Auth.Strategy, "driver", a.cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.Sessions.Purge(ctx)
			if err != nil {
				a.log.Warn("purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				a.log.Debug("expired sessions purged", "count", n)
			}
		}
	}
}

func (a *App) Close() error {
	return a.repos.Close()
}
