// POST /api/register    # Регистрация (публичный)
// POST /api/login       # Логин (публичный)
// POST /api/logout      # Выход, опционально с сохранением заметок (auth)
// GET  /api/protected   # Проверка входа (auth)
// GET  /api/notes       # Заметки владельца (auth)
// PUT  /api/notes       # Полная замена заметок (auth)
// POST /api/tts         # Синтез речи в WAV (публичный)
// GET  /api/definition  # Определение слова (публичный)
// GET  /api/health      # Health check

package api

import (
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/exp/slog"

	"notebook/internal/app/server/api/http/apierr"
	"notebook/internal/app/server/config"
	dictionaryAPI "notebook/internal/app/server/api/http/dictionary"
	healthAPI "notebook/internal/app/server/api/http/health"
	"notebook/internal/app/server/api/http/middleware"
	"notebook/internal/app/server/api/http/middleware/auth"
	"notebook/internal/app/server/api/http/middleware/logger"
	noteAPI "notebook/internal/app/server/api/http/note"
	speechAPI "notebook/internal/app/server/api/http/speech"
	userAPI "notebook/internal/app/server/api/http/user"
	"notebook/internal/domain/dictionary"
	"notebook/internal/domain/identity"
	"notebook/internal/domain/note"
	"notebook/internal/domain/speech"
)

// Deps - готовые сервисы, из которых собирается HTTP API
type Deps struct {
	Strategy       identity.Strategy
	Notes          note.Servicer
	Speech         speech.Renderer
	Dictionary     dictionary.Looker
	AllowedOrigins []string
}

type Handlers struct {
	Health     *healthAPI.Handler
	User       *userAPI.Handler
	Note       *noteAPI.Handler
	Speech     *speechAPI.Handler
	Dictionary *dictionaryAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(deps Deps, log *slog.Logger) *chi.Mux {
	apierr.Install()

	mux := chi.NewMux()
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(corsOptions(deps.AllowedOrigins)))

	config := huma.DefaultConfig("Notebook API", "1.0.0")
	// без $schema в ответах: клиенты сравнивают тела как есть
	config.CreateHooks = nil
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookie": {Type: "apiKey", In: "cookie", Name: cookieName(deps.Strategy)},
	}

	API := humachi.New(mux, config)

	h := handlers(API, deps, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Note.SetupRoutes(API)
	h.Speech.SetupRoutes(API)
	h.Dictionary.SetupRoutes(API)

	log.Info("api routes registered", "strategy", deps.Strategy.Name())

	return mux
}

func handlers(API huma.API, deps Deps, log *slog.Logger) *Handlers {
	authMW := auth.New(API, deps.Strategy, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	healthHandler := healthAPI.NewHandler(log, middlewares.Add(loggerMW.Middleware()).GetAllAndClear())

	public := middlewares.Add(loggerMW.Middleware()).GetAllAndClear()
	private := middlewares.Add(loggerMW.Middleware(), authMW.Middleware()).GetAllAndClear()
	userHandler := userAPI.NewHandler(deps.Strategy, deps.Notes, log, public, private)

	noteHandler := noteAPI.NewHandler(deps.Notes, log,
		middlewares.Add(loggerMW.Middleware(), authMW.Middleware()).GetAllAndClear())

	speechHandler := speechAPI.NewHandler(deps.Speech, log, middlewares.Add(loggerMW.Middleware()).GetAllAndClear())

	dictionaryHandler := dictionaryAPI.NewHandler(deps.Dictionary, log,
		middlewares.Add(loggerMW.Middleware()).GetAllAndClear())

	return &Handlers{
		Health:     healthHandler,
		User:       userHandler,
		Note:       noteHandler,
		Speech:     speechHandler,
		Dictionary: dictionaryHandler,
	}
}

// corsOptions: при AllowCredentials Allow-Origin не может быть "*", вместо него отражается Origin запроса
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", identity.CSRFHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if slices.Contains(origins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	}
	return opts
}

func cookieName(s identity.Strategy) string {
	if s.Name() == config.StrategyToken {
		return identity.AccessTokenCookie
	}
	return identity.SessionCookie
}
