package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	StrategyToken    = "token"
	StrategySession  = "session"
	StrategyPassword = "password"

	SessionStoreDB    = "db"
	SessionStoreRedis = "redis"

	// localSecret используется только при APP_ENV=local, если SECRET_KEY не задан
	localSecret = "SecRetKey"
)

var (
	ErrUnknownDriver   = errors.New("unknown database driver")
	ErrUnknownStrategy = errors.New("unknown auth strategy")
	ErrUnknownStore    = errors.New("unknown session store")
	ErrEmptySecret     = errors.New("SECRET_KEY must be set outside local environment")
)

type Config struct {
	Env        string
	DB         DB
	Server     Server
	Logger     Logger
	Auth       Auth
	Redis      Redis
	Speech     Speech
	Dictionary Dictionary
}

type DB struct {
	Driver      string
	DatabaseURI string
}

type Server struct {
	RunAddress      string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type Logger struct {
	LogLevel string
}

type Auth struct {
	Strategy       string
	Secret         string
	TokenTTL       time.Duration
	SessionTTL     time.Duration
	SessionStore   string
	CookieSecure   bool
	PasswordStrict bool
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Speech struct {
	Binary    string
	Voice     string
	Speed     int
	TempDir   string
	RateLimit float64
}

type Dictionary struct {
	BaseURL string
	Timeout time.Duration
}

func setDefaults() {
	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("RUN_ADDRESS", ":5002")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("DB_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_URI", "notebook.db")
	viper.SetDefault("AUTH_STRATEGY", StrategySession)
	viper.SetDefault("TOKEN_TTL", "15m")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("SESSION_STORE", SessionStoreDB)
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("PASSWORD_STRICT", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("TTS_BINARY", "espeak-ng")
	viper.SetDefault("TTS_SPEED", 0)
	viper.SetDefault("TTS_TEMP_DIR", os.TempDir())
	viper.SetDefault("TTS_RATE_LIMIT", 0)
	viper.SetDefault("DICTIONARY_URL", "https://api.dictionaryapi.dev/api/v2/entries/en")
	viper.SetDefault("DICTIONARY_TIMEOUT", "10s")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load читает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	setDefaults()

	cfg := &Config{
		Env: viper.GetString("APP_ENV"),
		DB: DB{
			Driver:      strings.ToLower(viper.GetString("DB_DRIVER")),
			DatabaseURI: viper.GetString("DATABASE_URI"),
		},
		Server: Server{
			RunAddress:      viper.GetString("RUN_ADDRESS"),
			AllowedOrigins:  splitList(viper.GetString("CORS_ORIGINS")),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Logger: Logger{LogLevel: viper.GetString("LOG_LEVEL")},
		Auth: Auth{
			Strategy:       strings.ToLower(viper.GetString("AUTH_STRATEGY")),
			Secret:         viper.GetString("SECRET_KEY"),
			TokenTTL:       viper.GetDuration("TOKEN_TTL"),
			SessionTTL:     viper.GetDuration("SESSION_TTL"),
			SessionStore:   strings.ToLower(viper.GetString("SESSION_STORE")),
			CookieSecure:   viper.GetBool("COOKIE_SECURE"),
			PasswordStrict: viper.GetBool("PASSWORD_STRICT"),
		},
		Redis: Redis{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Speech: Speech{
			Binary:    viper.GetString("TTS_BINARY"),
			Voice:     viper.GetString("TTS_VOICE"),
			Speed:     viper.GetInt("TTS_SPEED"),
			TempDir:   viper.GetString("TTS_TEMP_DIR"),
			RateLimit: viper.GetFloat64("TTS_RATE_LIMIT"),
		},
		Dictionary: Dictionary{
			BaseURL: strings.TrimRight(viper.GetString("DICTIONARY_URL"), "/"),
			Timeout: viper.GetDuration("DICTIONARY_TIMEOUT"),
		},
	}

	if cfg.Auth.Secret == "" && cfg.Env == EnvLocal {
		cfg.Auth.Secret = localSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad как Load, но завершает процесс при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DB.Driver)
	}

	switch c.Auth.Strategy {
	case StrategyToken, StrategySession, StrategyPassword:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Auth.Strategy)
	}

	switch c.Auth.SessionStore {
	case SessionStoreDB, SessionStoreRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Auth.SessionStore)
	}

	if c.Auth.Secret == "" {
		return ErrEmptySecret
	}

	return nil
}

// UsesSessions сообщает, нужны ли серверные сессии выбранной стратегии
func (c *Config) UsesSessions() bool {
	return c.Auth.Strategy != StrategyToken
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
