// Package storage открывает выбранный в конфигурации бэкенд и отдает набор репозиториев.
package storage

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"notebook/internal/app/server/config"
	"notebook/internal/domain/note"
	"notebook/internal/domain/session"
	"notebook/internal/domain/user"
	"notebook/internal/infrastructure/migration"
	"notebook/internal/infrastructure/storage/gormdb"
	"notebook/internal/infrastructure/storage/postgres"
	"notebook/internal/infrastructure/storage/redisstore"
	"notebook/internal/infrastructure/storage/sqlite"
)

// Repositories - репозитории одного бэкенда
type Repositories struct {
	Users    user.Repository
	Notes    note.Repository
	Sessions session.Repository

	closers []func() error
}

func (r *Repositories) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Migrate применяет схему для выбранного драйвера
func Migrate(ctx context.Context, cfg *config.Config, engine migration.MigrationEngine) error {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		if _, err := sqlite.DSN(cfg.DB.DatabaseURI); err != nil {
			return err
		}
		return migration.NewMigration(migration.DialectSQLite, migration.SQLiteURL(cfg.DB.DatabaseURI), engine).Up()
	case config.DriverPostgres:
		return migration.NewMigration(migration.DialectPostgres, cfg.DB.DatabaseURI, engine).Up()
	case config.DriverMySQL:
		// New для MySQL сам выполняет AutoMigrate
		s, err := gormdb.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return err
		}
		return s.Close()
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.DB.Driver)
	}
}

// Open применяет миграции, подключается к БД и, при SESSION_STORE=redis, к Redis
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Repositories, error) {
	repos := &Repositories{}

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		if err := Migrate(ctx, cfg, migration.DefaultEngine); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		s, err := sqlite.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, s.Close)
		repos.Users = sqlite.NewUserRepository(s.DB(), log)
		repos.Notes = sqlite.NewNoteRepository(s.DB(), log)
		repos.Sessions = sqlite.NewSessionRepository(s.DB(), log)

	case config.DriverPostgres:
		if err := Migrate(ctx, cfg, migration.DefaultEngine); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		s, err := postgres.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, s.Close)
		repos.Users = postgres.NewUserRepository(s.Pool(), log)
		repos.Notes = postgres.NewNoteRepository(s.Pool(), log)
		repos.Sessions = postgres.NewSessionRepository(s.Pool(), log)

	case config.DriverMySQL:
		s, err := gormdb.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, s.Close)
		repos.Users = gormdb.NewUserRepository(s.DB(), log)
		repos.Notes = gormdb.NewNoteRepository(s.DB(), log)
		repos.Sessions = gormdb.NewSessionRepository(s.DB(), log)

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.DB.Driver)
	}

	if cfg.UsesSessions() && cfg.Auth.SessionStore == config.SessionStoreRedis {
		rdb, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = repos.Close()
			return nil, err
		}
		repos.closers = append(repos.closers, rdb.Close)
		repos.Sessions = redisstore.NewSessionRepository(rdb, log)
	}

	log.Info("storage opened", "driver", cfg.DB.Driver, "session_store", cfg.Auth.SessionStore)

	return repos, nil
}
