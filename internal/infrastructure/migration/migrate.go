package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers used by migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed sql
var files embed.FS

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Down() error
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(dialect, databaseURL string) (Migrator, error)

type Migration struct {
	dialect     string
	databaseURL string
	engine      MigrationEngine
}

// NewMigration; databaseURL в формате golang-migrate: postgres://... или sqlite3://path
func NewMigration(dialect, databaseURL string, engine MigrationEngine) *Migration {
	return &Migration{
		dialect:     dialect,
		databaseURL: databaseURL,
		engine:      engine,
	}
}

// DefaultEngine - реальная реализация, SQL-файлы встроены в бинарник
func DefaultEngine(dialect, databaseURL string) (Migrator, error) {
	src, err := iofs.New(files, "sql/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("open migrations for %q: %w", dialect, err)
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// SQLiteURL переводит путь к файлу БД в URL для golang-migrate
func SQLiteURL(path string) string {
	return "sqlite3://" + path
}

func (mg *Migration) Up() error {
	return mg.run(func(m Migrator) error { return m.Up() })
}

func (mg *Migration) Down() error {
	return mg.run(func(m Migrator) error { return m.Down() })
}

func (mg *Migration) run(step func(Migrator) error) (err error) {
	m, err := mg.engine(mg.dialect, mg.databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", mg.dialect, err)
	}
	return nil
}
