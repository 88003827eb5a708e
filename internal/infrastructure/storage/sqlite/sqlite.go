// Package sqlite - файловое хранилище на mattn/go-sqlite3, по умолчанию для локального запуска.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrInMemory: миграции и хранилище открывают разные соединения, у in-memory базы они не общие
var ErrInMemory = errors.New("in-memory sqlite database is not supported, use a file path")

var defaultParams = map[string]string{
	"_foreign_keys": "on",
	"_journal_mode": "WAL",
	"_busy_timeout": "5000",
}

// DSN дополняет путь параметрами подключения, не перетирая заданные в DATABASE_URI
func DSN(path string) (string, error) {
	base, query, _ := strings.Cut(path, "?")
	if base == "" || strings.Contains(base, ":memory:") || strings.Contains(query, "mode=memory") {
		return "", ErrInMemory
	}

	params, err := url.ParseQuery(query)
	if err != nil {
		return "", fmt.Errorf("parse sqlite dsn: %w", err)
	}
	for k, v := range defaultParams {
		if !params.Has(k) {
			params.Set(k, v)
		}
	}

	return base + "?" + params.Encode(), nil
}

// DBTX - общее подмножество *sql.DB и *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, path string) (*Storage, error) {
	dsn, err := DSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

// withTx выполняет fn в транзакции: commit при успехе, rollback при ошибке или панике
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
