package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/note"
)

type NoteRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewNoteRepository(pool *pgxpool.Pool, log *slog.Logger) *NoteRepository {
	return &NoteRepository{
		pool: pool,
		log:  log.With("component", "note_repository"),
	}
}

func (r *NoteRepository) List(ctx context.Context, userID int) ([]note.Note, error) {
	const query = `
		SELECT id, title, body, position
		FROM notes
		WHERE user_id = $1
		ORDER BY position, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list notes", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]note.Note, 0)
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Position); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// Replace выполняет удаление и вставку в одной транзакции: при ошибке старые заметки остаются
func (r *NoteRepository) Replace(ctx context.Context, userID int, notes []note.Note) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM notes WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}

		if len(notes) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, n := range notes {
			batch.Queue(
				`INSERT INTO notes (user_id, id, title, body, position) VALUES ($1, $2, $3, $4, $5)`,
				userID, n.ID, n.Title, n.Body, n.Position)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			r.log.Error("failed to insert notes", "user_id", userID, "error", err)
			return fmt.Errorf("insert notes: %w", err)
		}
		return nil
	})
}
