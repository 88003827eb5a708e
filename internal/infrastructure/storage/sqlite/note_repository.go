package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"notebook/internal/domain/note"
)

type NoteRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewNoteRepository(db *sql.DB, log *slog.Logger) *NoteRepository {
	return &NoteRepository{
		db:  db,
		log: log.With("component", "note_repository"),
	}
}

func (r *NoteRepository) List(ctx context.Context, userID int) ([]note.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, body, position FROM notes WHERE user_id = ? ORDER BY position, id`, userID)
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
	return withTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}

		for _, n := range notes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO notes (user_id, id, title, body, position) VALUES (?, ?, ?, ?, ?)`,
				userID, n.ID, n.Title, n.Body, n.Position)
			if err != nil {
				r.log.Error("failed to insert note", "user_id", userID, "note_id", n.ID, "error", err)
				return fmt.Errorf("insert note %q: %w", n.ID, err)
			}
		}
		return nil
	})
}
