package gormdb

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"notebook/internal/domain/note"
)

type NoteRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewNoteRepository(db *gorm.DB, log *slog.Logger) *NoteRepository {
	return &NoteRepository{
		db:  db,
		log: log.With("component", "note_repository"),
	}
}

func (r *NoteRepository) List(ctx context.Context, userID int) ([]note.Note, error) {
	var models []noteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position").Order("id").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list notes", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]note.Note, 0, len(models))
	for _, m := range models {
		notes = append(notes, note.Note{ID: m.ID, Title: m.Title, Body: m.Body, Position: m.Position})
	}
	return notes, nil
}

// Replace выполняет удаление и вставку в одной транзакции: при ошибке старые заметки остаются
func (r *NoteRepository) Replace(ctx context.Context, userID int, notes []note.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&noteModel{}).Error; err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}

		if len(notes) == 0 {
			return nil
		}

		models := make([]noteModel, 0, len(notes))
		for _, n := range notes {
			models = append(models, noteModel{
				UserID:   uint(userID),
				ID:       n.ID,
				Title:    n.Title,
				Body:     n.Body,
				Position: n.Position,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&models).Error; err != nil {
			r.log.Error("failed to insert notes", "user_id", userID, "error", err)
			return fmt.Errorf("insert notes: %w", err)
		}
		return nil
	})
}
