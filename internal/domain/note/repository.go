package note

import "context"

type Repository interface {
	// List возвращает заметки пользователя в порядке Position
	List(ctx context.Context, userID int) ([]Note, error)
	// Replace удаляет все заметки пользователя и вставляет notes в одной транзакции
	Replace(ctx context.Context, userID int, notes []Note) error
}
