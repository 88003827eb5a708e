package note

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/user"
)

// UserFinder - то, что сервису заметок нужно от пользователей
type UserFinder interface {
	FindByIdentity(ctx context.Context, identity string) (user.User, error)
}

type Servicer interface {
	List(ctx context.Context, identity string) ([]Note, error)
	Replace(ctx context.Context, identity string, notes []Note) (int, error)
}

type Service struct {
	repo  Repository
	users UserFinder
	log   *slog.Logger
}

func NewService(repo Repository, users UserFinder, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		users: users,
		log:   log.With("component", "note_service"),
	}
}

func (s *Service) List(ctx context.Context, identity string) ([]Note, error) {
	u, err := s.users.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	notes, err := s.repo.List(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

// Replace заменяет весь набор заметок пользователя и возвращает число сохраненных
func (s *Service) Replace(ctx context.Context, identity string, notes []Note) (int, error) {
	u, err := s.users.FindByIdentity(ctx, identity)
	if err != nil {
		return 0, err
	}

	prepared, err := normalize(notes)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Replace(ctx, u.ID, prepared); err != nil {
		return 0, fmt.Errorf("replace notes: %w", err)
	}

	s.log.Debug("notes replaced", "user_id", u.ID, "count", len(prepared))

	return len(prepared), nil
}

func normalize(notes []Note) ([]Note, error) {
	out := make([]Note, 0, len(notes))
	seen := make(map[string]struct{}, len(notes))

	for i, n := range notes {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if _, ok := seen[n.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate note id %q", ErrInvalidInput, n.ID)
		}
		seen[n.ID] = struct{}{}

		n.Position = i
		out = append(out, n)
	}

	return out, nil
}
