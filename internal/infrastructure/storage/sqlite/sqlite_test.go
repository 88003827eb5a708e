package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notebook/internal/domain/note"
	"notebook/internal/domain/session"
	"notebook/internal/domain/user"
	"notebook/internal/infrastructure/migration"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notebook.db")
	require.NoError(t, migration.NewMigration(migration.DialectSQLite, migration.SQLiteURL(path), migration.DefaultEngine).Up())

	s, err := New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s *Storage, identity string) int {
	t.Helper()
	id, err := NewUserRepository(s.DB(), slog.Default()).Create(context.Background(), identity, "")
	require.NoError(t, err)
	return id
}

func TestUserRepository_Create(t *testing.T) {
	s := setupStorage(t)
	repo := NewUserRepository(s.DB(), slog.Default())
	ctx := context.Background()

	id, err := repo.Create(ctx, "alice", "hash")
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = repo.Create(ctx, "alice", "")
	assert.ErrorIs(t, err, user.ErrAlreadyExists)

	u, err := repo.FindByIdentity(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestUserRepository_FindByIdentity_NotFound(t *testing.T) {
	s := setupStorage(t)
	repo := NewUserRepository(s.DB(), slog.Default())

	_, err := repo.FindByIdentity(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestNoteRepository_ReplaceAndList(t *testing.T) {
	s := setupStorage(t)
	repo := NewNoteRepository(s.DB(), slog.Default())
	ctx := context.Background()

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	require.NoError(t, repo.Replace(ctx, alice, []note.Note{
		{ID: "z", Title: "first", Body: "1", Position: 0},
		{ID: "a", Title: "second", Body: "2", Position: 1},
	}))
	require.NoError(t, repo.Replace(ctx, bob, []note.Note{{ID: "a", Title: "bob's", Position: 0}}))

	notes, err := repo.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// порядок совпадает с порядком последней замены
	assert.Equal(t, "z", notes[0].ID)
	assert.Equal(t, "a", notes[1].ID)

	// bulk replace полностью вытесняет прежний набор
	require.NoError(t, repo.Replace(ctx, alice, []note.Note{{ID: "a", Title: "T", Body: "B"}}))

	notes, err = repo.List(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []note.Note{{ID: "a", Title: "T", Body: "B"}}, notes)

	bobNotes, err := repo.List(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []note.Note{{ID: "a", Title: "bob's"}}, bobNotes)
}

func TestNoteRepository_Replace_RollsBack(t *testing.T) {
	s := setupStorage(t)
	repo := NewNoteRepository(s.DB(), slog.Default())
	ctx := context.Background()

	alice := createUser(t, s, "alice")
	require.NoError(t, repo.Replace(ctx, alice, []note.Note{{ID: "keep", Title: "kept"}}))

	// дубликат первичного ключа ломает вставку посреди транзакции
	err := repo.Replace(ctx, alice, []note.Note{{ID: "dup"}, {ID: "dup", Position: 1}})
	require.Error(t, err)

	notes, err := repo.List(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []note.Note{{ID: "keep", Title: "kept"}}, notes)
}

func TestNoteRepository_Replace_UnknownUser(t *testing.T) {
	s := setupStorage(t)
	repo := NewNoteRepository(s.DB(), slog.Default())

	err := repo.Replace(context.Background(), 999, []note.Note{{ID: "a"}})
	assert.Error(t, err, "foreign key must reject notes of a missing user")
}

func TestSessionRepository(t *testing.T) {
	s := setupStorage(t)
	repo := NewSessionRepository(s.DB(), slog.Default())
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	live := session.Session{Key: "live", UserID: 1, Identity: "alice", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := session.Session{Key: "stale", UserID: 2, Identity: "bob", CreatedAt: now, ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	got, err := repo.Find(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, live, got)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Find(ctx, "stale")
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "live"))
	require.NoError(t, repo.Delete(ctx, "live"))
	_, err = repo.Find(ctx, "live")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{
			name: "plain path",
			path: "notebook.db",
			want: "notebook.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL",
		},
		{
			name: "existing query kept",
			path: "notebook.db?_journal_mode=DELETE&cache=shared",
			want: "notebook.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=DELETE&cache=shared",
		},
		{name: "memory", path: ":memory:", wantErr: ErrInMemory},
		{name: "memory uri", path: "file:notes?mode=memory&cache=shared", wantErr: ErrInMemory},
		{name: "empty", path: "", wantErr: ErrInMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DSN(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_ExistingQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.db")
	require.NoError(t, migration.NewMigration(migration.DialectSQLite, migration.SQLiteURL(path), migration.DefaultEngine).Up())

	s, err := New(context.Background(), path+"?cache=shared")
	require.NoError(t, err)
	defer s.Close()

	var fk int
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}
