package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/wordbook/internal/testutil"
	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/internal/word/repository"
)

func TestAddFavoriteHandler(t *testing.T) {
	repo := &testutil.FavoriteRepository{}
	events := &testutil.Publisher{}
	h := NewAddFavoriteHandler(repo, events)
	ctx := context.Background()

	res, err := h.Handle(ctx, AddFavoriteCommand{Term: "犬", Meaning: "dog"})
	require.NoError(t, err)
	assert.True(t, res.Added)
	assert.Equal(t, []domain.Entry{{Term: "犬", Meaning: "dog"}}, res.Favorites)
	assert.Equal(t, 1, repo.Saves)

	res, err = h.Handle(ctx, AddFavoriteCommand{Term: "犬", Meaning: "dog"})
	require.NoError(t, err)
	assert.False(t, res.Added)
	assert.Len(t, res.Favorites, 1)
	assert.Equal(t, 1, repo.Saves, "duplicate add must not rewrite the file")
	assert.Len(t, events.Added, 1)
}

func TestAddFavoriteHandlerSaveError(t *testing.T) {
	repo := &testutil.FavoriteRepository{SaveErr: errors.New("disk full")}
	_, err := NewAddFavoriteHandler(repo, domain.NopPublisher{}).Handle(context.Background(), AddFavoriteCommand{Term: "犬", Meaning: "dog"})
	assert.ErrorContains(t, err, "disk full")
}

func TestAddFavoriteHandlerIgnoresPublishError(t *testing.T) {
	repo := &testutil.FavoriteRepository{}
	events := &testutil.Publisher{Err: errors.New("broker down")}
	res, err := NewAddFavoriteHandler(repo, events).Handle(context.Background(), AddFavoriteCommand{Term: "犬", Meaning: "dog"})
	require.NoError(t, err)
	assert.True(t, res.Added)
}

func TestAddFavoriteHandlerFoldsCRLF(t *testing.T) {
	repo := repository.NewCSVFavoriteRepository(filepath.Join(t.TempDir(), "favorites.csv"))
	h := NewAddFavoriteHandler(repo, domain.NopPublisher{})
	ctx := context.Background()

	res, err := h.Handle(ctx, AddFavoriteCommand{Term: "a", Meaning: "x\r\ny"})
	require.NoError(t, err)
	require.True(t, res.Added)
	want := []domain.Entry{{Term: "a", Meaning: "x\ny"}}
	assert.Equal(t, want, res.Favorites)

	reloaded, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, reloaded)

	res, err = h.Handle(ctx, AddFavoriteCommand{Term: "a", Meaning: "x\ny"})
	require.NoError(t, err)
	assert.False(t, res.Added, "LF and CRLF spellings are the same favorite")
}

func TestReloadWordsHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "N3.csv")
	require.NoError(t, os.WriteFile(path, []byte("히라가나,뜻\n犬,dog\n"), 0o644))
	repo := repository.NewCSVWordRepository(path)
	ctx := context.Background()

	words, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, words, 1)

	require.NoError(t, os.WriteFile(path, []byte("히라가나,뜻\n犬,dog\n猫,cat\n"), 0o644))
	h := NewReloadWordsHandler(repo)

	n, err := h.Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	words, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, words, 2)

	require.NoError(t, os.WriteFile(path, []byte("히라가나,뜻\n犬,dog, hound\n"), 0o644))
	_, err = h.Handle(ctx)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestRemoveFavoritesHandler(t *testing.T) {
	repo := &testutil.FavoriteRepository{Favorites: []domain.Entry{
		{Term: "犬", Meaning: "dog"},
		{Term: "猫", Meaning: "cat"},
	}}
	events := &testutil.Publisher{}
	h := NewRemoveFavoritesHandler(repo, events)

	res, err := h.Handle(context.Background(), RemoveFavoritesCommand{Labels: []string{"猫 : cat"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, []domain.Entry{{Term: "犬", Meaning: "dog"}}, res.Favorites)
	assert.Equal(t, res.Favorites, repo.Favorites)
	assert.Equal(t, []int{1}, events.Removed)

	res, err = h.Handle(context.Background(), RemoveFavoritesCommand{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Removed)
	assert.Len(t, res.Favorites, 1)
}

func TestGradeQuizHandler(t *testing.T) {
	sessions := repository.NewMemoryQuizSessionRepository(time.Hour)
	events := &testutil.Publisher{}
	h := NewGradeQuizHandler(sessions, events)
	ctx := context.Background()

	sample := []domain.Entry{{Term: "犬", Meaning: "dog"}, {Term: "猫", Meaning: "cat"}}
	require.NoError(t, sessions.Save(ctx, "s1", sample))

	report, err := h.Handle(ctx, GradeQuizCommand{SessionID: "s1", Answers: []string{" 犬 ", "犬"}})
	require.NoError(t, err)
	require.Len(t, report.Correct, 1)
	require.Len(t, report.Incorrect, 1)
	assert.Equal(t, "cat → ❌ 犬 (정답: 猫)", report.Incorrect[0].String())
	assert.Len(t, events.Graded, 1)

	_, ok, err := sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "sample must be discarded after grading")

	_, err = h.Handle(ctx, GradeQuizCommand{SessionID: "s1"})
	assert.ErrorIs(t, err, domain.ErrNoActiveQuiz)
}
