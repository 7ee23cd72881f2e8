package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/wordbook/internal/word/domain"
)

func TestMemoryQuizSessionRepository(t *testing.T) {
	repo := NewMemoryQuizSessionRepository(time.Hour)
	ctx := context.Background()
	sample := []domain.Entry{{Term: "犬", Meaning: "dog"}}

	_, ok, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, "s1", sample))
	got, ok, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sample, got)

	_, ok, _ = repo.Get(ctx, "s2")
	assert.False(t, ok, "sessions are keyed by id")

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, ok, _ = repo.Get(ctx, "s1")
	assert.False(t, ok)
}

func TestMemoryQuizSessionRepositoryExpiry(t *testing.T) {
	repo := NewMemoryQuizSessionRepository(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", []domain.Entry{{Term: "犬", Meaning: "dog"}}))

	now = now.Add(30 * time.Second)
	_, ok, _ := repo.Get(ctx, "s1")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = repo.Get(ctx, "s1")
	assert.False(t, ok)
}
