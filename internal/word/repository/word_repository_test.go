package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/wordbook/internal/word/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVWordRepositoryFindAll(t *testing.T) {
	path := writeFile(t, "N3.csv", "히라가나,뜻\n犬,dog\nいぬ,\"dog, hound\"\n犬,dog\n\n猫,cat\nいう,말하다 \"하다\"\n")
	repo := NewCSVWordRepository(path)

	words, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{
		{Term: "犬", Meaning: "dog"},
		{Term: "いぬ", Meaning: "dog, hound"},
		{Term: "犬", Meaning: "dog"},
		{Term: "猫", Meaning: "cat"},
		{Term: "いう", Meaning: `말하다 "하다"`},
	}, words)
}

func TestCSVWordRepositoryCachesUntilInvalidated(t *testing.T) {
	path := writeFile(t, "N3.csv", "히라가나,뜻\n犬,dog\n")
	repo := NewCSVWordRepository(path)
	ctx := context.Background()

	words, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, words, 1)

	require.NoError(t, os.WriteFile(path, []byte("히라가나,뜻\n犬,dog\n猫,cat\n"), 0o644))

	words, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, words, 1, "cached table should be served")

	repo.Invalidate()
	words, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, words, 2)
}

func TestCSVWordRepositoryFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{name: "unquoted comma", content: "히라가나,뜻\n犬,dog\nいぬ,dog, hound\n", line: 3},
		{name: "unquoted comma after literal quote", content: "히라가나,뜻\n犬,d\"og, hound\n", line: 2},
		{name: "missing column", content: "term,meaning\n犬,dog\n", line: 1},
		{name: "empty file", content: "", line: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewCSVWordRepository(writeFile(t, "N3.csv", tt.content))
			_, err := repo.FindAll(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrFormat), "got %v", err)

			var fe *domain.FormatError
			require.True(t, errors.As(err, &fe))
			if tt.line > 0 {
				assert.Equal(t, tt.line, fe.Line)
			}
		})
	}
}

func TestCSVWordRepositoryDoesNotCacheFailures(t *testing.T) {
	path := writeFile(t, "N3.csv", "히라가나,뜻\nいぬ,dog, hound\n")
	repo := NewCSVWordRepository(path)
	ctx := context.Background()

	_, err := repo.FindAll(ctx)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("히라가나,뜻\nいぬ,\"dog, hound\"\n"), 0o644))
	words, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{{Term: "いぬ", Meaning: "dog, hound"}}, words)
}

func TestCSVWordRepositoryMissingFile(t *testing.T) {
	repo := NewCSVWordRepository(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrFormat))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadTableColumnsByName(t *testing.T) {
	path := writeFile(t, "N3.csv", "\ufeff뜻,extra,히라가나\ndog,x,犬\ncat\n")
	words, err := NewCSVWordRepository(path).FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{
		{Term: "犬", Meaning: "dog"},
		{Term: "", Meaning: "cat"},
	}, words)
}
