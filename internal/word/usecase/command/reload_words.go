package command

import (
	"context"
	"fmt"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

// ReloadWordsHandler drops the cached word table and reads the file again
type ReloadWordsHandler struct {
	repo domain.WordRepository
}

// NewReloadWordsHandler creates a new reload words handler
func NewReloadWordsHandler(repo domain.WordRepository) *ReloadWordsHandler {
	return &ReloadWordsHandler{repo: repo}
}

// Handle returns the number of words after the reload. A failed reload
// leaves the cache empty, so every view shows the error until the file is
// fixed.
func (h *ReloadWordsHandler) Handle(ctx context.Context) (int, error) {
	h.repo.Invalidate()

	words, err := h.repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reload words: %w", err)
	}

	logger.Info(ctx).Int("words", len(words)).Msg("Word table reloaded")
	return len(words), nil
}
