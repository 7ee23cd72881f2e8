package query

import (
	"context"
	"fmt"

	"github.com/tair/wordbook/internal/word/domain"
)

// ListWordsHandler returns the whole word table
type ListWordsHandler struct {
	repo domain.WordRepository
}

// NewListWordsHandler creates a new list words handler
func NewListWordsHandler(repo domain.WordRepository) *ListWordsHandler {
	return &ListWordsHandler{repo: repo}
}

// Handle loads the word table
func (h *ListWordsHandler) Handle(ctx context.Context) ([]domain.Entry, error) {
	words, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}
	return words, nil
}
