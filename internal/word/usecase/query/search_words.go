package query

import (
	"context"
	"fmt"

	"github.com/tair/wordbook/internal/word/domain"
)

// SearchWordsQuery represents a free-text search over the word table
type SearchWordsQuery struct {
	Query string
}

// SearchWordsHandler handles search words query
type SearchWordsHandler struct {
	repo domain.WordRepository
}

// NewSearchWordsHandler creates a new search words handler
func NewSearchWordsHandler(repo domain.WordRepository) *SearchWordsHandler {
	return &SearchWordsHandler{repo: repo}
}

// Handle executes the search. The word table is loaded even for an empty
// query so a malformed file is reported on every view.
func (h *SearchWordsHandler) Handle(ctx context.Context, query SearchWordsQuery) ([]domain.Entry, error) {
	words, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}
	return domain.SearchWords(words, query.Query), nil
}
