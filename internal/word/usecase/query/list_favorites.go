package query

import (
	"context"
	"fmt"

	"github.com/tair/wordbook/internal/word/domain"
)

// ListFavoritesHandler handles list favorites query
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle returns the current favorites, empty when none have been saved
func (h *ListFavoritesHandler) Handle(ctx context.Context) ([]domain.Entry, error) {
	favs, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}
