package command

import (
	"context"
	"fmt"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

// RemoveFavoritesCommand removes every favorite whose label is selected
type RemoveFavoritesCommand struct {
	Labels []string
}

// RemoveFavoritesResult carries the favorites after the command
type RemoveFavoritesResult struct {
	Favorites []domain.Entry
	Removed   int
}

// RemoveFavoritesHandler handles remove favorites command
type RemoveFavoritesHandler struct {
	repo   domain.FavoriteRepository
	events domain.EventPublisher
}

// NewRemoveFavoritesHandler creates a new remove favorites handler
func NewRemoveFavoritesHandler(repo domain.FavoriteRepository, events domain.EventPublisher) *RemoveFavoritesHandler {
	return &RemoveFavoritesHandler{repo: repo, events: events}
}

// Handle executes the remove favorites command
func (h *RemoveFavoritesHandler) Handle(ctx context.Context, cmd RemoveFavoritesCommand) (*RemoveFavoritesResult, error) {
	var removed int
	favs, err := h.repo.Update(ctx, func(current []domain.Entry) ([]domain.Entry, bool) {
		var next []domain.Entry
		next, removed = domain.RemoveFavorites(current, cmd.Labels)
		return next, removed > 0
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove favorites: %w", err)
	}

	if removed > 0 {
		logger.Info(ctx).Int("removed", removed).Int("favorites", len(favs)).Msg("Favorites removed")
		if err := h.events.PublishFavoritesRemoved(ctx, cmd.Labels, removed); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to publish favorites removed event")
		}
	}

	return &RemoveFavoritesResult{Favorites: favs, Removed: removed}, nil
}
