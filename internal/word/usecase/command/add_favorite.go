package command

import (
	"context"
	"fmt"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

// AddFavoriteCommand represents the command to favorite a word
type AddFavoriteCommand struct {
	Term    string
	Meaning string
}

// AddFavoriteResult carries the favorites after the command
type AddFavoriteResult struct {
	Favorites []domain.Entry
	Added     bool
}

// AddFavoriteHandler handles add favorite command
type AddFavoriteHandler struct {
	repo   domain.FavoriteRepository
	events domain.EventPublisher
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(repo domain.FavoriteRepository, events domain.EventPublisher) *AddFavoriteHandler {
	return &AddFavoriteHandler{repo: repo, events: events}
}

// Handle executes the add favorite command. Adding an entry that is already a
// favorite is a no-op.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (*AddFavoriteResult, error) {
	entry := domain.NewEntry(cmd.Term, cmd.Meaning)

	var added bool
	favs, err := h.repo.Update(ctx, func(current []domain.Entry) ([]domain.Entry, bool) {
		var next []domain.Entry
		next, added = domain.AddFavorite(current, entry)
		return next, added
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	if added {
		logger.Info(ctx).Str("term", entry.Term).Int("favorites", len(favs)).Msg("Favorite added")
		if err := h.events.PublishFavoriteAdded(ctx, entry); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to publish favorite added event")
		}
	}

	return &AddFavoriteResult{Favorites: favs, Added: added}, nil
}
