package domain

import "context"

// EventPublisher emits activity events. Publish failures never abort a view.
type EventPublisher interface {
	PublishFavoriteAdded(ctx context.Context, entry Entry) error
	PublishFavoritesRemoved(ctx context.Context, labels []string, removed int) error
	PublishQuizGraded(ctx context.Context, sessionID string, report *Report) error
}

// NopPublisher discards all events
type NopPublisher struct{}

func (NopPublisher) PublishFavoriteAdded(context.Context, Entry) error { return nil }

func (NopPublisher) PublishFavoritesRemoved(context.Context, []string, int) error { return nil }

func (NopPublisher) PublishQuizGraded(context.Context, string, *Report) error { return nil }
