package kafka

import "time"

// FavoriteAddedEvent is published when a word is added to favorites
type FavoriteAddedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Term      string    `json:"term"`
	Meaning   string    `json:"meaning"`
	Timestamp time.Time `json:"timestamp"`
}

// FavoritesRemovedEvent is published after a bulk favorites removal
type FavoritesRemovedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Labels    []string  `json:"labels"`
	Removed   int       `json:"removed"`
	Timestamp time.Time `json:"timestamp"`
}

// QuizGradedEvent is published when a quiz attempt is graded
type QuizGradedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SessionID string    `json:"session_id"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	Missed    []string  `json:"missed"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoriteAdded    = "favorite.added"
	EventTypeFavoritesRemoved = "favorites.removed"
	EventTypeQuizGraded       = "quiz.graded"
)

// Kafka topics
const (
	TopicFavorites = "wordbook-favorites"
	TopicQuiz      = "wordbook-quiz"
)
