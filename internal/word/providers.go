package word

import (
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/tair/wordbook/internal/config"
	"github.com/tair/wordbook/internal/word/delivery/http"
	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/internal/word/repository"
	"github.com/tair/wordbook/internal/word/usecase/command"
	"github.com/tair/wordbook/internal/word/usecase/query"
)

// ProvideWordRepository provides the traced word table
func ProvideWordRepository(cfg *config.Config) domain.WordRepository {
	return repository.NewWordRepositoryWithTracing(repository.NewCSVWordRepository(cfg.WordsFile))
}

// ProvideFavoriteRepository provides the traced favorites file
func ProvideFavoriteRepository(cfg *config.Config) domain.FavoriteRepository {
	return repository.NewFavoriteRepositoryWithTracing(repository.NewCSVFavoriteRepository(cfg.FavoritesFile))
}

// ProvideQuizSessionRepository picks the session backend. The redis
// backend needs a client; the memory backend ignores it.
func ProvideQuizSessionRepository(cfg *config.Config, client *redis.Client) (domain.QuizSessionRepository, error) {
	var store domain.QuizSessionRepository
	switch cfg.Session.Backend {
	case config.SessionBackendMemory, "":
		store = repository.NewMemoryQuizSessionRepository(cfg.Session.TTL)
	case config.SessionBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("session backend %q requires a redis client", cfg.Session.Backend)
		}
		store = repository.NewRedisQuizSessionRepository(client, cfg.Session.TTL)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
	return repository.NewQuizSessionRepositoryWithTracing(store), nil
}

// Command Handlers Providers
func ProvideAddFavoriteHandler(repo domain.FavoriteRepository, events domain.EventPublisher) *command.AddFavoriteHandler {
	return command.NewAddFavoriteHandler(repo, events)
}

func ProvideRemoveFavoritesHandler(repo domain.FavoriteRepository, events domain.EventPublisher) *command.RemoveFavoritesHandler {
	return command.NewRemoveFavoritesHandler(repo, events)
}

func ProvideGradeQuizHandler(sessions domain.QuizSessionRepository, events domain.EventPublisher) *command.GradeQuizHandler {
	return command.NewGradeQuizHandler(sessions, events)
}

func ProvideReloadWordsHandler(repo domain.WordRepository) *command.ReloadWordsHandler {
	return command.NewReloadWordsHandler(repo)
}

// Query Handlers Providers
func ProvideSearchWordsHandler(repo domain.WordRepository) *query.SearchWordsHandler {
	return query.NewSearchWordsHandler(repo)
}

func ProvideListWordsHandler(repo domain.WordRepository) *query.ListWordsHandler {
	return query.NewListWordsHandler(repo)
}

func ProvideListFavoritesHandler(repo domain.FavoriteRepository) *query.ListFavoritesHandler {
	return query.NewListFavoritesHandler(repo)
}

func ProvideStartQuizHandler(words domain.WordRepository, sessions domain.QuizSessionRepository) *query.StartQuizHandler {
	return query.NewStartQuizHandler(words, sessions, nil)
}

// ProvideMetrics registers the service collectors on reg
func ProvideMetrics(reg prometheus.Registerer) *http.Metrics {
	return http.NewMetrics(reg)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideWordRepository,
	ProvideFavoriteRepository,
	ProvideQuizSessionRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddFavoriteHandler,
	ProvideRemoveFavoritesHandler,
	ProvideGradeQuizHandler,
	ProvideReloadWordsHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideSearchWordsHandler,
	ProvideListWordsHandler,
	ProvideListFavoritesHandler,
	ProvideStartQuizHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	ProvideMetrics,
)
