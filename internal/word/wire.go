//go:build wireinject
// +build wireinject

package word

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/tair/wordbook/internal/config"
	"github.com/tair/wordbook/internal/word/delivery/http"
	"github.com/tair/wordbook/internal/word/domain"
)

// InitializeHandler initializes the wordbook handler with all dependencies.
// client may be nil unless the redis session backend is configured.
func InitializeHandler(cfg *config.Config, client *redis.Client, events domain.EventPublisher, reg prometheus.Registerer) (*http.WordbookHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewWordbookHandlerWithDI,
	)
	return nil, nil
}
