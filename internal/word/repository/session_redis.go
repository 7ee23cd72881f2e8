package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/wordbook/internal/word/domain"
)

const quizKeyPrefix = "wordbook:quiz:"

// RedisQuizSessionRepository keeps quiz samples in Redis with a TTL so they
// survive restarts and can be shared by several instances
type RedisQuizSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisQuizSessionRepository creates a Redis backed session store
func NewRedisQuizSessionRepository(client *redis.Client, ttl time.Duration) *RedisQuizSessionRepository {
	return &RedisQuizSessionRepository{client: client, ttl: ttl}
}

func quizKey(sessionID string) string {
	return quizKeyPrefix + sessionID
}

func (r *RedisQuizSessionRepository) Get(ctx context.Context, sessionID string) ([]domain.Entry, bool, error) {
	raw, err := r.client.Get(ctx, quizKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get quiz session: %w", err)
	}

	var sample []domain.Entry
	if err := json.Unmarshal(raw, &sample); err != nil {
		return nil, false, fmt.Errorf("decode quiz session: %w", err)
	}
	return sample, true, nil
}

func (r *RedisQuizSessionRepository) Save(ctx context.Context, sessionID string, sample []domain.Entry) error {
	raw, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("encode quiz session: %w", err)
	}
	if err := r.client.Set(ctx, quizKey(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save quiz session: %w", err)
	}
	return nil
}

func (r *RedisQuizSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, quizKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete quiz session: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity
func (r *RedisQuizSessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
