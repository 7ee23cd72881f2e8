package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tair/wordbook/internal/word/domain"
)

type memorySession struct {
	sample    []domain.Entry
	expiresAt time.Time
}

// MemoryQuizSessionRepository keeps quiz samples in process memory
type MemoryQuizSessionRepository struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memorySession
}

// NewMemoryQuizSessionRepository creates an in-memory session store whose
// entries expire after ttl
func NewMemoryQuizSessionRepository(ttl time.Duration) *MemoryQuizSessionRepository {
	return &MemoryQuizSessionRepository{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

func (r *MemoryQuizSessionRepository) Get(_ context.Context, sessionID string) ([]domain.Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, false, nil
	}
	if r.now().After(s.expiresAt) {
		delete(r.sessions, sessionID)
		return nil, false, nil
	}
	return slices.Clone(s.sample), true, nil
}

func (r *MemoryQuizSessionRepository) Save(_ context.Context, sessionID string, sample []domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, s := range r.sessions {
		if now.After(s.expiresAt) {
			delete(r.sessions, id)
		}
	}
	r.sessions[sessionID] = memorySession{
		sample:    slices.Clone(sample),
		expiresAt: now.Add(r.ttl),
	}
	return nil
}

func (r *MemoryQuizSessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

// Ping always succeeds for the in-memory store
func (r *MemoryQuizSessionRepository) Ping(context.Context) error { return nil }
