package repository

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

// CSVWordRepository loads the word table once and serves it from memory.
// Failed loads are not cached.
type CSVWordRepository struct {
	path string

	mu     sync.RWMutex
	words  []domain.Entry
	loaded bool
}

// NewCSVWordRepository creates a word repository backed by the CSV at path
func NewCSVWordRepository(path string) *CSVWordRepository {
	return &CSVWordRepository{path: path}
}

// FindAll returns the cached word table, loading it on first use
func (r *CSVWordRepository) FindAll(ctx context.Context) ([]domain.Entry, error) {
	r.mu.RLock()
	if r.loaded {
		words := slices.Clone(r.words)
		r.mu.RUnlock()
		return words, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		words, err := r.load()
		if err != nil {
			logger.Error(ctx).Err(err).Str("path", r.path).Msg("Failed to load word table")
			return nil, err
		}
		r.words = words
		r.loaded = true
		logger.Info(ctx).Str("path", r.path).Int("count", len(words)).Msg("Word table loaded")
	}
	return slices.Clone(r.words), nil
}

// Invalidate drops the cached table so the next FindAll reloads the file
func (r *CSVWordRepository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.words = nil
	r.loaded = false
}

func (r *CSVWordRepository) load() ([]domain.Entry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open word table: %w", err)
	}
	defer f.Close()

	return readTable(f, r.path)
}
