package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"sync"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

// CSVFavoriteRepository keeps the favorites table in a CSV file. Every save
// overwrites the whole file and invalidates the in-memory copy.
type CSVFavoriteRepository struct {
	path string

	// writeMu serializes Update; mu guards the cache.
	writeMu sync.Mutex
	mu      sync.RWMutex
	cached  []domain.Entry
	loaded  bool
}

// NewCSVFavoriteRepository creates a favorites repository backed by path
func NewCSVFavoriteRepository(path string) *CSVFavoriteRepository {
	return &CSVFavoriteRepository{path: path}
}

// FindAll returns the favorites. A missing or unparsable file yields an empty table.
func (r *CSVFavoriteRepository) FindAll(ctx context.Context) ([]domain.Entry, error) {
	r.mu.RLock()
	if r.loaded {
		favs := slices.Clone(r.cached)
		r.mu.RUnlock()
		return favs, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		r.cached = r.load(ctx)
		r.loaded = true
	}
	return slices.Clone(r.cached), nil
}

// Save overwrites the favorites file with entries
func (r *CSVFavoriteRepository) Save(ctx context.Context, entries []domain.Entry) error {
	if err := writeTableFile(r.path, entries); err != nil {
		logger.Error(ctx).Err(err).Str("path", r.path).Msg("Failed to save favorites")
		return err
	}
	r.invalidate()

	logger.Debug(ctx).Str("path", r.path).Int("count", len(entries)).Msg("Favorites saved")
	return nil
}

// Update applies fn to the current favorites and persists the result when it changed
func (r *CSVFavoriteRepository) Update(ctx context.Context, fn func(current []domain.Entry) ([]domain.Entry, bool)) ([]domain.Entry, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	next, changed := fn(current)
	if !changed {
		return next, nil
	}
	if err := r.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *CSVFavoriteRepository) invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
	r.loaded = false
}

func (r *CSVFavoriteRepository) load(ctx context.Context) []domain.Entry {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Entry{}
	}
	if err != nil {
		logger.Warn(ctx).Err(err).Str("path", r.path).Msg("Favorites unreadable, starting empty")
		return []domain.Entry{}
	}
	defer f.Close()

	favs, err := readTable(f, r.path)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("path", r.path).Msg("Favorites malformed, starting empty")
		return []domain.Entry{}
	}
	return favs
}
