// Package testutil provides in-memory fakes of the word domain interfaces.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/tair/wordbook/internal/word/domain"
)

// Words returns n distinct entries term0/meaning0 ... term(n-1)/meaning(n-1)
func Words(n int) []domain.Entry {
	words := make([]domain.Entry, n)
	for i := range words {
		words[i] = domain.Entry{Term: fmt.Sprintf("term%d", i), Meaning: fmt.Sprintf("meaning%d", i)}
	}
	return words
}

// WordRepository serves a fixed table or a fixed error
type WordRepository struct {
	Words []domain.Entry
	Err   error
}

func (r *WordRepository) FindAll(context.Context) ([]domain.Entry, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return slices.Clone(r.Words), nil
}

func (r *WordRepository) Invalidate() {}

// FavoriteRepository keeps favorites in memory and counts saves
type FavoriteRepository struct {
	mu        sync.Mutex
	Favorites []domain.Entry
	SaveErr   error
	Saves     int
}

func (r *FavoriteRepository) FindAll(context.Context) ([]domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.Favorites), nil
}

func (r *FavoriteRepository) Save(_ context.Context, entries []domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(entries)
}

func (r *FavoriteRepository) save(entries []domain.Entry) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Favorites = slices.Clone(entries)
	r.Saves++
	return nil
}

func (r *FavoriteRepository) Update(_ context.Context, fn func([]domain.Entry) ([]domain.Entry, bool)) ([]domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, changed := fn(slices.Clone(r.Favorites))
	if !changed {
		return next, nil
	}
	if err := r.save(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Publisher records published events
type Publisher struct {
	mu      sync.Mutex
	Added   []domain.Entry
	Removed []int
	Graded  []*domain.Report
	Err     error
}

func (p *Publisher) PublishFavoriteAdded(_ context.Context, entry domain.Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Added = append(p.Added, entry)
	return p.Err
}

func (p *Publisher) PublishFavoritesRemoved(_ context.Context, _ []string, removed int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Removed = append(p.Removed, removed)
	return p.Err
}

func (p *Publisher) PublishQuizGraded(_ context.Context, _ string, report *domain.Report) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Graded = append(p.Graded, report)
	return p.Err
}
