package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/wordbook/internal/word/domain"
)

var tracer = otel.Tracer("wordbook-repository")

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// WordRepositoryWithTracing wraps a word repository with tracing
type WordRepositoryWithTracing struct {
	next domain.WordRepository
}

// NewWordRepositoryWithTracing creates a new repository with tracing
func NewWordRepositoryWithTracing(next domain.WordRepository) *WordRepositoryWithTracing {
	return &WordRepositoryWithTracing{next: next}
}

func (r *WordRepositoryWithTracing) FindAll(ctx context.Context) ([]domain.Entry, error) {
	ctx, span := tracer.Start(ctx, "repository.Words.FindAll")
	words, err := r.next.FindAll(ctx)
	span.SetAttributes(attribute.Int("words.count", len(words)))
	endSpan(span, err)
	return words, err
}

func (r *WordRepositoryWithTracing) Invalidate() {
	r.next.Invalidate()
}

// FavoriteRepositoryWithTracing wraps a favorites repository with tracing
type FavoriteRepositoryWithTracing struct {
	next domain.FavoriteRepository
}

// NewFavoriteRepositoryWithTracing creates a new repository with tracing
func NewFavoriteRepositoryWithTracing(next domain.FavoriteRepository) *FavoriteRepositoryWithTracing {
	return &FavoriteRepositoryWithTracing{next: next}
}

func (r *FavoriteRepositoryWithTracing) FindAll(ctx context.Context) ([]domain.Entry, error) {
	ctx, span := tracer.Start(ctx, "repository.Favorites.FindAll")
	favs, err := r.next.FindAll(ctx)
	span.SetAttributes(attribute.Int("favorites.count", len(favs)))
	endSpan(span, err)
	return favs, err
}

func (r *FavoriteRepositoryWithTracing) Save(ctx context.Context, entries []domain.Entry) error {
	ctx, span := tracer.Start(ctx, "repository.Favorites.Save",
		trace.WithAttributes(attribute.Int("favorites.count", len(entries))),
	)
	err := r.next.Save(ctx, entries)
	endSpan(span, err)
	return err
}

func (r *FavoriteRepositoryWithTracing) Update(ctx context.Context, fn func([]domain.Entry) ([]domain.Entry, bool)) ([]domain.Entry, error) {
	ctx, span := tracer.Start(ctx, "repository.Favorites.Update")
	favs, err := r.next.Update(ctx, fn)
	span.SetAttributes(attribute.Int("favorites.count", len(favs)))
	endSpan(span, err)
	return favs, err
}

// QuizSessionRepositoryWithTracing wraps a quiz session store with tracing
type QuizSessionRepositoryWithTracing struct {
	next domain.QuizSessionRepository
}

// NewQuizSessionRepositoryWithTracing creates a new session store with tracing
func NewQuizSessionRepositoryWithTracing(next domain.QuizSessionRepository) *QuizSessionRepositoryWithTracing {
	return &QuizSessionRepositoryWithTracing{next: next}
}

func (r *QuizSessionRepositoryWithTracing) Get(ctx context.Context, sessionID string) ([]domain.Entry, bool, error) {
	ctx, span := tracer.Start(ctx, "repository.QuizSession.Get")
	sample, ok, err := r.next.Get(ctx, sessionID)
	span.SetAttributes(attribute.Bool("quiz.found", ok))
	endSpan(span, err)
	return sample, ok, err
}

func (r *QuizSessionRepositoryWithTracing) Save(ctx context.Context, sessionID string, sample []domain.Entry) error {
	ctx, span := tracer.Start(ctx, "repository.QuizSession.Save",
		trace.WithAttributes(attribute.Int("quiz.size", len(sample))),
	)
	err := r.next.Save(ctx, sessionID, sample)
	endSpan(span, err)
	return err
}

func (r *QuizSessionRepositoryWithTracing) Delete(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "repository.QuizSession.Delete")
	err := r.next.Delete(ctx, sessionID)
	endSpan(span, err)
	return err
}

// Ping forwards to the wrapped store when it supports health checks
func (r *QuizSessionRepositoryWithTracing) Ping(ctx context.Context) error {
	if p, ok := r.next.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
