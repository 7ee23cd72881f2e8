package query

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

// StartQuizQuery asks for the quiz sample of a session
type StartQuizQuery struct {
	SessionID string
}

// StartQuizResult is the sample to render
type StartQuizResult struct {
	Sample []domain.Entry
	// Fresh is true when the sample was drawn by this call
	Fresh bool
}

// StartQuizHandler returns the session's pending sample or draws a new one
type StartQuizHandler struct {
	words    domain.WordRepository
	sessions domain.QuizSessionRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStartQuizHandler creates a new start quiz handler. A nil rng is
// replaced by a randomly seeded one.
func NewStartQuizHandler(words domain.WordRepository, sessions domain.QuizSessionRepository, rng *rand.Rand) *StartQuizHandler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &StartQuizHandler{words: words, sessions: sessions, rng: rng}
}

// Handle executes the start quiz query
func (h *StartQuizHandler) Handle(ctx context.Context, query StartQuizQuery) (*StartQuizResult, error) {
	words, err := h.words.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}
	if len(words) < domain.QuizSize {
		return nil, fmt.Errorf("%w: have %d, need %d", domain.ErrNotEnoughWords, len(words), domain.QuizSize)
	}

	sample, ok, err := h.sessions.Get(ctx, query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz session: %w", err)
	}
	if ok && len(sample) == domain.QuizSize {
		return &StartQuizResult{Sample: sample}, nil
	}

	h.mu.Lock()
	sample, err = domain.SampleQuiz(words, domain.QuizSize, h.rng)
	h.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := h.sessions.Save(ctx, query.SessionID, sample); err != nil {
		return nil, fmt.Errorf("failed to store quiz session: %w", err)
	}

	logger.Debug(ctx).Int("size", len(sample)).Msg("Quiz sample drawn")
	return &StartQuizResult{Sample: sample, Fresh: true}, nil
}
