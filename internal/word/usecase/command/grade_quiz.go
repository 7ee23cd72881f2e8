package command

import (
	"context"
	"fmt"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

// GradeQuizCommand submits the answers for a session's quiz
type GradeQuizCommand struct {
	SessionID string
	Answers   []string
}

// GradeQuizHandler grades the session's sample and discards it
type GradeQuizHandler struct {
	sessions domain.QuizSessionRepository
	events   domain.EventPublisher
}

// NewGradeQuizHandler creates a new grade quiz handler
func NewGradeQuizHandler(sessions domain.QuizSessionRepository, events domain.EventPublisher) *GradeQuizHandler {
	return &GradeQuizHandler{sessions: sessions, events: events}
}

// Handle executes the grade quiz command. The sample is deleted after
// grading so the next quiz draws a fresh one.
func (h *GradeQuizHandler) Handle(ctx context.Context, cmd GradeQuizCommand) (*domain.Report, error) {
	sample, ok, err := h.sessions.Get(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz session: %w", err)
	}
	if !ok {
		return nil, domain.ErrNoActiveQuiz
	}

	report := domain.Grade(sample, cmd.Answers)

	if err := h.sessions.Delete(ctx, cmd.SessionID); err != nil {
		return nil, fmt.Errorf("failed to clear quiz session: %w", err)
	}

	logger.Info(ctx).
		Int("correct", len(report.Correct)).
		Int("incorrect", len(report.Incorrect)).
		Msg("Quiz graded")

	if err := h.events.PublishQuizGraded(ctx, cmd.SessionID, report); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to publish quiz graded event")
	}

	return report, nil
}
