package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat marks a word table that could not be parsed
	ErrFormat = errors.New("malformed word table")

	// ErrNotEnoughWords is returned when the word table is smaller than QuizSize
	ErrNotEnoughWords = errors.New("not enough words for a quiz")

	// ErrNoActiveQuiz is returned when grading without a drawn sample
	ErrNoActiveQuiz = errors.New("no active quiz for session")
)

// FormatError describes where a word table failed to parse
type FormatError struct {
	Path string
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFormat) match any FormatError
func (e *FormatError) Is(target error) bool { return target == ErrFormat }
