package domain

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// QuizSize is the number of questions in one attempt
const QuizSize = 10

// QuizSessionRepository keeps the drawn sample per session between renders
type QuizSessionRepository interface {
	Get(ctx context.Context, sessionID string) ([]Entry, bool, error)
	Save(ctx context.Context, sessionID string, sample []Entry) error
	Delete(ctx context.Context, sessionID string) error
}

// SampleQuiz draws n entries uniformly without replacement over positions
func SampleQuiz(words []Entry, n int, rng *rand.Rand) ([]Entry, error) {
	if len(words) < n {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughWords, len(words), n)
	}
	sample := make([]Entry, n)
	for i, idx := range rng.Perm(len(words))[:n] {
		sample[i] = words[idx]
	}
	return sample, nil
}

// Result is the outcome of one question
type Result struct {
	Entry   Entry
	Answer  string
	Correct bool
}

// String renders the report line for the result
func (r Result) String() string {
	if r.Correct {
		return r.Entry.Meaning + " → " + r.Entry.Term
	}
	return fmt.Sprintf("%s → ❌ %s (정답: %s)", r.Entry.Meaning, r.Answer, r.Entry.Term)
}

// Report is a graded quiz attempt
type Report struct {
	Correct   []Result
	Incorrect []Result
	GradedAt  time.Time
}

// Total returns the number of graded questions
func (r *Report) Total() int {
	return len(r.Correct) + len(r.Incorrect)
}

// Grade compares each trimmed answer with the entry's term. Missing answers
// count as empty strings.
func Grade(sample []Entry, answers []string) *Report {
	report := &Report{GradedAt: time.Now()}
	for i, e := range sample {
		var answer string
		if i < len(answers) {
			answer = strings.TrimSpace(answers[i])
		}
		res := Result{Entry: e, Answer: answer, Correct: answer == e.Term}
		if res.Correct {
			report.Correct = append(report.Correct, res)
		} else {
			report.Incorrect = append(report.Incorrect, res)
		}
	}
	return report
}
