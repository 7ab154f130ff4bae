package entities

import (
	"time"

	"github.com/google/uuid"
)

// Play is a finished, successfully submitted playthrough of a quiz set in a chat.
type Play struct {
	ID            uuid.UUID        // local playthrough ID
	ChatID        int64            // chat the quiz was played in
	QuizSetID     string           // remote quiz set ID
	Total         int              // number of questions
	Correct       int              // number of correct answers
	ElapsedMillis int64            // time spent over all questions
	FinishedAt    time.Time        // when the submission succeeded
	Answers       []QuestionResult // per-question results in play order
}

// NewPlay builds the journal entry of a submitted quiz set.
func NewPlay(id uuid.UUID, chatID int64, s Submission, finishedAt time.Time) *Play {
	answers := make([]QuestionResult, len(s.Results))
	copy(answers, s.Results)

	return &Play{
		ID:            id,
		ChatID:        chatID,
		QuizSetID:     s.QuizSetID,
		Total:         len(s.Results),
		Correct:       s.CorrectCount(),
		ElapsedMillis: s.TotalElapsedMillis(),
		FinishedAt:    finishedAt,
		Answers:       answers,
	}
}

// Score returns the percentage of correct answers, rounded down.
func (p *Play) Score() int {
	if p.Total == 0 {
		return 0
	}
	return p.Correct * 100 / p.Total
}

// PlayStats aggregates the journal of a chat.
type PlayStats struct {
	Plays            int
	Questions        int
	Correct          int
	AvgElapsedMillis int64 // average time per question
	LastFinishedAt   *time.Time
}

// Accuracy returns the share of correct answers in percent.
func (s PlayStats) Accuracy() float64 {
	if s.Questions == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Questions)
}

// Subscription marks a chat as receiving the daily quiz announcement.
type Subscription struct {
	ChatID    int64
	CreatedAt time.Time
}
