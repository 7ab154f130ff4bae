package quiz

import (
	"errors"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

var (
	ErrEmptyQuizSet      = errors.New("quiz set has no questions")
	ErrInvalidQuizItem   = errors.New("invalid quiz item")
	ErrNoSubmitter       = errors.New("result submitter is required")
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrInvalidAnswer     = errors.New("invalid answer")
	ErrSessionClosed     = errors.New("quiz session is closed")
	ErrSubmissionFailure = errors.New("quiz result submission failed")
)

// SubmissionError is returned by Session.Next when the final submission fails.
// The results are kept by the session, so Next can be called again to retry.
type SubmissionError struct {
	Err     error
	Results []entities.QuestionResult
}

func (e *SubmissionError) Error() string {
	return ErrSubmissionFailure.Error() + ": " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() []error {
	return []error{ErrSubmissionFailure, e.Err}
}
