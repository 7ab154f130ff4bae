package entities

import (
	"errors"
	"fmt"
)

// QuizType discriminates the answer variant of a quiz item.
type QuizType string

const (
	QuizTypeMultipleChoice QuizType = "MULTIPLE_CHOICE" // answer is one of the options
	QuizTypeMixUp          QuizType = "MIX_UP"          // answer is a correct/incorrect verdict
)

// Verdict is the answer tag of a MIX_UP quiz.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

func (v Verdict) valid() bool {
	return v == VerdictCorrect || v == VerdictIncorrect
}

var (
	ErrUnknownQuizType   = errors.New("unknown quiz type")
	ErrMalformedQuizItem = errors.New("malformed quiz item")
)

// QuizItem is one question of a quiz set.
type QuizItem struct {
	ID           string
	Type         QuizType
	Question     string
	Options      []string // MULTIPLE_CHOICE only
	Answer       string   // an option for MULTIPLE_CHOICE, a Verdict for MIX_UP
	Explanation  string
	CategoryName string // display only
	DocumentName string // display only
}

// Validate checks the structural invariants of the item for its quiz type.
func (q QuizItem) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: empty id", ErrMalformedQuizItem)
	}

	switch q.Type {
	case QuizTypeMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: quiz %s has %d options", ErrMalformedQuizItem, q.ID, len(q.Options))
		}
		if q.answerIndex() < 0 {
			return fmt.Errorf("%w: quiz %s answer is not among its options", ErrMalformedQuizItem, q.ID)
		}
	case QuizTypeMixUp:
		if !Verdict(q.Answer).valid() {
			return fmt.Errorf("%w: quiz %s has mix-up answer %q", ErrMalformedQuizItem, q.ID, q.Answer)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownQuizType, q.Type)
	}

	return nil
}

// Evaluate reports whether the answer is correct.
// Comparison is exact and case-sensitive.
func (q QuizItem) Evaluate(a Answer) (bool, error) {
	if err := q.Accepts(a); err != nil {
		return false, err
	}

	switch q.Type {
	case QuizTypeMultipleChoice:
		return q.Options[a.option] == q.Answer, nil
	case QuizTypeMixUp:
		return string(a.verdict) == q.Answer, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownQuizType, q.Type)
	}
}

// Accepts checks that the answer variant matches the quiz type and is in range.
func (q QuizItem) Accepts(a Answer) error {
	if a.kind != q.Type {
		return fmt.Errorf("%w: %s answer for %s quiz", ErrAnswerMismatch, a.kind, q.Type)
	}

	switch q.Type {
	case QuizTypeMultipleChoice:
		if a.option < 0 || a.option >= len(q.Options) {
			return fmt.Errorf("%w: %d of %d", ErrOptionOutOfRange, a.option, len(q.Options))
		}
	case QuizTypeMixUp:
		if !a.verdict.valid() {
			return fmt.Errorf("%w: verdict %q", ErrAnswerMismatch, a.verdict)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownQuizType, q.Type)
	}

	return nil
}

// CorrectLabel returns the label of the correct answer: a letter for
// multiple choice ("A", "B", ...) and "O" or "X" for mix-up.
func (q QuizItem) CorrectLabel() string {
	switch q.Type {
	case QuizTypeMultipleChoice:
		if i := q.answerIndex(); i >= 0 {
			return OptionLabel(i)
		}
		return ""
	case QuizTypeMixUp:
		if Verdict(q.Answer) == VerdictCorrect {
			return "O"
		}
		return "X"
	default:
		return ""
	}
}

// OptionLabel returns the letter shown next to the i-th option.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

func (q QuizItem) answerIndex() int {
	for i, opt := range q.Options {
		if opt == q.Answer {
			return i
		}
	}
	return -1
}
