package entities

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrAnswerMismatch   = errors.New("answer does not match quiz type")
	ErrOptionOutOfRange = errors.New("option index out of range")
)

// Answer is a user's selection, discriminated by the quiz type it was given for.
// The zero value is "no selection".
type Answer struct {
	kind    QuizType
	option  int
	verdict Verdict
}

// ChoiceAnswer selects the option at index i of a MULTIPLE_CHOICE quiz.
func ChoiceAnswer(i int) Answer {
	return Answer{kind: QuizTypeMultipleChoice, option: i}
}

// MixUpAnswer selects a verdict for a MIX_UP quiz.
func MixUpAnswer(v Verdict) Answer {
	return Answer{kind: QuizTypeMixUp, verdict: v}
}

// ParseAnswer decodes the string form produced by Answer.String for the given quiz type.
func ParseAnswer(t QuizType, s string) (Answer, error) {
	switch t {
	case QuizTypeMultipleChoice:
		i, err := strconv.Atoi(s)
		if err != nil {
			return Answer{}, fmt.Errorf("%w: option %q", ErrAnswerMismatch, s)
		}
		return ChoiceAnswer(i), nil
	case QuizTypeMixUp:
		v := Verdict(s)
		if !v.valid() {
			return Answer{}, fmt.Errorf("%w: verdict %q", ErrAnswerMismatch, s)
		}
		return MixUpAnswer(v), nil
	default:
		return Answer{}, fmt.Errorf("%w: %q", ErrUnknownQuizType, t)
	}
}

func (a Answer) Type() QuizType { return a.kind }

// IsZero reports whether the answer holds no selection.
func (a Answer) IsZero() bool { return a.kind == "" }

// Option returns the selected option index of a multiple choice answer.
func (a Answer) Option() (int, bool) {
	return a.option, a.kind == QuizTypeMultipleChoice
}

// Verdict returns the selected verdict of a mix-up answer.
func (a Answer) Verdict() (Verdict, bool) {
	return a.verdict, a.kind == QuizTypeMixUp
}

func (a Answer) String() string {
	switch a.kind {
	case QuizTypeMultipleChoice:
		return strconv.Itoa(a.option)
	case QuizTypeMixUp:
		return string(a.verdict)
	default:
		return ""
	}
}
