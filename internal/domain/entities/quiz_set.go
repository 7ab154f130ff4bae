package entities

import "time"

// QuizSet is an ordered, immutable sequence of quiz items served by the API.
type QuizSet struct {
	ID        string
	Items     []QuizItem
	CreatedAt time.Time
}

// Categories returns the distinct category names of the set in order of appearance.
func (s QuizSet) Categories() []string {
	seen := make(map[string]struct{}, len(s.Items))
	var names []string
	for _, item := range s.Items {
		if item.CategoryName == "" {
			continue
		}
		if _, ok := seen[item.CategoryName]; ok {
			continue
		}
		seen[item.CategoryName] = struct{}{}
		names = append(names, item.CategoryName)
	}
	return names
}

// TodayQuizType is the state of today's quiz banner.
type TodayQuizType string

const (
	TodayQuizReady    TodayQuizType = "READY"     // a quiz set is waiting to be solved
	TodayQuizDone     TodayQuizType = "DONE"      // today's set was already solved
	TodayQuizNotReady TodayQuizType = "NOT_READY" // not enough notes yet, or still generating
)

// TodayQuiz describes today's quiz set for the current account.
type TodayQuiz struct {
	Type      TodayQuizType
	QuizSetID string
	Score     *int // set when Type is DONE
	Date      time.Time
}
